package cmd

import (
	"encoding/hex"
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"

	"github.com/equihash-verify/equihash/config"
	"github.com/equihash-verify/equihash/equihash"
)

var (
	verifyHeaderHex   string
	verifyNonceHex    string
	verifySolutionHex string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an Equihash solution against a header and nonce",
	Long: `Decodes --header, --nonce (optional) and --solution as hex, verifies
the solution under the network profile selected by --network, and prints
the result. If --nonce is omitted, the nonce is extracted from
header[108:140] and byte-reversed, matching the two-arity form of the
reference verifier.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyHeaderHex, "header", "", "hex-encoded block header prefix (required)")
	verifyCmd.Flags().StringVar(&verifyNonceHex, "nonce", "", "hex-encoded 32-byte nonce (optional; extracted from header if omitted)")
	verifyCmd.Flags().StringVar(&verifySolutionHex, "solution", "", "hex-encoded compact solution (required)")
	_ = verifyCmd.MarkFlagRequired("header")
	_ = verifyCmd.MarkFlagRequired("solution")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	zl, err := newZapLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer zl.Sync() //nolint:errcheck
	logger := newZapAdapter(zl)

	profile, err := config.ProfileByName(cfg.Network)
	if err != nil {
		return err
	}

	header, err := hex.DecodeString(verifyHeaderHex)
	if err != nil {
		return fmt.Errorf("invalid --header hex: %w", err)
	}
	solution, err := hex.DecodeString(verifySolutionHex)
	if err != nil {
		return fmt.Errorf("invalid --solution hex: %w", err)
	}

	var result equihash.Result
	if verifyNonceHex == "" {
		result = equihash.VerifyHeaderNonce(header, solution, profile.Params, equihash.WithLogger(logger))
	} else {
		nonce, err := hex.DecodeString(verifyNonceHex)
		if err != nil {
			return fmt.Errorf("invalid --nonce hex: %w", err)
		}
		result = equihash.Verify(header, nonce, solution, profile.Params, equihash.WithLogger(logger))
	}

	if cfg.OutputJSON {
		fmt.Printf("{\"ok\":%v,\"reason\":%q}\n", result.OK, result.Reason)
		return nil
	}

	if result.OK {
		fmt.Printf("VALID (%s, solution %s)\n", profile.Name, bytefmt.ByteSize(uint64(len(solution))))
		return nil
	}
	fmt.Printf("INVALID (%s): %s\n", profile.Name, result.Reason)
	return nil
}

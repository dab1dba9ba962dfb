package cmd

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/equihash-verify/equihash/config"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the derived quantities for a network profile",
	RunE:  runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	profile, err := config.ProfileByName(cfg.Network)
	if err != nil {
		return err
	}
	p := profile.Params

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"quantity", "value"})
	table.Append([]string{"network", profile.Name})
	table.Append([]string{"n", fmt.Sprintf("%d", p.N)})
	table.Append([]string{"k", fmt.Sprintf("%d", p.K)})
	table.Append([]string{"person", string(p.Person[:])})
	table.Append([]string{"collision_length", fmt.Sprintf("%d bits", p.CollisionLength())})
	table.Append([]string{"hash_length", bytefmt.ByteSize(uint64(p.HashLength()))})
	table.Append([]string{"indices_per_hash", fmt.Sprintf("%d", p.IndicesPerHash())})
	table.Append([]string{"solution_width", bytefmt.ByteSize(uint64(p.SolutionWidth()))})
	table.Append([]string{"digest_len", bytefmt.ByteSize(uint64(p.DigestLen()))})
	table.Render()

	return nil
}

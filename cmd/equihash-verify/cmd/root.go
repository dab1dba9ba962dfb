package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/equihash-verify/equihash/config"
)

var (
	// Version is the version of the binary, set by main from a linker flag.
	Version string
	// Commit is the commit hash of the binary, set by main from a linker flag.
	Commit string
)

const defaultConfigFileName = "config.yaml"

var defaultConfigFile = filepath.Join(config.DefaultConfigDir, defaultConfigFileName)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "equihash-verify",
	Short:   "Verify Equihash proof-of-work solutions",
	Version: Version,
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().String("network", config.DefaultNetwork,
		"Network profile to use (see the `networks` command)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"Log verbosity: debug, info, warn, or error")
	rootCmd.PersistentFlags().Bool("json", false,
		"Emit the verify result as machine-readable JSON (params and networks always print tables)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

// loadConfig reads config.yaml (from --config, or the default location),
// layers CLI flags over it, and validates the result.
func loadConfig() (*config.Config, error) {
	fileLocation := cfgFile
	if fileLocation == "" {
		fileLocation = defaultConfigFile
	}
	fileLocation = smutil.GetCanonicalPath(fileLocation)

	vip := viper.New()
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file %q: %w", fileLocation, err)
		}
		// No explicit --config given and the default file doesn't exist:
		// fall through to built-in defaults and flags only.
	}

	cfg := config.DefaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("network") {
		cfg.Network = viper.GetString("network")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = viper.GetString("log-level")
	}
	if flags.Changed("json") {
		cfg.OutputJSON = viper.GetBool("json")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

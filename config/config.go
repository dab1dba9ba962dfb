// Package config holds the CLI-facing configuration surface: the
// operator-editable Config struct and a registry of named Equihash
// network profiles. The core verifier package never imports this
// package — it only ever consumes bare (n, k, person) values.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"

	"github.com/equihash-verify/equihash/equihash"
	"github.com/equihash-verify/equihash/shared"
)

const (
	DefaultConfigDirName = "equihash-verify"
	DefaultNetwork       = "zcash-mainnet"
)

// DefaultConfigDir is a per-user config directory resolved via smutil
// rather than hardcoded.
var DefaultConfigDir = filepath.Join(smutil.GetUserHomeDirectory(), ".config", DefaultConfigDirName)

// Config is the CLI's persisted/flag-driven configuration.
type Config struct {
	Network    string `mapstructure:"network"`
	LogLevel   string `mapstructure:"log-level"`
	OutputJSON bool   `mapstructure:"json"`
}

// Validate reports whether cfg refers to a known network profile and a
// recognized log level.
func (cfg *Config) Validate() error {
	if _, err := ProfileByName(cfg.Network); err != nil {
		return err
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid `LogLevel`; expected: one of debug|info|warn|error, given: %v", cfg.LogLevel)
	}

	return nil
}

// DefaultConfig returns the CLI's out-of-the-box configuration: Zcash
// mainnet parameters, info-level logging.
func DefaultConfig() *Config {
	return &Config{
		Network:  DefaultNetwork,
		LogLevel: "info",
	}
}

// NetworkProfile names a registered Equihash parameter set for a
// specific chain.
type NetworkProfile struct {
	Name   string
	Params equihash.Params
}

func person(s string) [8]byte {
	var p [8]byte
	copy(p[:], s)
	return p
}

// profiles is the built-in registry of well-known network parameter
// sets. It is a convenience/example registry, not a network-authoritative
// source; the core verifier never discovers parameters on its own.
var profiles = []NetworkProfile{
	{Name: "zcash-mainnet", Params: equihash.Params{N: 200, K: 9, Person: person("ZcashPoW")}},
	{Name: "btg-mainnet", Params: equihash.Params{N: 144, K: 5, Person: person("BgoldPoW")}},
}

// ProfileByName looks up a registered NetworkProfile by its name.
func ProfileByName(name string) (NetworkProfile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return NetworkProfile{}, fmt.Errorf("%w: %q", shared.ErrUnknownNetwork, name)
}

// Profiles returns every registered NetworkProfile, in registration order.
func Profiles() []NetworkProfile {
	out := make([]NetworkProfile, len(profiles))
	copy(out, profiles)
	return out
}

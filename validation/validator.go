// Package validation wraps the equihash verifier façade with a
// pre-resolved network profile, so a caller configures a Validator once
// (from a config.Config) instead of threading a config lookup through
// every verify call.
package validation

import (
	"fmt"

	"github.com/equihash-verify/equihash/config"
	"github.com/equihash-verify/equihash/equihash"
)

// Validator holds a resolved network profile and verifies solutions
// against it.
type Validator struct {
	profile config.NetworkProfile
	opts    []equihash.OptionFunc
}

// NewValidator resolves cfg's network profile and returns a Validator
// bound to it. It fails if cfg does not validate or names an unknown
// network.
func NewValidator(cfg *config.Config, opts ...equihash.OptionFunc) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	profile, err := config.ProfileByName(cfg.Network)
	if err != nil {
		return nil, err
	}

	return &Validator{profile: profile, opts: opts}, nil
}

// Validate verifies solution against header and nonce under the bound
// network profile. nonce may be nil to extract it from the header.
func (v *Validator) Validate(header, nonce, solution []byte) equihash.Result {
	return equihash.Verify(header, nonce, solution, v.profile.Params, v.opts...)
}

// ValidateHeaderNonce verifies solution against header under the bound
// network profile, always deriving the nonce from header[108:140].
func (v *Validator) ValidateHeaderNonce(header, solution []byte) equihash.Result {
	return equihash.VerifyHeaderNonce(header, solution, v.profile.Params, v.opts...)
}

// Profile returns the network profile this Validator was bound to.
func (v *Validator) Profile() config.NetworkProfile {
	return v.profile
}

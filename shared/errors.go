package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrHeaderTooShort is wrapped by helpers that need a header of at
	// least a given length. The verifier façade reports the equivalent
	// condition as a Result reason string rather than an error, per its
	// no-error-escapes-outward contract, so this sentinel is for the
	// lower-level components it calls into.
	ErrHeaderTooShort = errors.New("header too short")

	// ErrUnknownNetwork is returned by the network profile registry
	// when asked for a profile that was never registered.
	ErrUnknownNetwork = errors.New("unknown network profile")
)

// ParamError reports an invalid (n, k) or bit_len combination supplied to
// the core. It is distinct from a verification failure: it means the
// caller misused the API, not that a solution is invalid.
type ParamError struct {
	Param    string
	Expected string
	Found    string
}

func (err ParamError) Error() string {
	return fmt.Sprintf("`%v` invalid; expected: %v, found: %v", err.Param, err.Expected, err.Found)
}

package equihash

import "errors"

// Result is the outcome of a verification call: either OK with an empty
// Reason, or !OK carrying one of the canonical diagnostic strings.
type Result struct {
	OK     bool
	Reason string
}

// Error returns nil when the result is OK, and an error wrapping Reason
// otherwise. Bridges Go's error-returning idiom without changing what
// information a caller sees.
func (r Result) Error() error {
	if r.OK {
		return nil
	}
	return errors.New(r.Reason)
}

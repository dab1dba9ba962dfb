package equihash

import "github.com/equihash-verify/equihash/shared"

type option struct {
	logger shared.Logger
}

func applyOpts(opts ...OptionFunc) *option {
	o := &option{logger: shared.NoopLogger{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OptionFunc configures a Verify / VerifyHeaderNonce call.
type OptionFunc func(*option)

// WithLogger routes diagnostic logging to l instead of discarding it.
func WithLogger(l shared.Logger) OptionFunc {
	return func(o *option) {
		o.logger = l
	}
}

// Package equihash is the verifier façade: it validates parameters,
// resolves the nonce, orchestrates the bitpacker/hasher/gbp components,
// and reports a diagnostic Result. It performs no I/O, holds no state
// across calls, and is safe to call concurrently with no coordination.
package equihash

import (
	"fmt"

	"github.com/equihash-verify/equihash/bitpacker"
	"github.com/equihash-verify/equihash/gbp"
	"github.com/equihash-verify/equihash/hasher"
	"github.com/equihash-verify/equihash/shared"
)

// Verify checks solution against header and nonce under params. nonce may
// be nil, in which case it is extracted and byte-reversed from
// header[108:140]; otherwise it must be exactly 32 bytes.
//
// Verify never panics outward: any internal failure, including a
// recovered panic from a malformed solution driving an out-of-range
// slice access, surfaces as Result{OK: false, Reason: ...}, mirroring
// the Java reference's verify()/is_gbp_valid() try/catch.
func Verify(header, nonce, solution []byte, params Params, opts ...OptionFunc) (result Result) {
	o := applyOpts(opts...)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("equihash: recovered panic during verification: %v", r)
			result = Result{OK: false, Reason: fmt.Sprintf("%v", r)}
		}
	}()

	if err := params.Validate(); err != nil {
		o.logger.Warning("equihash: invalid parameters: %v", err)
		return Result{OK: false, Reason: err.Error()}
	}

	if len(header) < 108 {
		return Result{OK: false, Reason: "Header must be at least 108 long"}
	}

	resolvedNonce := nonce
	switch {
	case len(resolvedNonce) == 0:
		if len(header) < 140 {
			return Result{OK: false, Reason: "Header must contain nonce"}
		}
		resolvedNonce = shared.ReverseBytes(header[108:140])
	case len(resolvedNonce) != 32:
		return Result{OK: false, Reason: fmt.Sprintf("Invalid nonce length: %d (expected 32)", len(resolvedNonce))}
	}

	solutionWidth := params.SolutionWidth()
	if len(solution) != solutionWidth {
		return Result{OK: false, Reason: fmt.Sprintf("Invalid solution length: %d (expected %d)", len(solution), solutionWidth)}
	}

	o.logger.Debug("equihash: verifying n=%d k=%d person=%s", params.N, params.K, params.Person)

	collisionLength := params.CollisionLength()
	indices, err := bitpacker.GetIndicesFromMinimal(solution, collisionLength+1)
	if err != nil {
		o.logger.Warning("equihash: failed to decode solution indices: %v", err)
		return Result{OK: false, Reason: err.Error()}
	}

	h, err := hasher.New(header, resolvedNonce, params.N, params.K, params.Person, params.DigestLen())
	if err != nil {
		o.logger.Warning("equihash: failed to seed hasher: %v", err)
		return Result{OK: false, Reason: err.Error()}
	}

	rows, err := gbp.BuildInitialRows(h, indices, collisionLength, params.HashLength(), params.IndicesPerHash())
	if err != nil {
		o.logger.Warning("equihash: failed to build initial rows: %v", err)
		return Result{OK: false, Reason: err.Error()}
	}

	final, err := gbp.Reduce(rows, int(params.K), collisionLength)
	if err != nil {
		o.logger.Warning("equihash: verification failed: %v", err)
		return Result{OK: false, Reason: "Invalid solution: " + err.Error()}
	}

	if err := gbp.FinalCheck(final, params.HashLength()); err != nil {
		o.logger.Warning("equihash: verification failed: %v", err)
		return Result{OK: false, Reason: "Invalid solution: " + err.Error()}
	}

	o.logger.Debug("equihash: solution valid")
	return Result{OK: true}
}

// VerifyHeaderNonce is Verify with the nonce always extracted from
// header[108:140], mirroring the Java reference's two-arity constructor.
func VerifyHeaderNonce(header, solution []byte, params Params, opts ...OptionFunc) Result {
	return Verify(header, nil, solution, params, opts...)
}

package equihash

import (
	"fmt"

	"github.com/equihash-verify/equihash/shared"
)

// Params bundles the Equihash parameter triple (n, k, person) and derives
// every quantity the core needs from it.
type Params struct {
	N      uint32
	K      uint32
	Person [8]byte
}

// CollisionLength is the number of bits that must match between sibling
// rows at each reduction round: n/(k+1).
func (p Params) CollisionLength() int {
	return int(p.N) / int(p.K+1)
}

// HashLength is the byte width of an expanded step row:
// (k+1) * ceil(collision_length/8).
func (p Params) HashLength() int {
	return int(p.K+1) * shared.CeilDiv(p.CollisionLength(), 8)
}

// IndicesPerHash is the number of n-bit slices packed into one digest_len
// Blake2b digest: floor(512/n).
func (p Params) IndicesPerHash() int {
	return 512 / int(p.N)
}

// SolutionWidth is the byte length of the compact on-wire solution:
// (2^k * (collision_length+1)) / 8.
func (p Params) SolutionWidth() int {
	return (1 << p.K * (p.CollisionLength() + 1)) / 8
}

// DigestLen is the configured Blake2b output length in bytes:
// floor(512/n) * floor(n/8).
func (p Params) DigestLen() int {
	return (512 / int(p.N)) * (int(p.N) / 8)
}

// Validate reports whether p satisfies the constraints every conformant
// Equihash parameter set must.
func (p Params) Validate() error {
	if !(p.K < p.N) {
		return shared.ParamError{Param: "k", Expected: fmt.Sprintf("less than `n` (%d)", p.N), Found: fmt.Sprintf("%d", p.K)}
	}

	collisionLength := p.CollisionLength()
	if collisionLength+1 >= 32 {
		return shared.ParamError{Param: "n/(k+1)+1", Expected: "< 32", Found: fmt.Sprintf("%d", collisionLength+1)}
	}
	if collisionLength < 8 || collisionLength > 25 {
		return shared.ParamError{Param: "collision_length", Expected: "in [8,25]", Found: fmt.Sprintf("%d", collisionLength)}
	}

	// digest_len = floor(512/n)*floor(n/8) is only equal to the
	// n/8-per-slice layout HashIndex relies on when n is itself a
	// multiple of 8; both real parameter families (200 and 144) satisfy
	// this, and the reference never defines behavior otherwise.
	if p.N%8 != 0 {
		return shared.ParamError{Param: "n", Expected: "multiple of 8", Found: fmt.Sprintf("%d", p.N)}
	}

	return nil
}

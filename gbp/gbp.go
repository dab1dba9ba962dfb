// Package gbp implements the k-round Generalized Birthday Problem
// reduction tree Equihash validity rests on: step-row construction from
// the personalized hasher, per-round collision, ordering and
// distinctness checks, XOR/union merging, and the final all-zero check.
package gbp

import (
	"fmt"

	"github.com/equihash-verify/equihash/bitpacker"
	"github.com/equihash-verify/equihash/hasher"
	"github.com/equihash-verify/equihash/shared"
)

// StepRow is a (hash, index-set) pair carried through the reduction.
// idx_set[0] is always the minimum index in the subtree; the ordering
// check relies on that invariant being preserved by every merge.
type StepRow struct {
	Hash    []byte
	Indices []uint32
}

// CollisionError reports a byte-level mismatch between two sibling rows
// at the collision_length-wide slice a given round checks.
type CollisionError struct {
	Round int
}

func (e CollisionError) Error() string {
	return "invalid collision length between StepRow"
}

// OrderingError reports that a sibling pair's first indices are not in
// strictly increasing (unsigned) order.
type OrderingError struct{}

func (e OrderingError) Error() string {
	return "Index tree incorrectly ordered"
}

// DuplicateError reports that a sibling pair's index sets are not disjoint.
type DuplicateError struct{}

func (e DuplicateError) Error() string {
	return "duplicate indices"
}

// LengthError reports a malformed row count: the starting count was not a
// power of two, a round saw an odd number of live rows, or reduction did
// not converge to exactly one row.
type LengthError struct {
	N int
}

func (e LengthError) Error() string {
	return fmt.Sprintf("incorrect length after end of rounds: %d", e.N)
}

// ZeroCountError reports that the final reduced row was not entirely zero.
type ZeroCountError struct {
	Count int
}

func (e ZeroCountError) Error() string {
	return fmt.Sprintf("incorrect number of zeroes: %d", e.Count)
}

// BuildInitialRows expands the raw per-index hash slices from h into the
// hashLength-byte, collisionLength-bit-packed step rows the reduction
// starts from.
func BuildInitialRows(h *hasher.PersonalizedHasher, indices []uint32, collisionLength, hashLength, indicesPerHash int) ([]StepRow, error) {
	rows := make([]StepRow, len(indices))
	for i, idx := range indices {
		raw := h.HashIndex(idx, indicesPerHash)
		expanded, err := bitpacker.ExpandArray(raw, hashLength, collisionLength, 0)
		if err != nil {
			return nil, err
		}
		rows[i] = StepRow{Hash: expanded, Indices: []uint32{idx}}
	}
	return rows, nil
}

// Reduce runs the k-round collision/XOR/union tree over rows and returns
// the single surviving row. Any rule violation is returned as one of the
// typed errors above; the caller (the verifier façade) maps these to the
// canonical diagnostic reason strings.
func Reduce(rows []StepRow, k, collisionLength int) (StepRow, error) {
	// A valid solution always starts the reduction with exactly 2^k rows.
	// This up-front check only rejects counts that are not a power of two;
	// a power of two other than 2^k is caught by the per-round parity
	// check or by the final single-row check below.
	if !shared.IsPowerOfTwo(uint64(len(rows))) {
		return StepRow{}, LengthError{N: len(rows)}
	}

	for r := 1; r <= k; r++ {
		if len(rows)%2 != 0 {
			return StepRow{}, LengthError{N: len(rows)}
		}

		next := make([]StepRow, 0, len(rows)/2)
		for j := 0; j < len(rows); j += 2 {
			a, b := rows[j], rows[j+1]

			if !hasCollision(a.Hash, b.Hash, r, collisionLength) {
				return StepRow{}, CollisionError{Round: r}
			}
			if !(a.Indices[0] < b.Indices[0]) {
				return StepRow{}, OrderingError{}
			}
			if !distinct(a.Indices, b.Indices) {
				return StepRow{}, DuplicateError{}
			}

			next = append(next, StepRow{
				Hash:    xorBytes(a.Hash, b.Hash),
				Indices: union(a.Indices, b.Indices),
			})
		}
		rows = next
	}

	if len(rows) != 1 {
		return StepRow{}, LengthError{N: len(rows)}
	}
	return rows[0], nil
}

// FinalCheck verifies the fully-reduced row's hash is entirely zero.
func FinalCheck(row StepRow, hashLength int) error {
	zeros := CountLeadingZeroBits(row.Hash)
	if zeros != 8*hashLength {
		return ZeroCountError{Count: zeros}
	}
	return nil
}

// hasCollision compares the byte-granular slice [(round-1)*collisionLength/8,
// round*collisionLength/8) of a and b. Sub-byte leftover bits are
// deliberately not checked here; the final all-zero check catches them.
func hasCollision(a, b []byte, round, collisionLength int) bool {
	start := (round - 1) * collisionLength / 8
	end := round * collisionLength / 8
	if end > len(a) || end > len(b) {
		return false
	}
	for i := start; i < end; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// distinct reports whether a and b share no index.
func distinct(a, b []uint32) bool {
	seen := make(map[uint32]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := seen[v]; ok {
			return false
		}
	}
	return true
}

// union concatenates a then b, preserving internal order. A prior
// distinctness check guarantees no duplicates survive.
func union(a, b []uint32) []uint32 {
	out := make([]uint32, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// xorBytes returns the element-wise XOR of two equal-length byte slices.
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// CountLeadingZeroBits counts leading zero bits across the big-endian
// concatenation of b, padding every byte to 8 bits before counting. This
// intentionally differs from a naive per-byte toBinaryString-then-count
// approach, which drops each byte's own leading zeros and undercounts.
func CountLeadingZeroBits(b []byte) int {
	count := 0
	for _, byt := range b {
		if byt == 0 {
			count += 8
			continue
		}
		for bit := 7; bit >= 0; bit-- {
			if byt&(1<<uint(bit)) != 0 {
				return count
			}
			count++
		}
	}
	return count
}

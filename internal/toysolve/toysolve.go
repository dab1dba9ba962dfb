// Package toysolve brute-forces genuine Equihash solutions at small,
// spec-conformant parameters so tests across the module can exercise the
// real hasher/bitpacker/gbp pipeline end to end instead of asserting only
// on hand-fabricated invalid inputs.
package toysolve

import (
	"bytes"

	"github.com/equihash-verify/equihash/bitpacker"
	"github.com/equihash-verify/equihash/equihash"
	"github.com/equihash-verify/equihash/hasher"
)

// Params returns a small (n, k) pair that satisfies
// equihash.Params.Validate with collision_length at its floor of 8 bits
// (a whole byte): n=32, k=3 gives collision_length=8,
// hash_length=4, and a per-round birthday space of 2^8=256, small enough
// to brute-force in a unit test.
func Params() equihash.Params {
	var p [8]byte
	copy(p[:], "ToyPoW00")
	return equihash.Params{N: 32, K: 3, Person: p}
}

type row struct {
	hash    []byte
	indices []uint32
}

// baseSize is the search universe fed into round 1. 512 is the
// self-sustaining population for a collision_length=8 birthday search
// (2 * 2^8), and it exactly fills the 9-bit (collision_length+1) index
// field the toy solution packs into, so no candidate index is ever
// truncated on encode.
const baseSize = 512

// maxAttempts bounds how many nonces Find tries before giving up.
const maxAttempts = 30

// Find retries across a handful of nonces until one yields a full
// 2^k-index solution over header, returning the nonce, its compact
// on-wire solution, and the raw indices behind it. ok is false if no
// nonce in maxAttempts attempts produced a solution.
func Find(header []byte) (nonce, solution []byte, indices []uint32, ok bool) {
	p := Params()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		n := bytes.Repeat([]byte{0x22}, 32)
		n[0] = byte(attempt)
		n[1] = byte(attempt >> 8)

		h, err := hasher.New(header, n, p.N, p.K, p.Person, p.DigestLen())
		if err != nil {
			continue
		}

		idx := solve(h, p)
		if idx == nil {
			continue
		}

		sol, err := bitpacker.GetMinimalFromIndices(idx, p.CollisionLength()+1)
		if err != nil {
			continue
		}
		return n, sol, idx, true
	}

	return nil, nil, nil, false
}

// solve runs the same collision/ordering/distinctness rules gbp.Reduce
// enforces, bucketed by each round's collision_length-bit window instead
// of checked pairwise so it scales past a handful of rows. It returns a
// winning 2^k-wide index set with an all-zero final hash, or nil if none
// survived.
func solve(h *hasher.PersonalizedHasher, p equihash.Params) []uint32 {
	collisionLength := p.CollisionLength()
	hashLength := p.HashLength()
	indicesPerHash := p.IndicesPerHash()
	want := 1 << p.K

	rows := make([]row, baseSize)
	for i := 0; i < baseSize; i++ {
		raw := h.HashIndex(uint32(i), indicesPerHash)
		expanded, err := bitpacker.ExpandArray(raw, hashLength, collisionLength, 0)
		if err != nil {
			return nil
		}
		rows[i] = row{hash: expanded, indices: []uint32{uint32(i)}}
	}

	for round := 1; round <= int(p.K); round++ {
		start := (round - 1) * collisionLength / 8
		end := round * collisionLength / 8

		buckets := make(map[string][]row)
		for _, r := range rows {
			key := string(r.hash[start:end])
			buckets[key] = append(buckets[key], r)
		}

		var next []row
		for _, bucket := range buckets {
			for i := 0; i < len(bucket); i++ {
				for j := i + 1; j < len(bucket); j++ {
					a, b := bucket[i], bucket[j]
					if a.indices[0] > b.indices[0] {
						a, b = b, a
					}
					if !distinct(a.indices, b.indices) {
						continue
					}
					idx := make([]uint32, 0, len(a.indices)+len(b.indices))
					idx = append(idx, a.indices...)
					idx = append(idx, b.indices...)
					next = append(next, row{hash: xorBytes(a.hash, b.hash), indices: idx})
				}
			}
		}
		rows = next
		if len(rows) == 0 {
			return nil
		}
	}

	for _, r := range rows {
		if len(r.indices) == want && allZero(r.hash) {
			return r.indices
		}
	}
	return nil
}

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

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

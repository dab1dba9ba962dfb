// Package hasher implements the personalized Blake2b construction Equihash
// uses to derive the initial GBP step rows.
//
// golang.org/x/crypto/blake2b has no public way to set the personalization
// field this scheme depends on, and no other Blake2b library in the
// dependency corpus fills that gap either. Two independent examples in the
// pack hand-roll the same primitive for the identical reason:
// robvanmieghem-gominer's algorithms/zcash/blake.go (a Zcash-specific,
// hardcoded Blake2b state machine) and go-ethereum's EIP-152 precompile
// (its own blake2bF compression function). This package generalizes the
// former: a streaming Blake2b compressor configured with an arbitrary
// digest length and personalization instead of gominer's fixed
// "ZcashPoW"/n=200/k=9 constants.
package hasher

import (
	"encoding/binary"
	"fmt"

	"github.com/equihash-verify/equihash/shared"
)

const blockSize = 128
const numRounds = 12

var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var sigma = [12][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
}

func rotr64(a uint64, n uint) uint64 {
	return (a >> n) | (a << (64 - n))
}

func mix(va, vb, vc, vd *uint64, x, y uint64) {
	*va = *va + *vb + x
	*vd = rotr64(*vd^*va, 32)
	*vc = *vc + *vd
	*vb = rotr64(*vb^*vc, 24)
	*va = *va + *vb + y
	*vd = rotr64(*vd^*va, 16)
	*vc = *vc + *vd
	*vb = rotr64(*vb^*vc, 63)
}

// state is a streaming Blake2b compressor. It buffers up to one block so
// the final (possibly short) block is only zero-padded and compressed
// with the finalization flag set once Finalize is called; this mirrors
// the classic "hold back the last block" hash.Hash idiom.
//
// Only the low 64 bits of the length counter are tracked: every message
// this package ever absorbs is well under 2^64 bytes (a header prefix, a
// 32-byte nonce, and a 4-byte index), so the second counter word the
// Blake2b spec provides for multi-exabyte inputs is always zero.
type state struct {
	h      [8]uint64
	count  uint64
	buf    [blockSize]byte
	buflen int
	outLen int
}

func newState(outLen int, n, k uint32, person [8]byte) (*state, error) {
	if outLen < 1 || outLen > 64 {
		return nil, fmt.Errorf("digest length must be in [1,64], got %d", outLen)
	}

	s := &state{outLen: outLen}
	s.h[0] = iv[0] ^ (0x01010000 | uint64(outLen))
	for i := 1; i <= 5; i++ {
		s.h[i] = iv[i]
	}
	s.h[6] = iv[6] ^ binary.LittleEndian.Uint64(person[:])

	var nk [8]byte
	binary.LittleEndian.PutUint32(nk[0:4], n)
	binary.LittleEndian.PutUint32(nk[4:8], k)
	s.h[7] = iv[7] ^ binary.LittleEndian.Uint64(nk[:])

	return s, nil
}

func (s *state) clone() *state {
	c := *s
	return &c
}

func (s *state) write(p []byte) {
	for len(p) > 0 {
		if s.buflen == blockSize {
			s.count += blockSize
			s.compress(s.buf[:], false)
			s.buflen = 0
		}
		n := copy(s.buf[s.buflen:], p)
		s.buflen += n
		p = p[n:]
	}
}

func (s *state) finalize() []byte {
	for i := s.buflen; i < blockSize; i++ {
		s.buf[i] = 0
	}
	s.count += uint64(s.buflen)
	s.compress(s.buf[:], true)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], s.h[i])
	}
	return out[:s.outLen]
}

func (s *state) compress(block []byte, final bool) {
	var v [16]uint64
	copy(v[0:8], s.h[:])
	copy(v[8:16], iv[:])
	v[12] ^= s.count
	if final {
		v[14] = ^v[14]
	}

	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(block[i*8:])
	}

	for round := 0; round < numRounds; round++ {
		sg := sigma[round]
		mix(&v[0], &v[4], &v[8], &v[12], m[sg[0]], m[sg[1]])
		mix(&v[1], &v[5], &v[9], &v[13], m[sg[2]], m[sg[3]])
		mix(&v[2], &v[6], &v[10], &v[14], m[sg[4]], m[sg[5]])
		mix(&v[3], &v[7], &v[11], &v[15], m[sg[6]], m[sg[7]])
		mix(&v[0], &v[5], &v[10], &v[15], m[sg[8]], m[sg[9]])
		mix(&v[1], &v[6], &v[11], &v[12], m[sg[10]], m[sg[11]])
		mix(&v[2], &v[7], &v[8], &v[13], m[sg[12]], m[sg[13]])
		mix(&v[3], &v[4], &v[9], &v[14], m[sg[14]], m[sg[15]])
	}

	for i := 0; i < 8; i++ {
		s.h[i] ^= v[i] ^ v[i+8]
	}
}

// PersonalizedHasher is a seeded Blake2b state, ready to be cloned and
// finalized once per solution index.
type PersonalizedHasher struct {
	seed   *state
	n      uint32
	digest int
}

// New seeds a PersonalizedHasher from the first 108 bytes of header and
// the 32-byte nonce, personalized with person||n||k and configured for a
// digest of digestLen bytes.
//
// Absorption order is bit-exact and consensus-relevant: the header
// prefix first, then the nonce's eight 32-bit words read big-endian in
// reverse order and re-fed little-endian.
func New(header, nonce []byte, n, k uint32, person [8]byte, digestLen int) (*PersonalizedHasher, error) {
	if len(header) < 108 {
		return nil, fmt.Errorf("%w: need at least 108 bytes, got %d", shared.ErrHeaderTooShort, len(header))
	}
	if len(nonce) != 32 {
		return nil, fmt.Errorf("nonce must be exactly 32 bytes, got %d", len(nonce))
	}

	s, err := newState(digestLen, n, k, person)
	if err != nil {
		return nil, err
	}

	s.write(header[:108])

	var word [4]byte
	for i := 7; i >= 0; i-- {
		be := binary.BigEndian.Uint32(nonce[4*i : 4*i+4])
		binary.LittleEndian.PutUint32(word[:], be)
		s.write(word[:])
	}

	return &PersonalizedHasher{seed: s, n: n, digest: digestLen}, nil
}

// HashIndex returns the raw n/8-byte hash slice for solution index i.
// The seeded state is cloned, absorbs the group index
// g = i/indicesPerHash as a little-endian 32-bit word, and finalizes;
// the (i mod indicesPerHash)-th n/8-byte slice of the digest is returned.
func (h *PersonalizedHasher) HashIndex(i uint32, indicesPerHash int) []byte {
	g := i / uint32(indicesPerHash)

	clone := h.seed.clone()
	var gb [4]byte
	binary.LittleEndian.PutUint32(gb[:], g)
	clone.write(gb[:])
	digest := clone.finalize()

	r := int(i) % indicesPerHash
	sliceLen := int(h.n / 8)
	return digest[r*sliceLen : (r+1)*sliceLen]
}

package gbp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equihash-verify/equihash/gbp"
	"github.com/equihash-verify/equihash/hasher"
	"github.com/equihash-verify/equihash/internal/toysolve"
)

func TestReduce_MergesOnCollision(t *testing.T) {
	req := require.New(t)

	rows := []gbp.StepRow{
		{Hash: []byte{0x12, 0xAA}, Indices: []uint32{0}},
		{Hash: []byte{0x12, 0x55}, Indices: []uint32{1}},
	}

	got, err := gbp.Reduce(rows, 1, 8)
	req.NoError(err)
	req.Equal([]byte{0x00, 0xff}, got.Hash)
	req.Equal([]uint32{0, 1}, got.Indices)
}

func TestReduce_CollisionMismatch(t *testing.T) {
	req := require.New(t)

	rows := []gbp.StepRow{
		{Hash: []byte{0x12, 0xAA}, Indices: []uint32{0}},
		{Hash: []byte{0x13, 0x55}, Indices: []uint32{1}},
	}

	_, err := gbp.Reduce(rows, 1, 8)
	req.Error(err)
	var collErr gbp.CollisionError
	req.ErrorAs(err, &collErr)
	req.Equal(1, collErr.Round)
	req.Equal("invalid collision length between StepRow", collErr.Error())
}

func TestReduce_OrderingViolation(t *testing.T) {
	req := require.New(t)

	rows := []gbp.StepRow{
		{Hash: []byte{0x12, 0xAA}, Indices: []uint32{1}},
		{Hash: []byte{0x12, 0x55}, Indices: []uint32{0}},
	}

	_, err := gbp.Reduce(rows, 1, 8)
	req.Error(err)
	var ordErr gbp.OrderingError
	req.ErrorAs(err, &ordErr)
	req.Equal("Index tree incorrectly ordered", ordErr.Error())
}

func TestReduce_DuplicateIndices(t *testing.T) {
	req := require.New(t)

	rows := []gbp.StepRow{
		{Hash: []byte{0x12, 0xAA}, Indices: []uint32{0, 2}},
		{Hash: []byte{0x12, 0x55}, Indices: []uint32{2, 3}},
	}

	_, err := gbp.Reduce(rows, 1, 8)
	req.Error(err)
	var dupErr gbp.DuplicateError
	req.ErrorAs(err, &dupErr)
	req.Equal("duplicate indices", dupErr.Error())
}

func TestReduce_OddRowCountIsMalformed(t *testing.T) {
	req := require.New(t)

	rows := []gbp.StepRow{
		{Hash: []byte{0x00}, Indices: []uint32{0}},
		{Hash: []byte{0x00}, Indices: []uint32{1}},
		{Hash: []byte{0x00}, Indices: []uint32{2}},
	}

	_, err := gbp.Reduce(rows, 1, 8)
	req.Error(err)
	var lenErr gbp.LengthError
	req.ErrorAs(err, &lenErr)
	req.Equal(3, lenErr.N)
}

func TestReduce_MultiRoundConverges(t *testing.T) {
	req := require.New(t)

	// Four leaf rows, collision_length=8 (1 byte). Round 1 pairs (0,1) and
	// (2,3), matching on byte 0; round 2 pairs the two merged rows,
	// matching on byte 1, and the result must be the all-zero XOR closure.
	rows := []gbp.StepRow{
		{Hash: []byte{0x01, 0x0a}, Indices: []uint32{0}},
		{Hash: []byte{0x01, 0x0b}, Indices: []uint32{1}},
		{Hash: []byte{0x02, 0x0c}, Indices: []uint32{2}},
		{Hash: []byte{0x02, 0x0d}, Indices: []uint32{3}},
	}
	// After round 1: row01 = {0x00, 0x01}, row23 = {0x00, 0x01}.
	// Round 2 checks byte[1:2] equality: 0x01 == 0x01, then XORs to zero.

	got, err := gbp.Reduce(rows, 2, 8)
	req.NoError(err)
	req.Equal([]byte{0x00, 0x00}, got.Hash)
	req.Equal([]uint32{0, 1, 2, 3}, got.Indices)

	req.NoError(gbp.FinalCheck(got, 2))
}

func TestFinalCheck_NonZeroReportsCount(t *testing.T) {
	req := require.New(t)

	row := gbp.StepRow{Hash: []byte{0x00, 0x08}}
	err := gbp.FinalCheck(row, 2)
	req.Error(err)
	var zErr gbp.ZeroCountError
	req.ErrorAs(err, &zErr)
	req.Equal(12, zErr.Count) // 8 zero bits, then 0000 before the set bit
	req.Equal("incorrect number of zeroes: 12", zErr.Error())
}

func TestFinalCheck_AllZeroSucceeds(t *testing.T) {
	req := require.New(t)

	row := gbp.StepRow{Hash: make([]byte, 4)}
	req.NoError(gbp.FinalCheck(row, 4))
}

func TestCountLeadingZeroBits(t *testing.T) {
	req := require.New(t)

	req.Equal(0, gbp.CountLeadingZeroBits([]byte{0xff}))
	req.Equal(7, gbp.CountLeadingZeroBits([]byte{0x01}))
	req.Equal(8, gbp.CountLeadingZeroBits([]byte{0x00, 0x80}))
	req.Equal(16, gbp.CountLeadingZeroBits([]byte{0x00, 0x00}))
	req.Equal(1, gbp.CountLeadingZeroBits([]byte{0x40}))
}

// TestReduce_GenuineSolutionReachesAllZero drives BuildInitialRows and
// Reduce through the real hasher/bitpacker path with a brute-forced
// valid solution, rather than hand-fabricated StepRow bytes, and checks
// the reduction actually reaches the all-zero row FinalCheck expects.
func TestReduce_GenuineSolutionReachesAllZero(t *testing.T) {
	req := require.New(t)

	header := bytes.Repeat([]byte{0x44}, 108)
	p := toysolve.Params()

	nonce, _, indices, ok := toysolve.Find(header)
	req.True(ok, "toy solver found no solution")

	h, err := hasher.New(header, nonce, p.N, p.K, p.Person, p.DigestLen())
	req.NoError(err)

	collisionLength := p.CollisionLength()
	rows, err := gbp.BuildInitialRows(h, indices, collisionLength, p.HashLength(), p.IndicesPerHash())
	req.NoError(err)

	final, err := gbp.Reduce(rows, int(p.K), collisionLength)
	req.NoError(err)
	req.Equal(indices, final.Indices)

	req.NoError(gbp.FinalCheck(final, p.HashLength()))
}

func TestBuildInitialRows_LengthsMatchHashLength(t *testing.T) {
	req := require.New(t)

	var person [8]byte
	copy(person[:], "ZcashPoW")
	header := bytes.Repeat([]byte{0x11}, 108)
	nonce := bytes.Repeat([]byte{0x22}, 32)

	h, err := hasher.New(header, nonce, 200, 9, person, 50)
	req.NoError(err)

	collisionLength := 200 / 10 // n/(k+1)
	hashLength := 10 * ((collisionLength + 7) / 8)
	indicesPerHash := 512 / 200

	indices := []uint32{0, 1, 2, 3}
	rows, err := gbp.BuildInitialRows(h, indices, collisionLength, hashLength, indicesPerHash)
	req.NoError(err)
	req.Len(rows, 4)
	for i, row := range rows {
		req.Len(row.Hash, hashLength)
		req.Equal([]uint32{indices[i]}, row.Indices)
	}
}

package equihash_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equihash-verify/equihash/equihash"
)

func zcashParams() equihash.Params {
	var p [8]byte
	copy(p[:], "ZcashPoW")
	return equihash.Params{N: 200, K: 9, Person: p}
}

func btgParams() equihash.Params {
	var p [8]byte
	copy(p[:], "BgoldPoW")
	return equihash.Params{N: 144, K: 5, Person: p}
}

func TestParams_DerivedQuantities_BTG(t *testing.T) {
	req := require.New(t)

	p := btgParams()
	req.Equal(24, p.CollisionLength())
	req.Equal(18, p.HashLength())
	req.Equal(3, p.IndicesPerHash())
	req.Equal(100, p.SolutionWidth())
	req.Equal(54, p.DigestLen())
}

func TestParams_DerivedQuantities_Zcash(t *testing.T) {
	req := require.New(t)

	p := zcashParams()
	req.Equal(20, p.CollisionLength())
	req.Equal(30, p.HashLength())
	req.Equal(2, p.IndicesPerHash())
	req.Equal(50, p.DigestLen())
}

func TestParams_Validate_RejectsKGreaterEqualN(t *testing.T) {
	req := require.New(t)

	p := equihash.Params{N: 9, K: 9}
	req.Error(p.Validate())
}

func TestParams_Validate_RejectsNonMultipleOf8(t *testing.T) {
	req := require.New(t)

	p := equihash.Params{N: 90, K: 9} // collision_length=9, but n not %8==0
	req.Error(p.Validate())
}

func TestParams_Validate_AcceptsKnownGoodParams(t *testing.T) {
	req := require.New(t)
	req.NoError(zcashParams().Validate())
	req.NoError(btgParams().Validate())
}

func TestVerify_RejectsShortHeader(t *testing.T) {
	req := require.New(t)

	header := make([]byte, 107)
	res := equihash.Verify(header, make([]byte, 32), make([]byte, 100), btgParams())
	req.False(res.OK)
	req.Equal("Header must be at least 108 long", res.Reason)
}

func TestVerify_MissingNonceAndShortHeader(t *testing.T) {
	req := require.New(t)

	header := make([]byte, 120) // >= 108 but < 140, no external nonce
	res := equihash.Verify(header, nil, make([]byte, 100), btgParams())
	req.False(res.OK)
	req.Equal("Header must contain nonce", res.Reason)
}

func TestVerify_RejectsWrongNonceLength(t *testing.T) {
	req := require.New(t)

	header := make([]byte, 140)
	res := equihash.Verify(header, make([]byte, 31), make([]byte, 100), btgParams())
	req.False(res.OK)
	req.Contains(res.Reason, "Invalid nonce length")
}

func TestVerify_RejectsWrongSolutionLength(t *testing.T) {
	req := require.New(t)

	header := make([]byte, 140)
	res := equihash.Verify(header, make([]byte, 32), make([]byte, 99), btgParams())
	req.False(res.OK)
	req.Equal("Invalid solution length: 99 (expected 100)", res.Reason)
}

func TestVerify_RejectsBadParams(t *testing.T) {
	req := require.New(t)

	header := make([]byte, 140)
	bad := equihash.Params{N: 8, K: 9}
	res := equihash.Verify(header, make([]byte, 32), make([]byte, 4), bad)
	req.False(res.OK)
	req.NotEmpty(res.Reason)
}

func TestVerify_Deterministic(t *testing.T) {
	req := require.New(t)

	header := bytes.Repeat([]byte{0x07}, 108)
	nonce := bytes.Repeat([]byte{0x09}, 32)
	solution := bytes.Repeat([]byte{0x01}, 100)

	a := equihash.Verify(header, nonce, solution, btgParams())
	b := equihash.Verify(header, nonce, solution, btgParams())
	req.Equal(a, b)
}

func TestVerify_NeverPanicsOnGarbageSolution(t *testing.T) {
	req := require.New(t)

	header := bytes.Repeat([]byte{0xff}, 108)
	nonce := bytes.Repeat([]byte{0x00}, 32)
	solution := bytes.Repeat([]byte{0xff}, 100)

	req.NotPanics(func() {
		res := equihash.Verify(header, nonce, solution, btgParams())
		req.False(res.OK)
		req.NotEmpty(res.Reason)
	})
}

func TestVerifyHeaderNonce_ExtractsSameNonceAsExplicit(t *testing.T) {
	req := require.New(t)

	header := bytes.Repeat([]byte{0x03}, 140)
	solution := bytes.Repeat([]byte{0xab}, 100)

	embeddedReversed := make([]byte, 32)
	for i, b := range header[108:140] {
		embeddedReversed[31-i] = b
	}

	viaExplicit := equihash.Verify(header, embeddedReversed, solution, btgParams())
	viaHeader := equihash.VerifyHeaderNonce(header, solution, btgParams())
	req.Equal(viaExplicit, viaHeader)
}

func TestResult_Error(t *testing.T) {
	req := require.New(t)

	ok := equihash.Result{OK: true}
	req.NoError(ok.Error())

	fail := equihash.Result{OK: false, Reason: "boom"}
	req.EqualError(fail.Error(), "boom")
}

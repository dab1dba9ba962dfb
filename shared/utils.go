package shared

// CeilDiv returns ceil(a/b) for positive integers, i.e. ⌈a/b⌉.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ReverseBytes returns a new slice holding a byte-reversed copy of b.
// Used to turn the little-endian on-wire nonce into the big-endian form
// the hasher reads words from.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// IsPowerOfTwo reports whether n is a power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && (n&(n-1)) == 0
}

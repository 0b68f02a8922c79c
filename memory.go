package lanerng

// copyLane copies src into dst, growing dst only when its capacity is too
// small, and returns the result. dst and src never share storage afterwards
// unless they already did.
func copyLane(dst, src []uint64) []uint64 {
	if cap(dst) < len(src) {
		dst = make([]uint64, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}

// lanesEqual compares two lanes element by element.
func lanesEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// cloneBytes returns a copy of b.
func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}

// zeroBytes clears a byte slice.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

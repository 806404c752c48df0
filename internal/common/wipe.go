package common

// WipeByteArray zeroes b. Use it on password buffers once they are no
// longer needed. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package common

// WipeByteArray overwrites the buffer with zeros. Used to clear passwords
// from memory as soon as they are no longer needed. Safe on nil slices.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

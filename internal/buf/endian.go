package buf

import "encoding/binary"

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// WordAt reads the little-endian word at off, reporting false when it does
// not fit inside b.
func WordAt(b []byte, off int) (uint64, bool) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, false
	}
	return U64LE(s), true
}

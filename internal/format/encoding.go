package format

import "encoding/binary"

// Binary encoding utilities for little-endian heap words.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutWord writes one heap word.
func PutWord(b []byte, off int, v uint64) {
	PutU64(b, off, v)
}

// ReadWord reads one heap word.
func ReadWord(b []byte, off int) uint64 {
	return ReadU64(b, off)
}

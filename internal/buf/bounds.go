// Package buf contains bounds and overflow helpers for reading words out of
// a heap image that may be corrupt.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that [offset, offset+size) fits in a buffer of bufLen
// bytes. Returns the end offset if valid, or an error describing the failure.
//
//	end, err := buf.CheckRange(len(data), bp, size)
//	if err != nil {
//	    return fmt.Errorf("block: %w", err)
//	}
func CheckRange(bufLen, offset, size int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset: %d", offset)
	}
	if size < 0 {
		return 0, fmt.Errorf("negative size: %d", size)
	}
	end, ok := AddOverflowSafe(offset, size)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, size)
	}
	if end > bufLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, bufLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

//go:build !linux && !darwin

package memlib

// MmapHeap falls back to a slice reservation where anonymous mappings are
// not available through x/sys/unix.
type MmapHeap struct {
	SliceHeap
}

// NewMmapHeap reserves maxHeap bytes (DefaultMaxHeap when maxHeap <= 0).
func NewMmapHeap(maxHeap int) (*MmapHeap, error) {
	return &MmapHeap{SliceHeap: *NewSliceHeap(maxHeap)}, nil
}

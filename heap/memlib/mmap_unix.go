//go:build linux || darwin

package memlib

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapHeap is a Grower over an anonymous private mapping.
type MmapHeap struct {
	mem []byte
	brk brk
}

// NewMmapHeap reserves maxHeap bytes of anonymous memory
// (DefaultMaxHeap when maxHeap <= 0). Pages are committed lazily by the
// kernel as the break touches them.
func NewMmapHeap(maxHeap int) (*MmapHeap, error) {
	maxHeap = normalizeMax(maxHeap)
	mem, err := unix.Mmap(-1, 0, maxHeap, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("memlib: mmap %d bytes: %w", maxHeap, err)
	}
	return &MmapHeap{mem: mem, brk: brk{max: maxHeap}}, nil
}

// Sbrk extends the heap by n bytes.
func (m *MmapHeap) Sbrk(n int) (int, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	return m.brk.advance(n)
}

// Bytes returns the live heap.
func (m *MmapHeap) Bytes() []byte { return m.mem[:m.brk.cur:m.brk.cur] }

// Len returns the current break.
func (m *MmapHeap) Len() int { return m.brk.cur }

// Close unmaps the reservation. Slices returned earlier become invalid.
func (m *MmapHeap) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	m.brk = brk{}
	return err
}

package memlib

import "github.com/bytedance/gopkg/lang/dirtmake"

// SliceHeap is a Grower over a Go byte slice reserved at MaxHeap capacity.
type SliceHeap struct {
	mem []byte
	brk brk
}

// NewSliceHeap reserves maxHeap bytes (DefaultMaxHeap when maxHeap <= 0).
// The reservation is not zeroed.
func NewSliceHeap(maxHeap int) *SliceHeap {
	maxHeap = normalizeMax(maxHeap)
	return &SliceHeap{
		mem: dirtmake.Bytes(maxHeap, maxHeap),
		brk: brk{max: maxHeap},
	}
}

// Sbrk extends the heap by n bytes.
func (s *SliceHeap) Sbrk(n int) (int, error) {
	if s.mem == nil {
		return 0, ErrClosed
	}
	return s.brk.advance(n)
}

// Bytes returns the live heap.
func (s *SliceHeap) Bytes() []byte { return s.mem[:s.brk.cur:s.brk.cur] }

// Len returns the current break.
func (s *SliceHeap) Len() int { return s.brk.cur }

// Cap returns the reservation size.
func (s *SliceHeap) Cap() int { return s.brk.max }

// Reset moves the break back to zero so the reservation can host a new heap.
func (s *SliceHeap) Reset() { s.brk.cur = 0 }

// Close drops the reservation.
func (s *SliceHeap) Close() error {
	s.mem = nil
	s.brk = brk{}
	return nil
}

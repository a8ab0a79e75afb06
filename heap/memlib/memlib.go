package memlib

import "errors"

// DefaultMaxHeap is the reservation used when a caller passes 0.
const DefaultMaxHeap = 20 * (1 << 20)

var (
	// ErrOutOfMemory indicates the reservation cannot satisfy an Sbrk request.
	ErrOutOfMemory = errors.New("memlib: out of memory")

	// ErrBadIncrement indicates a negative Sbrk request (the heap never shrinks).
	ErrBadIncrement = errors.New("memlib: negative increment")

	// ErrClosed indicates use of a grower after Close.
	ErrClosed = errors.New("memlib: grower closed")
)

// Grower is the external heap-growth primitive.
type Grower interface {
	// Sbrk extends the heap by n bytes and returns the offset of the first
	// new byte (the old break). On failure the heap is unchanged.
	Sbrk(n int) (int, error)

	// Bytes returns the live heap, [0, Len()).
	Bytes() []byte

	// Len returns the current break.
	Len() int
}

// brk is the break bookkeeping shared by both implementations.
type brk struct {
	cur int
	max int
}

func (b *brk) advance(n int) (int, error) {
	if n < 0 {
		return 0, ErrBadIncrement
	}
	if n > b.max-b.cur {
		return 0, ErrOutOfMemory
	}
	old := b.cur
	b.cur += n
	return old, nil
}

func normalizeMax(maxHeap int) int {
	if maxHeap <= 0 {
		return DefaultMaxHeap
	}
	return maxHeap
}

package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and growing the heap failed.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrGrowFail indicates that the heap-growth primitive refused a request.
	ErrGrowFail = errors.New("alloc: grow failed")

	// ErrBadPtr indicates a pointer that does not name a block in this heap.
	ErrBadPtr = errors.New("alloc: bad block pointer")

	// ErrDoubleFree indicates an attempt to free or resize a block that is already free.
	ErrDoubleFree = errors.New("alloc: block already free")

	// ErrBadSize indicates a negative or overflowing request size.
	ErrBadSize = errors.New("alloc: bad request size")
)

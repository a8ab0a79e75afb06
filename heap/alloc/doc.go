// Package alloc implements a segregated-fit dynamic memory allocator over a
// single contiguous, only-growing heap.
//
// # Overview
//
// Every block carries a boundary tag (size | allocated bit) in both its
// header and footer, so the physical neighbours of any block are found in
// O(1). Free blocks are threaded onto one of 15 size-class lists whose heads
// live inside the prologue sentinel. Allocation is first-fit across the
// classes in ascending order; freeing coalesces with free neighbours.
//
// # Heap Layout
//
//	+-----+----------+----------------------+----------+-------//-------+----------+
//	| pad | prologue | bucket slots (16 w)  | prologue |  block chain   | epilogue |
//	|     | header   |                      | footer   |                | header   |
//	+-----+----------+----------------------+----------+-------//-------+----------+
//	0     8          16                     144        160              brk-8
//
// A block pointer (Ptr) is the offset of its payload. The header sits one
// word before it:
//
//	   header                 payload                    footer
//	+---------+------------------------------------+---------+
//	| size|a  | next | prev | ...                  | size|a  |
//	+---------+------------------------------------+---------+
//	          ^ Ptr
//
// next/prev are only meaningful while the block is free. next holds a block
// offset or 0 for "none". prev holds either a block offset or an anchor link
// (high bit set, bucket index in the low bits) naming the bucket slot that
// heads the list.
//
// # Size Classes
//
// Classes are chosen by block size (bytes, header and footer included):
//
//	Class 0:  <= 2       Class 5:  <= 64      Class 10: <= 2058
//	Class 1:  <= 4       Class 6:  <= 144     Class 11: <= 4096
//	Class 2:  <= 8       Class 7:  <= 256     Class 12: <= 8192
//	Class 3:  <= 16      Class 8:  <= 512     Class 13: <= 16384
//	Class 4:  <= 32      Class 9:  <= 1024    Class 14: larger
//
// The minimum block is 32 bytes, so classes 0-3 stay empty with the default
// word size. ConfigPow2 replaces the 2058 breakpoint with 2048.
//
// # Usage Example
//
//	g := memlib.NewSliceHeap(0)
//	a, err := alloc.New(g, nil)
//	if err != nil {
//	    return err
//	}
//
//	p, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(a.Bytes(p), payload)
//
//	p, err = a.Realloc(p, 400)
//	...
//	err = a.Free(p)
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must hold one lock around
// every call if the allocator is shared.
//
// # Related Packages
//
//   - github.com/joshuapare/segheap/heap/memlib: heap-growth primitives
//   - github.com/joshuapare/segheap/heap/verify: heap consistency checker
//   - github.com/joshuapare/segheap/internal/format: tag and word encoding
package alloc

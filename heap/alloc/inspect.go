package alloc

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// Bytes returns p's payload as a slice of the heap. The slice aliases heap
// memory: it is valid until p is freed or moved by Realloc. Returns nil for
// Nil or an invalid pointer.
func (a *Allocator) Bytes(p Ptr) []byte {
	if p == Nil {
		return nil
	}
	data := a.g.Bytes()
	size, err := a.checkPtr(data, p)
	if err != nil {
		return nil
	}
	bp := int(p)
	end := bp + size - blockOverhead
	return data[bp:end:end]
}

// BlockSize returns the total size of p's block (header and footer
// included), or an error if p is not an allocated block.
func (a *Allocator) BlockSize(p Ptr) (int, error) {
	return a.checkPtr(a.g.Bytes(), p)
}

// HeapSize returns the current heap size in bytes.
func (a *Allocator) HeapSize() int {
	return a.g.Len()
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// Heap returns the raw heap image. Diagnostic only.
func (a *Allocator) Heap() []byte {
	return a.g.Bytes()
}

// Layout returns the fixed heap structure offsets.
func (a *Allocator) Layout() format.Layout {
	return a.layout
}

// ClassOf returns the size class a free block of the given size lives in.
func (a *Allocator) ClassOf(size int) int {
	return a.classes.getSizeClass(size)
}

// NumClasses returns the bucket count.
func (a *Allocator) NumClasses() int {
	return a.classes.NumClasses()
}

// ChunkSize returns the effective minimum extension size.
func (a *Allocator) ChunkSize() int {
	return a.chunkSize
}

// Walk calls fn for every block of the physical chain, prologue and
// epilogue excluded, stopping early when fn returns false.
func (a *Allocator) Walk(fn func(Block) bool) {
	data := a.g.Bytes()
	for bp := a.layout.FirstBlock; ; {
		tag := headerTag(data, bp)
		size := format.SizeOf(tag)
		if size == 0 {
			return
		}
		if !fn(Block{Ptr: Ptr(bp), Size: size, Allocated: format.IsAllocated(tag)}) {
			return
		}
		bp = format.NextBlockOff(bp, size)
	}
}

// FreeList calls fn for every block of list idx, head to tail.
func (a *Allocator) FreeList(idx int, fn func(Block) bool) error {
	if idx < 0 || idx >= a.classes.NumClasses() {
		return fmt.Errorf("alloc: no size class %d", idx)
	}
	data := a.g.Bytes()
	for bp := a.head(data, idx); bp != format.NoBlock; bp = getNext(data, bp) {
		tag := headerTag(data, bp)
		if !fn(Block{Ptr: Ptr(bp), Size: format.SizeOf(tag), Allocated: format.IsAllocated(tag)}) {
			break
		}
	}
	return nil
}

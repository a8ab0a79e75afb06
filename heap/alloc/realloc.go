package alloc

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// Realloc resizes p's block to hold at least size payload bytes.
//
//   - Realloc(Nil, n) behaves as Alloc(n).
//   - Realloc(p, 0) behaves as Free(p) and returns Nil.
//   - A request that maps to the current block size keeps the block.
//   - A shrink keeps the block where it is and releases a tail of at least
//     the minimum block size as a free block, merged with a free successor.
//   - A free successor big enough to cover the growth is absorbed whole.
//   - A block at the heap end (directly, or behind one free block) grows in
//     place by extending the heap.
//   - Otherwise a new block is allocated, min(size, old payload) bytes are
//     copied and the old block is freed.
//
// On error the original block is left allocated and unchanged.
func (a *Allocator) Realloc(p Ptr, size int) (Ptr, error) {
	a.stats.ReallocCalls++

	if p == Nil {
		return a.Alloc(size)
	}
	if size == 0 {
		return Nil, a.Free(p)
	}
	if size < 0 || size > maxRequest {
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	data := a.g.Bytes()
	cur, err := a.checkPtr(data, p)
	if err != nil {
		return Nil, err
	}
	bp := int(p)
	asize := adjustSize(size)

	switch {
	case asize == cur:
		a.stats.ReallocSame++
		return p, nil
	case asize < cur:
		a.stats.ReallocShrink++
		a.shrink(data, bp, cur, asize)
		return p, nil
	}

	next := format.NextBlockOff(bp, cur)
	nextTag := headerTag(data, next)
	nextSize := format.SizeOf(nextTag)
	nextFree := !format.IsAllocated(nextTag)

	if nextFree && cur+nextSize >= asize {
		a.stats.ReallocAbsorb++
		a.remove(data, next)
		setTags(data, bp, cur+nextSize, true)
		a.trackInUse(nextSize)
		logf("REALLOC", "block %d absorbed successor: %d -> %d", bp, cur, cur+nextSize)
		return p, nil
	}

	atEnd := nextSize == 0
	lastFree := nextFree && blockSize(data, format.NextBlockOff(next, nextSize)) == 0
	if atEnd || lastFree {
		grow := asize - cur
		if lastFree {
			grow -= nextSize
		}
		if _, err := a.g.Sbrk(grow); err != nil {
			logf("GROW", "in-place realloc denied: size=%d: %v", grow, err)
			return Nil, fmt.Errorf("%w: realloc %d: %w: %w", ErrNoSpace, size, ErrGrowFail, err)
		}
		a.stats.GrowCalls++
		a.stats.GrowBytes += int64(grow)
		if a.onGrow != nil {
			a.onGrow(grow)
		}

		data = a.g.Bytes()
		if lastFree {
			a.remove(data, next)
		}
		setTags(data, bp, asize, true)
		setEpilogue(data, format.NextBlockOff(bp, asize))
		a.stats.ReallocExtend++
		a.trackInUse(asize - cur)
		logf("REALLOC", "block %d grew in place at heap end: %d -> %d", bp, cur, asize)
		return p, nil
	}

	np, err := a.Alloc(size)
	if err != nil {
		return Nil, err
	}
	data = a.g.Bytes()
	n := min(size, cur-blockOverhead)
	copy(data[int(np):int(np)+n], data[bp:bp+n])
	a.free(data, bp, cur)
	a.stats.ReallocCopy++
	return np, nil
}

// shrink cuts the allocated block bp down to asize and frees the tail when
// it can stand as a block of its own. A smaller remainder stays as slack.
func (a *Allocator) shrink(data []byte, bp, cur, asize int) {
	rem := cur - asize
	if rem < minBlockSize {
		return
	}
	a.stats.SplitCount++
	setTags(data, bp, asize, true)
	tail := format.NextBlockOff(bp, asize)
	a.free(data, tail, rem)
	logf("REALLOC", "block %d shrunk: %d -> %d, released %d", bp, cur, asize, rem)
}

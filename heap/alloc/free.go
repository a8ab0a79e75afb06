package alloc

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// Free returns p's block to the free lists and merges it with any free
// physical neighbour. Free(Nil) is a no-op.
//
// Returns ErrBadPtr when p cannot be a block of this heap and ErrDoubleFree
// when p's block is already free; the heap is untouched in both cases.
func (a *Allocator) Free(p Ptr) error {
	a.stats.FreeCalls++

	if p == Nil {
		return nil
	}
	data := a.g.Bytes()
	size, err := a.checkPtr(data, p)
	if err != nil {
		return err
	}
	a.free(data, int(p), size)
	return nil
}

// free marks bp free, indexes it and coalesces.
func (a *Allocator) free(data []byte, bp, size int) {
	a.stats.BytesInUse -= int64(size)
	setTags(data, bp, size, false)
	a.insert(data, bp, size)
	bp = a.coalesce(data, bp)
	debugLogf("Free: block now %d size %d", bp, blockSize(data, bp))
}

// coalesce merges the free, indexed block bp with its free physical
// neighbours. Every block involved is unlinked before sizes change and the
// result is inserted exactly once. Returns the merged block.
func (a *Allocator) coalesce(data []byte, bp int) int {
	size := blockSize(data, bp)
	prevAlloc := format.IsAllocated(prevFooterTag(data, bp))
	next := format.NextBlockOff(bp, size)
	nextAlloc := isAllocated(data, next)

	switch {
	case prevAlloc && nextAlloc:
		a.stats.CoalesceNone++
		return bp

	case prevAlloc && !nextAlloc:
		a.stats.CoalesceForward++
		a.remove(data, next)
		a.remove(data, bp)
		size += blockSize(data, next)
		setTags(data, bp, size, false)

	case !prevAlloc && nextAlloc:
		a.stats.CoalesceBackward++
		prev := prevBlock(data, bp)
		a.remove(data, prev)
		a.remove(data, bp)
		size += blockSize(data, prev)
		bp = prev
		setTags(data, bp, size, false)

	default:
		a.stats.CoalesceBoth++
		prev := prevBlock(data, bp)
		a.remove(data, prev)
		a.remove(data, next)
		a.remove(data, bp)
		size += blockSize(data, prev) + blockSize(data, next)
		bp = prev
		setTags(data, bp, size, false)
	}

	a.insert(data, bp, size)
	logf("FREE", "coalesced into block %d size %d", bp, size)
	return bp
}

// checkPtr validates p as an allocated block of this heap and returns its
// size. The checks are O(1): range, alignment, header/footer agreement and
// the allocated flag.
func (a *Allocator) checkPtr(data []byte, p Ptr) (int, error) {
	bp := int(p)
	// the last payload a block can have starts one double-word before the
	// epilogue header's successor
	if bp < a.layout.FirstBlock || bp > len(data)-minBlockSize || !format.IsAlignedDW(bp) {
		return 0, fmt.Errorf("%w: %d outside heap [%d, %d)", ErrBadPtr, bp, a.layout.FirstBlock, len(data))
	}
	tag := getWord(data, format.HeaderOff(bp))
	size := format.SizeOf(tag)
	if size < minBlockSize || size > len(data)-bp {
		return 0, fmt.Errorf("%w: %d has bad size %d", ErrBadPtr, bp, size)
	}
	if footer := getWord(data, format.FooterOff(bp, size)); footer != tag {
		return 0, fmt.Errorf("%w: %d header %#x != footer %#x", ErrBadPtr, bp, tag, footer)
	}
	if !format.IsAllocated(tag) {
		return 0, fmt.Errorf("%w: %d", ErrDoubleFree, bp)
	}
	return size, nil
}

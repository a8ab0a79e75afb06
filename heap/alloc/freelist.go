package alloc

import "github.com/joshuapare/segheap/internal/format"

// The free-list index: one unordered, doubly linked LIFO list per size
// class. Bucket slots live in the prologue payload and hold the first
// block's offset (0 when empty). Each free block stores
//
//	next: following block or 0
//	prev: preceding block, or AnchorLink(idx) when it heads list idx
//
// so remove can tell a slot from a block without them sharing a layout.

// head returns the first block of list idx, or 0.
func (a *Allocator) head(data []byte, idx int) int {
	return int(getWord(data, a.layout.SlotOff(idx)))
}

func (a *Allocator) setHead(data []byte, idx, bp int) {
	putWord(data, a.layout.SlotOff(idx), uint64(bp))
}

// insert prepends bp (of the given size) to its class list. O(1).
func (a *Allocator) insert(data []byte, bp, size int) {
	idx := a.classes.getSizeClass(size)
	first := a.head(data, idx)

	setNext(data, bp, first)
	setPrevLink(data, bp, format.AnchorLink(idx))
	if first != format.NoBlock {
		setPrevLink(data, first, uint64(bp))
	}
	a.setHead(data, idx, bp)
}

// remove unlinks bp from whichever list holds it. O(1).
func (a *Allocator) remove(data []byte, bp int) {
	next := getNext(data, bp)
	prev := getPrevLink(data, bp)

	if next != format.NoBlock {
		setPrevLink(data, next, prev)
	}
	if format.IsAnchorLink(prev) {
		a.setHead(data, format.AnchorIndex(prev), next)
	} else {
		setNext(data, int(prev), next)
	}
}

// findFit returns the first block of at least asize bytes, scanning classes
// upward from asize's own class and each list head to tail. 0 means none.
func (a *Allocator) findFit(data []byte, asize int) int {
	for idx := a.classes.getSizeClass(asize); idx < a.classes.NumClasses(); idx++ {
		for bp := a.head(data, idx); bp != format.NoBlock; bp = getNext(data, bp) {
			if blockSize(data, bp) >= asize {
				return bp
			}
		}
	}
	return format.NoBlock
}

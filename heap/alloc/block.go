package alloc

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/buf"
	"github.com/joshuapare/segheap/internal/format"
)

const (
	wordSize      = format.WordSize
	minBlockSize  = format.MinBlockSize
	blockOverhead = format.BlockOverhead
)

// Block codec. Every helper takes the current heap slice explicitly; growth
// may hand back a longer slice, so callers refresh it after extendHeap.

// assertWord panics when a tag or link access falls outside the heap or off
// the word grid. Compiled out unless built with -tags segheapdebug.
func assertWord(data []byte, off int) {
	if !debugChecks {
		return
	}
	if _, err := buf.CheckRange(len(data), off, wordSize); err != nil {
		panic(fmt.Sprintf("alloc: word access at %d: %v", off, err))
	}
	if off%wordSize != 0 {
		panic(fmt.Sprintf("alloc: unaligned word access at %d", off))
	}
}

// assertBlock panics when bp/size cannot describe a real block.
func assertBlock(data []byte, bp, size int) {
	if !debugChecks {
		return
	}
	if !format.IsAlignedDW(bp) {
		panic(fmt.Sprintf("alloc: block %d not double-word aligned", bp))
	}
	if size != 0 && (size < minBlockSize || !format.IsAlignedDW(size)) {
		panic(fmt.Sprintf("alloc: block %d has bad size %d", bp, size))
	}
	if _, err := buf.CheckRange(len(data), format.HeaderOff(bp), size); err != nil {
		panic(fmt.Sprintf("alloc: block %d size %d: %v", bp, size, err))
	}
}

func getWord(data []byte, off int) uint64 {
	assertWord(data, off)
	return format.ReadWord(data, off)
}

func putWord(data []byte, off int, v uint64) {
	assertWord(data, off)
	format.PutWord(data, off, v)
}

// headerTag returns the tag stored in bp's header.
func headerTag(data []byte, bp int) uint64 {
	return getWord(data, format.HeaderOff(bp))
}

// blockSize returns bp's size from its header.
func blockSize(data []byte, bp int) int {
	return format.SizeOf(headerTag(data, bp))
}

// isAllocated returns bp's allocated flag from its header.
func isAllocated(data []byte, bp int) bool {
	return format.IsAllocated(headerTag(data, bp))
}

// setTags writes matching header and footer tags for bp.
func setTags(data []byte, bp, size int, allocated bool) {
	assertBlock(data, bp, size)
	tag := format.Pack(size, allocated)
	putWord(data, format.HeaderOff(bp), tag)
	putWord(data, format.FooterOff(bp, size), tag)
}

// setEpilogue writes the zero-size allocated sentinel whose header sits
// one word before bp.
func setEpilogue(data []byte, bp int) {
	putWord(data, format.HeaderOff(bp), format.Pack(0, true))
}

// nextBlock returns the payload offset of bp's physical successor.
func nextBlock(data []byte, bp int) int {
	return format.NextBlockOff(bp, blockSize(data, bp))
}

// prevFooterTag returns the tag of bp's physical predecessor, read from the
// word immediately preceding bp's header.
func prevFooterTag(data []byte, bp int) uint64 {
	return getWord(data, format.PrevFooterOff(bp))
}

// prevBlock returns the payload offset of bp's physical predecessor.
func prevBlock(data []byte, bp int) int {
	return bp - format.SizeOf(prevFooterTag(data, bp))
}

// Free-list link accessors. Only valid while bp is free.

func getNext(data []byte, bp int) int {
	return int(getWord(data, bp+format.NextLinkOffset))
}

func setNext(data []byte, bp, next int) {
	putWord(data, bp+format.NextLinkOffset, uint64(next))
}

func getPrevLink(data []byte, bp int) uint64 {
	return getWord(data, bp+format.PrevLinkOffset)
}

func setPrevLink(data []byte, bp int, link uint64) {
	putWord(data, bp+format.PrevLinkOffset, link)
}

// adjustSize converts a payload request into a block size: payload plus
// header and footer, rounded up to the double-word, at least minBlockSize.
func adjustSize(size int) int {
	return max(minBlockSize, format.AlignDW(size+blockOverhead))
}

package alloc

import (
	"fmt"
	"math"

	"github.com/joshuapare/segheap/internal/format"
)

// maxRequest keeps adjustSize from overflowing.
const maxRequest = math.MaxInt - 2*format.DoubleWordSize

// Alloc returns a block with at least size bytes of payload.
//
// A size of 0 returns (Nil, nil). When no free block fits, the heap is
// extended by max(asize, chunk); if the grower refuses, Alloc returns an
// error wrapping ErrNoSpace and the heap is unchanged.
func (a *Allocator) Alloc(size int) (Ptr, error) {
	a.stats.AllocCalls++

	if size == 0 {
		return Nil, nil
	}
	if size < 0 || size > maxRequest {
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	asize := adjustSize(size)

	data := a.g.Bytes()
	bp := a.findFit(data, asize)
	if bp == format.NoBlock {
		grow := max(asize, a.chunkSize)
		logf("ALLOC", "need grow: request=%d asize=%d grow=%d", size, asize, grow)

		var err error
		bp, err = a.extendHeap(grow)
		if err != nil {
			a.dumpFreeLists(asize)
			return Nil, fmt.Errorf("%w: request %d: %w", ErrNoSpace, size, err)
		}
		data = a.g.Bytes()
		a.stats.AllocSlowPath++
	} else {
		a.stats.AllocFastPath++
	}

	a.remove(data, bp)
	a.place(data, bp, asize)
	debugLogf("Alloc(%d): asize=%d -> %d (block %d)", size, asize, bp, blockSize(data, bp))
	return Ptr(bp), nil
}

// place marks the front asize bytes of the (already unlinked) free block bp
// allocated. A remainder of at least minBlockSize becomes a new free block;
// anything smaller stays inside the allocation.
func (a *Allocator) place(data []byte, bp, asize int) {
	size := blockSize(data, bp)
	rem := size - asize

	if rem >= minBlockSize {
		a.stats.SplitCount++
		setTags(data, bp, asize, true)
		tail := format.NextBlockOff(bp, asize)
		setTags(data, tail, rem, false)
		a.insert(data, tail, rem)
		a.trackInUse(asize)
		return
	}

	setTags(data, bp, size, true)
	a.trackInUse(size)
}

func (a *Allocator) trackInUse(delta int) {
	a.stats.BytesInUse += int64(delta)
	if a.stats.BytesInUse > a.stats.PeakInUse {
		a.stats.PeakInUse = a.stats.BytesInUse
	}
}

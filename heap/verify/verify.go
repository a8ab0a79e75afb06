package verify

import (
	"fmt"
	"io"

	"github.com/joshuapare/segheap/heap/printer"
	"github.com/joshuapare/segheap/internal/buf"
	"github.com/joshuapare/segheap/internal/format"
)

// Finding categories.
const (
	TypeBounds            = "Bounds"
	TypeAlignment         = "Alignment"
	TypeBlockSize         = "BlockSize"
	TypeTagMismatch       = "TagMismatch"
	TypePrologue          = "Prologue"
	TypeEpilogue          = "Epilogue"
	TypeAdjacentFree      = "AdjacentFree"
	TypeAllocatedInList   = "AllocatedInFreeList"
	TypeWrongBucket       = "WrongBucket"
	TypeBrokenLink        = "BrokenLink"
	TypeFreeListCycle     = "FreeListCycle"
	TypeForeignBlock      = "ForeignBlock"
	TypeFreeCountMismatch = "FreeCountMismatch"
)

// Heap is the view of an allocator the checks need.
type Heap interface {
	// Heap returns the raw heap image.
	Heap() []byte
	// Layout returns the prologue and bucket table placement.
	Layout() format.Layout
	// ClassOf maps a free block size to its bucket.
	ClassOf(size int) int
}

// ValidationError describes one broken invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newError(typ string, off int, format string, args ...any) *ValidationError {
	return &ValidationError{Type: typ, Message: fmt.Sprintf(format, args...), Offset: off}
}

// AllInvariants validates all heap invariants in one call.
// Returns the first finding, or nil if all checks pass.
func AllInvariants(h Heap) error {
	if errs := Check(h); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Check runs every validation and returns all findings in discovery order.
func Check(h Heap) []*ValidationError {
	data := h.Heap()
	l := h.Layout()

	var errs []*ValidationError
	if err := Prologue(data, l); err != nil {
		errs = append(errs, err)
		// without a sane prologue neither walk has a starting point
		return errs
	}

	chain, chainErrs := BlockChain(data, l)
	errs = append(errs, chainErrs...)

	listed, listErrs := FreeLists(data, l, h.ClassOf, chain)
	errs = append(errs, listErrs...)

	if chain.FreeCount != listed {
		errs = append(errs, &ValidationError{
			Type:    TypeFreeCountMismatch,
			Message: fmt.Sprintf("chain has %d free blocks, lists hold %d", chain.FreeCount, listed),
			Offset:  -1,
			Details: map[string]interface{}{
				"chain": chain.FreeCount,
				"lists": listed,
			},
		})
	}
	return errs
}

// Prologue validates the prologue sentinel.
func Prologue(data []byte, l format.Layout) *ValidationError {
	hdrOff := format.HeaderOff(l.PrologueBP)
	ftrOff := format.FooterOff(l.PrologueBP, l.PrologueSize)
	hdr, ok1 := buf.WordAt(data, hdrOff)
	ftr, ok2 := buf.WordAt(data, ftrOff)
	if !ok1 || !ok2 {
		return newError(TypePrologue, hdrOff, "heap too small for prologue: %d bytes", len(data))
	}
	want := format.Pack(l.PrologueSize, true)
	if hdr != want {
		return &ValidationError{
			Type:    TypePrologue,
			Message: fmt.Sprintf("bad prologue header %#x, expected %#x", hdr, want),
			Offset:  hdrOff,
			Details: map[string]interface{}{"header": hdr, "expected": want},
		}
	}
	if ftr != hdr {
		return newError(TypePrologue, ftrOff, "prologue footer %#x != header %#x", ftr, hdr)
	}
	return nil
}

// ChainSummary is what the physical walk learned.
type ChainSummary struct {
	Blocks    int
	FreeCount int
	Free      map[int]int // free block -> size
	Epilogue  int         // payload offset of the epilogue, -1 if not reached
}

// BlockChain walks the physical chain from the first block to the epilogue.
func BlockChain(data []byte, l format.Layout) (ChainSummary, []*ValidationError) {
	sum := ChainSummary{Free: make(map[int]int), Epilogue: -1}
	var errs []*ValidationError

	prevFree := false
	bp := l.FirstBlock
	for {
		hdrOff := format.HeaderOff(bp)
		hdr, ok := buf.WordAt(data, hdrOff)
		if !ok {
			errs = append(errs, newError(TypeBounds, hdrOff, "block header past heap end %d", len(data)))
			return sum, errs
		}
		size := format.SizeOf(hdr)
		if size == 0 {
			sum.Epilogue = bp
			if !format.IsAllocated(hdr) {
				errs = append(errs, newError(TypeEpilogue, hdrOff, "epilogue not marked allocated"))
			}
			if bp != len(data) {
				errs = append(errs, &ValidationError{
					Type:    TypeEpilogue,
					Message: fmt.Sprintf("epilogue at %d but heap ends at %d", hdrOff, len(data)),
					Offset:  hdrOff,
					Details: map[string]interface{}{"heap_end": len(data)},
				})
			}
			return sum, errs
		}

		if !format.IsAlignedDW(bp) {
			errs = append(errs, newError(TypeAlignment, bp, "block not double-word aligned"))
		}
		if size < format.MinBlockSize || !format.IsAlignedDW(size) {
			errs = append(errs, newError(TypeBlockSize, bp, "bad block size %d", size))
			return sum, errs
		}
		if _, err := buf.CheckRange(len(data), hdrOff, size+format.WordSize); err != nil {
			errs = append(errs, newError(TypeBounds, bp, "block size %d: %v", size, err))
			return sum, errs
		}
		ftr := format.ReadWord(data, format.FooterOff(bp, size))
		if ftr != hdr {
			errs = append(errs, &ValidationError{
				Type:    TypeTagMismatch,
				Message: fmt.Sprintf("header %#x does not match footer %#x", hdr, ftr),
				Offset:  bp,
				Details: map[string]interface{}{"header": hdr, "footer": ftr},
			})
		}

		sum.Blocks++
		free := !format.IsAllocated(hdr)
		if free {
			sum.FreeCount++
			sum.Free[bp] = size
			if prevFree {
				errs = append(errs, newError(TypeAdjacentFree, bp, "free block follows a free block"))
			}
		}
		prevFree = free
		bp = format.NextBlockOff(bp, size)
	}
}

// FreeLists walks every bucket list, returning the number of blocks found.
func FreeLists(data []byte, l format.Layout, classOf func(int) int, chain ChainSummary) (int, []*ValidationError) {
	var errs []*ValidationError
	total := 0
	seen := make(map[int]bool)
	// a list can hold at most every minimum-size block of the heap
	limit := len(data)/format.MinBlockSize + 1

	for idx := 0; idx < l.NumClasses; idx++ {
		slot := l.SlotOff(idx)
		head, ok := buf.WordAt(data, slot)
		if !ok {
			errs = append(errs, newError(TypeBounds, slot, "bucket slot %d past heap end", idx))
			continue
		}

		expectPrev := format.AnchorLink(idx)
		steps := 0
		for bp := int(head); bp != format.NoBlock; steps++ {
			if steps > limit || seen[bp] {
				errs = append(errs, newError(TypeFreeListCycle, bp, "bucket %d revisits block", idx))
				break
			}
			seen[bp] = true

			if bp < l.FirstBlock || !format.IsAlignedDW(bp) || !buf.Has(data, format.HeaderOff(bp), 3*format.WordSize) {
				errs = append(errs, newError(TypeBrokenLink, bp, "bucket %d links to invalid offset", idx))
				break
			}
			total++

			hdr := format.ReadWord(data, format.HeaderOff(bp))
			size := format.SizeOf(hdr)
			if format.IsAllocated(hdr) {
				errs = append(errs, newError(TypeAllocatedInList, bp, "allocated block in bucket %d", idx))
			} else if got := classOf(size); got != idx {
				errs = append(errs, &ValidationError{
					Type:    TypeWrongBucket,
					Message: fmt.Sprintf("block of size %d belongs in bucket %d, found in %d", size, got, idx),
					Offset:  bp,
					Details: map[string]interface{}{"size": size, "want": got, "got": idx},
				})
			}
			if _, inChain := chain.Free[bp]; !inChain && !format.IsAllocated(hdr) {
				errs = append(errs, newError(TypeForeignBlock, bp, "bucket %d holds a block not on the chain", idx))
			}

			prev := format.ReadWord(data, bp+format.PrevLinkOffset)
			if prev != expectPrev {
				errs = append(errs, &ValidationError{
					Type:    TypeBrokenLink,
					Message: fmt.Sprintf("prev link %#x, expected %#x", prev, expectPrev),
					Offset:  bp,
					Details: map[string]interface{}{"bucket": idx},
				})
			}
			expectPrev = uint64(bp)
			bp = int(format.ReadWord(data, bp+format.NextLinkOffset))
		}
	}
	return total, errs
}

// Report runs Check and writes one line per finding to w. With verbose set
// it first dumps every block and every bucket. Returns the finding count.
func Report(w io.Writer, h Heap, verbose bool) int {
	if verbose {
		printer.PrintHeap(w, h)
	}
	errs := Check(h)
	for _, e := range errs {
		fmt.Fprintf(w, "Error: %v\n", e)
	}
	return len(errs)
}

package alloc

import (
	"fmt"
	"io"
	"os"
)

// Debug flag - set to true to enable verbose state dumps (compile-time toggle).
const debugAlloc = false

// Runtime debug flag for allocation logging - controlled by SEGHEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("SEGHEAP_LOG_ALLOC") != ""

// logf prints a tagged line to stderr when SEGHEAP_LOG_ALLOC is set.
func logf(tag, format string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "["+tag+"] "+format+"\n", args...)
	}
}

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
	}
}

// dumpFreeLists dumps every non-empty bucket for debugging.
func (a *Allocator) dumpFreeLists(need int) {
	if !debugAlloc {
		return
	}
	data := a.g.Bytes()
	fmt.Fprintf(os.Stderr, "\n=== FREE LIST DUMP (need=%d) ===\n", need)
	for idx := range a.classes.NumClasses() {
		count, largest := 0, 0
		for bp := a.head(data, idx); bp != 0; bp = getNext(data, bp) {
			count++
			largest = max(largest, blockSize(data, bp))
		}
		if count > 0 {
			fmt.Fprintf(os.Stderr, "  class %2d: %d blocks, largest=%d\n", idx, count, largest)
		}
	}
	fmt.Fprintf(os.Stderr, "=== END DUMP ===\n\n")
}

// PrintStats writes the allocator counters in a human-readable form.
func (a *Allocator) PrintStats(w io.Writer) {
	s := a.stats
	fmt.Fprintf(w, "=== Allocator Statistics (%s classes) ===\n", a.classes)
	fmt.Fprintf(w, "Heap size:        %d bytes\n", a.g.Len())
	fmt.Fprintf(w, "Alloc calls:      %d (fast=%d, slow=%d)\n", s.AllocCalls, s.AllocFastPath, s.AllocSlowPath)
	fmt.Fprintf(w, "Free calls:       %d\n", s.FreeCalls)
	fmt.Fprintf(w, "Realloc calls:    %d (same=%d, shrink=%d, absorb=%d, extend=%d, copy=%d)\n",
		s.ReallocCalls, s.ReallocSame, s.ReallocShrink, s.ReallocAbsorb, s.ReallocExtend, s.ReallocCopy)
	fmt.Fprintf(w, "Grow calls:       %d (%d bytes)\n", s.GrowCalls, s.GrowBytes)
	fmt.Fprintf(w, "Splits:           %d\n", s.SplitCount)
	fmt.Fprintf(w, "Coalesce:         none=%d fwd=%d back=%d both=%d\n",
		s.CoalesceNone, s.CoalesceForward, s.CoalesceBackward, s.CoalesceBoth)
	fmt.Fprintf(w, "Bytes in use:     %d (peak %d)\n", s.BytesInUse, s.PeakInUse)
}

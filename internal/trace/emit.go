package trace

import (
	"bufio"
	"fmt"
	"io"
)

// Write serializes t in the format Parse reads.
func Write(w io.Writer, t *Trace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n%d\n%d\n", t.SuggestedHeap, t.NumIDs, len(t.Ops), t.Weight)
	for _, op := range t.Ops {
		switch op.Kind {
		case Alloc:
			fmt.Fprintf(bw, "%s %d %d\n", OpAllocToken, op.ID, op.Size)
		case Realloc:
			fmt.Fprintf(bw, "%s %d %d\n", OpReallocToken, op.ID, op.Size)
		case Free:
			fmt.Fprintf(bw, "%s %d\n", OpFreeToken, op.ID)
		default:
			return fmt.Errorf("trace: cannot write op %v", op.Kind)
		}
	}
	return bw.Flush()
}

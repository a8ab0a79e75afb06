package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/segheap/internal/format"
)

// PrintBlock writes one line describing the block at bp:
//
//	160: header: [144:a] footer: [144:a]
//	304: end of heap
func PrintBlock(w io.Writer, data []byte, bp int) {
	info, ok := decodeBlock(data, bp)
	if !ok {
		fmt.Fprintf(w, "%d: end of heap\n", bp)
		return
	}
	fmt.Fprintf(w, "%d: header: [%d:%s] footer: [%d:%s]",
		bp, info.HeaderSize, info.HeaderTag, info.FooterSize, info.FooterTag)
	if !info.Allocated {
		fmt.Fprintf(w, " next: %d prev: %s", info.Next, info.Prev)
	}
	fmt.Fprintln(w)
}

// PrintHeap writes the prologue, every block, the epilogue and the
// non-empty buckets.
func PrintHeap(w io.Writer, h Heap) {
	data := h.Heap()
	l := h.Layout()

	fmt.Fprintf(w, "Heap (%d bytes, prologue %d, first block %d):\n", len(data), l.PrologueSize, l.FirstBlock)
	end := l.FirstBlock
	for _, b := range walk(data, l) {
		PrintBlock(w, data, b.Ptr)
		end = format.NextBlockOff(b.Ptr, b.HeaderSize)
	}
	PrintBlock(w, data, end)

	for _, b := range buckets(data, l) {
		fmt.Fprintf(w, "bucket %2d:", b.Index)
		for _, bp := range b.Blocks {
			size := 0
			if info, ok := decodeBlock(data, bp); ok {
				size = info.HeaderSize
			}
			fmt.Fprintf(w, " %d(%d)", bp, size)
		}
		fmt.Fprintln(w)
	}
}

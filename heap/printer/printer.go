// Package printer renders a segheap heap image as text or JSON.
package printer

import (
	"strconv"

	"github.com/joshuapare/segheap/internal/buf"
	"github.com/joshuapare/segheap/internal/format"
)

// Heap is the view of an allocator the printer needs.
type Heap interface {
	Heap() []byte
	Layout() format.Layout
}

// BlockInfo is one decoded block.
type BlockInfo struct {
	Ptr        int    `json:"ptr"`
	HeaderSize int    `json:"header_size"`
	HeaderTag  string `json:"header"`
	FooterSize int    `json:"footer_size"`
	FooterTag  string `json:"footer"`
	Allocated  bool   `json:"allocated"`
	Next       int    `json:"next,omitempty"`
	Prev       string `json:"prev,omitempty"`
}

// BucketInfo summarises one free list.
type BucketInfo struct {
	Index  int   `json:"index"`
	Blocks []int `json:"blocks"`
}

// decodeBlock reads bp's tags. ok is false when the header is unreadable
// or bp is the epilogue.
func decodeBlock(data []byte, bp int) (BlockInfo, bool) {
	hdr, ok := buf.WordAt(data, format.HeaderOff(bp))
	if !ok || format.SizeOf(hdr) == 0 {
		return BlockInfo{Ptr: bp}, false
	}
	size := format.SizeOf(hdr)
	info := BlockInfo{
		Ptr:        bp,
		HeaderSize: size,
		HeaderTag:  tagLetter(hdr),
		Allocated:  format.IsAllocated(hdr),
	}
	if ftr, ok := buf.WordAt(data, format.FooterOff(bp, size)); ok {
		info.FooterSize = format.SizeOf(ftr)
		info.FooterTag = tagLetter(ftr)
	}
	if !info.Allocated {
		if next, ok := buf.WordAt(data, bp+format.NextLinkOffset); ok {
			info.Next = int(next)
		}
		if prev, ok := buf.WordAt(data, bp+format.PrevLinkOffset); ok {
			info.Prev = linkString(prev)
		}
	}
	return info, true
}

// walk collects the physical chain, stopping at the epilogue or at the
// first block it cannot decode.
func walk(data []byte, l format.Layout) []BlockInfo {
	var blocks []BlockInfo
	for bp := l.FirstBlock; ; {
		info, ok := decodeBlock(data, bp)
		if !ok || info.HeaderSize < format.MinBlockSize {
			return blocks
		}
		blocks = append(blocks, info)
		bp = format.NextBlockOff(bp, info.HeaderSize)
	}
}

// buckets collects every non-empty free list, capped against cycles.
func buckets(data []byte, l format.Layout) []BucketInfo {
	var out []BucketInfo
	limit := len(data)/format.MinBlockSize + 1
	for idx := 0; idx < l.NumClasses; idx++ {
		head, ok := buf.WordAt(data, l.SlotOff(idx))
		if !ok || head == format.NoBlock {
			continue
		}
		b := BucketInfo{Index: idx}
		for bp := int(head); bp != format.NoBlock && len(b.Blocks) < limit; {
			b.Blocks = append(b.Blocks, bp)
			next, ok := buf.WordAt(data, bp+format.NextLinkOffset)
			if !ok {
				break
			}
			bp = int(next)
		}
		out = append(out, b)
	}
	return out
}

func tagLetter(tag uint64) string {
	if format.IsAllocated(tag) {
		return "a"
	}
	return "f"
}

func linkString(link uint64) string {
	if format.IsAnchorLink(link) {
		return "bucket:" + strconv.Itoa(format.AnchorIndex(link))
	}
	return strconv.Itoa(int(link))
}

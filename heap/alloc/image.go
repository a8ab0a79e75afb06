package alloc

import (
	"fmt"

	"github.com/joshuapare/segheap/internal/format"
)

// Image is a read-only view of a saved heap (the bytes of Heap()). It
// satisfies the checker and printer interfaces so a heap can be inspected
// after the allocator that built it is gone.
type Image struct {
	data    []byte
	classes *sizeClassTable
	layout  format.Layout
}

// OpenImage wraps data as a heap built with the given size classes
// (nil means DefaultConfig). Only the overall shape is checked here; run
// the heap checker for everything else.
func OpenImage(data []byte, classes *SizeClassConfig) (*Image, error) {
	if classes == nil {
		classes = &DefaultConfig
	}
	table, err := newSizeClassTable(*classes)
	if err != nil {
		return nil, err
	}
	l := format.NewLayout(table.NumClasses())
	if len(data) < l.InitSize() {
		return nil, fmt.Errorf("alloc: image of %d bytes is smaller than an empty heap (%d)", len(data), l.InitSize())
	}
	if !format.IsAlignedDW(len(data)) {
		return nil, fmt.Errorf("alloc: image size %d is not a double-word multiple", len(data))
	}
	return &Image{data: data, classes: table, layout: l}, nil
}

// Heap returns the image bytes.
func (i *Image) Heap() []byte { return i.data }

// Layout returns the fixed heap structure offsets.
func (i *Image) Layout() format.Layout { return i.layout }

// ClassOf returns the size class a free block of the given size lives in.
func (i *Image) ClassOf(size int) int { return i.classes.getSizeClass(size) }

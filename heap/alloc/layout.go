package alloc

import (
	"fmt"

	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/internal/format"
)

// Allocator is a segregated-fit allocator over one growing heap.
type Allocator struct {
	g memlib.Grower

	// Size class configuration and lookup table
	classes *sizeClassTable

	// Fixed heap structure: prologue, bucket table, first block
	layout format.Layout

	chunkSize      int
	coalesceOnGrow bool

	stats Stats

	// Test hook: called after every successful heap extension (nil in production)
	onGrow func(n int)
}

// New builds the initial heap on g and returns a ready allocator.
//
// Parameters:
//   - g: the heap-growth primitive; it must be empty (Len() == 0)
//   - opts: allocator options (use nil for defaults)
func New(g memlib.Grower, opts *Options) (*Allocator, error) {
	if opts == nil {
		opts = &Options{}
	}
	config := opts.Classes
	if config == nil {
		config = &DefaultConfig
	}
	classes, err := newSizeClassTable(*config)
	if err != nil {
		return nil, err
	}

	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	chunk = max(minBlockSize, format.AlignDW(chunk))

	a := &Allocator{
		g:              g,
		classes:        classes,
		layout:         format.NewLayout(classes.NumClasses()),
		chunkSize:      chunk,
		coalesceOnGrow: opts.CoalesceOnGrow,
	}
	if err := a.init(); err != nil {
		return nil, err
	}
	return a, nil
}

// init writes the padding word, the prologue (with an empty bucket table)
// and the epilogue, then extends the heap by one chunk to create the first
// free block.
func (a *Allocator) init() error {
	if a.g.Len() != 0 {
		return fmt.Errorf("alloc: grower already holds %d bytes", a.g.Len())
	}
	l := a.layout
	if _, err := a.g.Sbrk(l.InitSize()); err != nil {
		return fmt.Errorf("%w: initial heap: %w", ErrGrowFail, err)
	}
	data := a.g.Bytes()

	putWord(data, 0, 0) // alignment padding
	prologue := format.Pack(l.PrologueSize, true)
	putWord(data, format.HeaderOff(l.PrologueBP), prologue)
	for off := l.BucketBase; off < format.FooterOff(l.PrologueBP, l.PrologueSize); off += wordSize {
		putWord(data, off, format.NoBlock)
	}
	putWord(data, format.FooterOff(l.PrologueBP, l.PrologueSize), prologue)
	setEpilogue(data, l.FirstBlock)

	if _, err := a.extendHeap(a.chunkSize); err != nil {
		return err
	}
	return nil
}

// extendHeap grows the heap by size bytes (a double-word multiple) and turns
// the new region into one free block. The old epilogue header becomes the
// new block's header and a fresh epilogue is written after it. Returns the
// new block, or the merged block when coalesceOnGrow is set.
func (a *Allocator) extendHeap(size int) (int, error) {
	bp, err := a.g.Sbrk(size)
	if err != nil {
		logf("GROW", "denied: size=%d heap=%d: %v", size, a.g.Len(), err)
		return 0, fmt.Errorf("%w: sbrk %d: %w", ErrGrowFail, size, err)
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(size)
	logf("GROW", "#%d: +%d bytes at %d (heap now %d)", a.stats.GrowCalls, size, bp, a.g.Len())

	data := a.g.Bytes()
	setTags(data, bp, size, false)
	setEpilogue(data, format.NextBlockOff(bp, size))
	a.insert(data, bp, size)
	if a.coalesceOnGrow {
		bp = a.coalesce(data, bp)
	}

	if a.onGrow != nil {
		a.onGrow(size)
	}
	return bp, nil
}

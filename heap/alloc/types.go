package alloc

// Ptr is a block pointer: the heap offset of a block's payload.
type Ptr int

// Nil is the "no block" pointer. Offset 0 is the alignment padding word.
const Nil Ptr = 0

// DefaultChunkSize is the default heap extension, in bytes.
const DefaultChunkSize = 144

// Options configures an Allocator. A nil *Options means all defaults.
type Options struct {
	// ChunkSize is the minimum heap extension in bytes. It is rounded up to
	// the double-word and to the minimum block size. 0 means DefaultChunkSize.
	ChunkSize int

	// Classes selects the size-class breakpoints. nil means DefaultConfig.
	Classes *SizeClassConfig

	// CoalesceOnGrow merges a freshly grown block with a free physical
	// predecessor. Off by default: growth only appends a new free block.
	CoalesceOnGrow bool
}

// Block describes one block in the physical chain or a free list.
type Block struct {
	Ptr       Ptr
	Size      int // total block size, header and footer included
	Allocated bool
}

// PayloadSize returns the caller-usable bytes of the block.
func (b Block) PayloadSize() int {
	return b.Size - blockOverhead
}

// Stats holds allocator counters for tests and instrumentation.
type Stats struct {
	AllocCalls    int // Total Alloc() calls
	AllocFastPath int // Allocations served from the free lists
	AllocSlowPath int // Allocations that required growth
	FreeCalls     int // Total Free() calls
	ReallocCalls  int // Total Realloc() calls

	GrowCalls int   // Heap extensions (init chunk included)
	GrowBytes int64 // Bytes added by extensions

	SplitCount int // Placements that split off a free remainder

	CoalesceNone     int // Case 1: both neighbours allocated
	CoalesceForward  int // Case 2: successor merged
	CoalesceBackward int // Case 3: predecessor merged
	CoalesceBoth     int // Case 4: both merged

	ReallocSame   int // asize matched the current block
	ReallocShrink int // shrunk in place, tail released when large enough
	ReallocAbsorb int // absorbed a free successor
	ReallocExtend int // grew in place at the heap end
	ReallocCopy   int // fell back to allocate + copy + free

	BytesInUse int64 // Sum of allocated block sizes
	PeakInUse  int64 // Highest BytesInUse seen
}

// Package memlib provides heap-growth primitives for the segheap allocator.
//
// # Overview
//
// A Grower models the classic sbrk break: one contiguous byte region whose
// high end only moves up. Sbrk(n) extends the region by n bytes and returns
// the offset where the new bytes start. Nothing is ever given back.
//
// # Implementations
//
// SliceHeap: a Go byte slice reserved up front at MaxHeap capacity
//
//   - Backed by dirtmake, so fresh bytes are not zeroed (sbrk makes no promise)
//   - Growth reslices, so earlier payload slices stay valid
//
// MmapHeap: an anonymous private mapping reserved at MaxHeap bytes
//
//   - Unix only; other platforms get a SliceHeap-backed fallback
//   - Close releases the mapping
//
// # Thread Safety
//
// Growers are not thread-safe. The allocator that owns one is the only
// mutator.
package memlib

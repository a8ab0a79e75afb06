package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/heap/verify"
	"github.com/joshuapare/segheap/internal/format"
)

// testMaxHeap is large enough for every unit test in this package.
const testMaxHeap = 4 << 20

// newTestAllocator builds an allocator over a fresh slice heap.
func newTestAllocator(t testing.TB, opts *Options) *Allocator {
	t.Helper()
	return newTestAllocatorWithMax(t, testMaxHeap, opts)
}

func newTestAllocatorWithMax(t testing.TB, maxHeap int, opts *Options) *Allocator {
	t.Helper()
	a, err := New(memlib.NewSliceHeap(maxHeap), opts)
	require.NoError(t, err)
	assertInvariants(t, a)
	return a
}

// assertInvariants runs the full heap checker and fails on any finding.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	for _, e := range verify.Check(a) {
		assert.Fail(t, "heap invariant violated", "%v", e)
	}
	if t.Failed() {
		t.FailNow()
	}
}

// setupGrowCounter counts heap extensions from now on.
func setupGrowCounter(a *Allocator) *int {
	growCount := 0
	a.onGrow = func(int) { growCount++ }
	return &growCount
}

// mustAlloc allocates and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, size int) Ptr {
	t.Helper()
	p, err := a.Alloc(size)
	require.NoError(t, err)
	require.NotEqual(t, Nil, p)
	return p
}

// fillPattern writes a pointer-derived pattern over p's first n payload bytes.
func fillPattern(t testing.TB, a *Allocator, p Ptr, n int) {
	t.Helper()
	payload := a.Bytes(p)
	require.GreaterOrEqual(t, len(payload), n)
	for i := range n {
		payload[i] = patternByte(p, i)
	}
}

// checkPattern verifies n bytes at q still hold the pattern written for p.
func checkPattern(t testing.TB, a *Allocator, q Ptr, p Ptr, n int) {
	t.Helper()
	payload := a.Bytes(q)
	require.GreaterOrEqual(t, len(payload), n)
	for i := range n {
		require.Equal(t, patternByte(p, i), payload[i], "payload byte %d", i)
	}
}

func patternByte(p Ptr, i int) byte {
	return byte(int(p)*31 + i*7 + 1)
}

// chainBlocks returns the physical chain.
func chainBlocks(a *Allocator) []Block {
	var out []Block
	a.Walk(func(b Block) bool {
		out = append(out, b)
		return true
	})
	return out
}

// freeChainCount counts free blocks on the physical chain.
func freeChainCount(a *Allocator) int {
	n := 0
	for _, b := range chainBlocks(a) {
		if !b.Allocated {
			n++
		}
	}
	return n
}

// listBlocks returns the blocks of free list idx in list order.
func listBlocks(t testing.TB, a *Allocator, idx int) []Ptr {
	t.Helper()
	var out []Ptr
	require.NoError(t, a.FreeList(idx, func(b Block) bool {
		out = append(out, b.Ptr)
		return true
	}))
	return out
}

// initialHeapSize is the heap size right after New with default options.
func initialHeapSize() int {
	return format.NewLayout(len(DefaultConfig.Breakpoints)+1).InitSize() + DefaultChunkSize
}

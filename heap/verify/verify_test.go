package verify_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/heap/verify"
	"github.com/joshuapare/segheap/internal/format"
)

// newFixture returns an allocator holding five adjacent 128-byte blocks
// followed by a free tail.
func newFixture(t *testing.T) (*alloc.Allocator, []alloc.Ptr) {
	t.Helper()
	a, err := alloc.New(memlib.NewSliceHeap(1<<16), &alloc.Options{ChunkSize: 4096})
	require.NoError(t, err)

	var ptrs []alloc.Ptr
	for range 5 {
		p, err := a.Alloc(100)
		require.NoError(t, err)
		ptrs = append(ptrs, p)
	}
	require.Empty(t, verify.Check(a))
	return a, ptrs
}

func findingTypes(errs []*verify.ValidationError) []string {
	var types []string
	for _, e := range errs {
		types = append(types, e.Type)
	}
	return types
}

func TestCheck_CleanHeap(t *testing.T) {
	a, ptrs := newFixture(t)
	require.NoError(t, a.Free(ptrs[1]))
	require.NoError(t, a.Free(ptrs[3]))

	require.Empty(t, verify.Check(a))
	require.NoError(t, verify.AllInvariants(a))
}

func TestCheck_TagMismatch(t *testing.T) {
	a, ptrs := newFixture(t)
	data := a.Heap()
	bp := int(ptrs[2])
	format.PutWord(data, format.FooterOff(bp, 128), format.Pack(96, true))

	errs := verify.Check(a)
	require.Equal(t, []string{verify.TypeTagMismatch}, findingTypes(errs))
	assert.Equal(t, bp, errs[0].Offset)
	assert.Error(t, verify.AllInvariants(a))
}

func TestCheck_Prologue(t *testing.T) {
	a, _ := newFixture(t)
	l := a.Layout()
	format.PutWord(a.Heap(), format.HeaderOff(l.PrologueBP), format.Pack(l.PrologueSize, false))

	errs := verify.Check(a)
	require.Equal(t, []string{verify.TypePrologue}, findingTypes(errs))
}

func TestCheck_PrologueFooter(t *testing.T) {
	a, _ := newFixture(t)
	l := a.Layout()
	format.PutWord(a.Heap(), format.FooterOff(l.PrologueBP, l.PrologueSize), 0)

	require.Equal(t, []string{verify.TypePrologue}, findingTypes(verify.Check(a)))
}

func TestCheck_Epilogue(t *testing.T) {
	a, _ := newFixture(t)
	data := a.Heap()
	format.PutWord(data, len(data)-format.WordSize, format.Pack(0, false))

	require.Equal(t, []string{verify.TypeEpilogue}, findingTypes(verify.Check(a)))
}

func TestCheck_AdjacentFree(t *testing.T) {
	a, ptrs := newFixture(t)
	require.NoError(t, a.Free(ptrs[1]))

	// mark the neighbour free behind the allocator's back
	data := a.Heap()
	bp := int(ptrs[2])
	format.PutWord(data, format.HeaderOff(bp), format.Pack(128, false))
	format.PutWord(data, format.FooterOff(bp, 128), format.Pack(128, false))

	types := findingTypes(verify.Check(a))
	require.Contains(t, types, verify.TypeAdjacentFree)
	require.Contains(t, types, verify.TypeFreeCountMismatch)
}

func TestCheck_AllocatedInFreeList(t *testing.T) {
	a, ptrs := newFixture(t)
	require.NoError(t, a.Free(ptrs[2]))

	data := a.Heap()
	bp := int(ptrs[2])
	format.PutWord(data, format.HeaderOff(bp), format.Pack(128, true))
	format.PutWord(data, format.FooterOff(bp, 128), format.Pack(128, true))

	types := findingTypes(verify.Check(a))
	require.Contains(t, types, verify.TypeAllocatedInList)
	require.Contains(t, types, verify.TypeFreeCountMismatch)
}

func TestCheck_WrongBucket(t *testing.T) {
	a, ptrs := newFixture(t)
	require.NoError(t, a.Free(ptrs[2]))

	data := a.Heap()
	l := a.Layout()
	bp := int(ptrs[2])
	right := a.ClassOf(128)
	wrong := right + 1

	// move the block from its bucket into the next one
	format.PutWord(data, l.SlotOff(right), format.NoBlock)
	format.PutWord(data, l.SlotOff(wrong), uint64(bp))
	format.PutWord(data, bp+format.PrevLinkOffset, format.AnchorLink(wrong))

	errs := verify.Check(a)
	require.Equal(t, []string{verify.TypeWrongBucket}, findingTypes(errs))
	assert.Equal(t, right, errs[0].Details["want"])
	assert.Equal(t, wrong, errs[0].Details["got"])
}

func TestCheck_FreeListCycle(t *testing.T) {
	a, ptrs := newFixture(t)
	require.NoError(t, a.Free(ptrs[1]))
	require.NoError(t, a.Free(ptrs[3]))

	// list is ptrs[3] -> ptrs[1]; close the loop
	format.PutWord(a.Heap(), int(ptrs[1])+format.NextLinkOffset, uint64(ptrs[3]))

	require.Equal(t, []string{verify.TypeFreeListCycle}, findingTypes(verify.Check(a)))
}

func TestCheck_BrokenLinks(t *testing.T) {
	a, ptrs := newFixture(t)
	require.NoError(t, a.Free(ptrs[1]))
	require.NoError(t, a.Free(ptrs[3]))
	data := a.Heap()

	format.PutWord(data, int(ptrs[1])+format.PrevLinkOffset, format.AnchorLink(0))
	require.Equal(t, []string{verify.TypeBrokenLink}, findingTypes(verify.Check(a)))

	// restore, then point next outside the heap
	format.PutWord(data, int(ptrs[1])+format.PrevLinkOffset, uint64(ptrs[3]))
	require.Empty(t, verify.Check(a))
	format.PutWord(data, int(ptrs[1])+format.NextLinkOffset, 8)
	types := findingTypes(verify.Check(a))
	require.Contains(t, types, verify.TypeBrokenLink)
}

func TestCheck_BadBlockSize(t *testing.T) {
	a, ptrs := newFixture(t)
	format.PutWord(a.Heap(), format.HeaderOff(int(ptrs[0])), format.Pack(24, true))

	types := findingTypes(verify.Check(a))
	require.Contains(t, types, verify.TypeBlockSize)
}

func TestValidationError_Error(t *testing.T) {
	e := &verify.ValidationError{Type: verify.TypeBounds, Message: "boom", Offset: 16}
	require.Equal(t, "Bounds at offset 16: boom", e.Error())

	e.Offset = -1
	require.Equal(t, "Bounds: boom", e.Error())
}

func TestReport(t *testing.T) {
	a, ptrs := newFixture(t)
	var out bytes.Buffer
	require.Zero(t, verify.Report(&out, a, true))
	require.Contains(t, out.String(), "end of heap")

	format.PutWord(a.Heap(), format.FooterOff(int(ptrs[0]), 128), 0)
	out.Reset()
	require.Equal(t, 1, verify.Report(&out, a, false))
	require.Contains(t, out.String(), "Error: TagMismatch")
}

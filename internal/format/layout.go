package format

// Layout describes where the fixed structures of a heap live. Offsets are
// payload offsets (block pointers) unless named otherwise.
//
//	0                padding word
//	PrologueBP-8     prologue header  Pack(PrologueSize, true)
//	BucketBase       NumClasses bucket slots (+1 pad slot when odd)
//	..               prologue footer
//	FirstBlock-8     first block header (the epilogue on an empty heap)
type Layout struct {
	PrologueBP   int
	PrologueSize int
	BucketBase   int
	NumClasses   int
	FirstBlock   int
}

// NewLayout computes the layout for a bucket table of numClasses slots.
// The slot count is padded to an even number of words so that the prologue
// size, and therefore every later block, stays double-word aligned.
func NewLayout(numClasses int) Layout {
	slots := numClasses
	if slots%2 != 0 {
		slots++
	}
	prologueBP := 2 * WordSize
	prologueSize := slots*WordSize + BlockOverhead
	return Layout{
		PrologueBP:   prologueBP,
		PrologueSize: prologueSize,
		BucketBase:   prologueBP,
		NumClasses:   numClasses,
		FirstBlock:   prologueBP + prologueSize,
	}
}

// InitSize is the byte count of the initial heap: padding, prologue and the
// epilogue header.
func (l Layout) InitSize() int {
	return l.FirstBlock
}

// SlotOff returns the offset of bucket slot idx.
func (l Layout) SlotOff(idx int) int {
	return l.BucketBase + idx*WordSize
}

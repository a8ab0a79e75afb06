package format

import "testing"

func TestPackRoundTrip(t *testing.T) {
	cases := []struct {
		size  int
		alloc bool
	}{
		{0, true},
		{MinBlockSize, false},
		{MinBlockSize, true},
		{144, true},
		{1 << 20, false},
	}
	for _, c := range cases {
		tag := Pack(c.size, c.alloc)
		if SizeOf(tag) != c.size {
			t.Fatalf("SizeOf(Pack(%d,%v)) = %d", c.size, c.alloc, SizeOf(tag))
		}
		if IsAllocated(tag) != c.alloc {
			t.Fatalf("IsAllocated(Pack(%d,%v)) = %v", c.size, c.alloc, IsAllocated(tag))
		}
	}
}

func TestSizeOfIgnoresLowBits(t *testing.T) {
	if got := SizeOf(0x47); got != 0x40 {
		t.Fatalf("SizeOf(0x47) = %#x, want 0x40", got)
	}
}

func TestBlockAddressMath(t *testing.T) {
	bp, size := 160, 48
	if HeaderOff(bp) != 152 {
		t.Fatalf("HeaderOff = %d", HeaderOff(bp))
	}
	if FooterOff(bp, size) != 192 {
		t.Fatalf("FooterOff = %d", FooterOff(bp, size))
	}
	if NextBlockOff(bp, size) != 208 {
		t.Fatalf("NextBlockOff = %d", NextBlockOff(bp, size))
	}
	// the next block's header is the word right after our footer
	if HeaderOff(NextBlockOff(bp, size)) != FooterOff(bp, size)+WordSize {
		t.Fatalf("next header does not follow footer")
	}
	if PrevFooterOff(bp) != 144 {
		t.Fatalf("PrevFooterOff = %d", PrevFooterOff(bp))
	}
}

func TestAnchorLinks(t *testing.T) {
	for idx := 0; idx < 15; idx++ {
		link := AnchorLink(idx)
		if !IsAnchorLink(link) {
			t.Fatalf("AnchorLink(%d) not tagged", idx)
		}
		if AnchorIndex(link) != idx {
			t.Fatalf("AnchorIndex = %d, want %d", AnchorIndex(link), idx)
		}
	}
	if IsAnchorLink(160) {
		t.Fatalf("block offset reported as anchor")
	}
}

func TestWordIO(t *testing.T) {
	b := make([]byte, 32)
	PutWord(b, 8, Pack(64, true))
	if ReadWord(b, 8) != 65 {
		t.Fatalf("ReadWord = %d", ReadWord(b, 8))
	}
	PutU64(b, 16, 0xdeadbeefcafef00d)
	if ReadU64(b, 16) != 0xdeadbeefcafef00d {
		t.Fatalf("ReadU64 mismatch")
	}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(15)
	if l.PrologueBP != 16 || l.BucketBase != 16 {
		t.Fatalf("unexpected prologue placement: %+v", l)
	}
	if l.PrologueSize != 144 {
		t.Fatalf("PrologueSize = %d, want 144", l.PrologueSize)
	}
	if l.FirstBlock != 160 || !IsAlignedDW(l.FirstBlock) {
		t.Fatalf("FirstBlock = %d, want aligned 160", l.FirstBlock)
	}
	if l.InitSize() != 160 {
		t.Fatalf("InitSize = %d", l.InitSize())
	}
	if l.SlotOff(14) != 16+14*8 {
		t.Fatalf("SlotOff(14) = %d", l.SlotOff(14))
	}
	// the prologue footer sits right before the first header
	if FooterOff(l.PrologueBP, l.PrologueSize)+WordSize != HeaderOff(l.FirstBlock) {
		t.Fatalf("prologue footer and first header are not adjacent")
	}

	even := NewLayout(4)
	if even.PrologueSize != 48 || !IsAlignedDW(even.FirstBlock) {
		t.Fatalf("even layout misaligned: %+v", even)
	}
}

package format

// Boundary tags.
//
// A tag is the word stored in a block's header and footer:
//
//	tag = size | AllocBit (when allocated)
//
// Given a payload offset bp:
//
//	header   = bp - WordSize
//	footer   = bp + size - DoubleWordSize
//	next blk = bp + size
//	prev blk = bp - SizeOf(word at bp - DoubleWordSize)

// Pack combines a block size and allocation flag into a tag.
func Pack(size int, allocated bool) uint64 {
	tag := uint64(size)
	if allocated {
		tag |= AllocBit
	}
	return tag
}

// SizeOf extracts the block size from a tag.
func SizeOf(tag uint64) int {
	return int(tag & SizeMask)
}

// IsAllocated reports whether a tag carries the allocated flag.
func IsAllocated(tag uint64) bool {
	return tag&AllocBit != 0
}

// HeaderOff returns the header offset of the block whose payload is at bp.
func HeaderOff(bp int) int {
	return bp - WordSize
}

// FooterOff returns the footer offset for a block of the given size.
func FooterOff(bp, size int) int {
	return bp + size - DoubleWordSize
}

// NextBlockOff returns the payload offset of the physically next block.
func NextBlockOff(bp, size int) int {
	return bp + size
}

// PrevFooterOff returns the offset of the previous block's footer, the word
// immediately preceding bp's header.
func PrevFooterOff(bp int) int {
	return bp - DoubleWordSize
}

// AnchorLink encodes a prev link that points at bucket slot idx.
func AnchorLink(idx int) uint64 {
	return AnchorTag | uint64(idx)
}

// IsAnchorLink reports whether a prev link names a bucket slot.
func IsAnchorLink(link uint64) bool {
	return link&AnchorTag != 0
}

// AnchorIndex decodes the bucket index from an anchor link.
func AnchorIndex(link uint64) int {
	return int(link &^ AnchorTag)
}

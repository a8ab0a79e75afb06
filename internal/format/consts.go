package format

// Heap layout constants. Sizes are in bytes.
const (
	// WordSize is the size of a boundary tag and of a free-list link.
	WordSize = 8

	// DoubleWordSize is the block alignment. Every payload offset and every
	// block size is a multiple of it.
	DoubleWordSize = 2 * WordSize

	// DoubleWordMask is the bitmask used for aligning to DoubleWordSize.
	DoubleWordMask = DoubleWordSize - 1

	// MinBlockSize is header + next link + prev link + footer.
	MinBlockSize = 2 * DoubleWordSize

	// BlockOverhead is header + footer.
	BlockOverhead = DoubleWordSize

	// AllocBit marks a tag as allocated. Sizes are word multiples, so the
	// low bits are free for flags.
	AllocBit = 0x1

	// SizeMask strips the flag bits from a tag.
	SizeMask = ^uint64(WordSize - 1)

	// NextLinkOffset and PrevLinkOffset locate the free-list links inside a
	// free block's payload.
	NextLinkOffset = 0
	PrevLinkOffset = WordSize

	// NoBlock is the "none" value for a next link or an empty bucket slot.
	// Offset 0 is the alignment padding word and never starts a payload.
	NoBlock = 0

	// AnchorTag marks a prev link that points at a bucket slot instead of
	// a block. The low bits then carry the bucket index.
	AnchorTag = uint64(1) << 63
)

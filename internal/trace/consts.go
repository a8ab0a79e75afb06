package trace

const (
	// ============================================================================
	// Operation Tokens
	// ============================================================================

	// OpAllocToken starts an allocation line: "a <id> <size>"
	OpAllocToken = "a"

	// OpFreeToken starts a free line: "f <id>"
	OpFreeToken = "f"

	// OpReallocToken starts a reallocation line: "r <id> <size>"
	OpReallocToken = "r"

	// CommentPrefix marks a comment line or a trailing comment
	CommentPrefix = "#"

	// ============================================================================
	// Header
	// ============================================================================

	// HeaderLines is the number of integer lines before the first operation:
	// suggested heap size, id count, op count, weight
	HeaderLines = 4

	// ============================================================================
	// Scanner Limits
	// ============================================================================

	// ScannerInitialBufferSize is the initial bufio.Scanner buffer
	ScannerInitialBufferSize = 64 * 1024

	// ScannerMaxLineSize bounds a single trace line
	ScannerMaxLineSize = 1024 * 1024

	// InitialOpCapacity is used when the header op count is implausible
	InitialOpCapacity = 1024

	// MaxPreallocOps caps the capacity reserved from the header op count
	MaxPreallocOps = 1 << 20
)

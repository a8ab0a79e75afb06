package format

// AlignDW returns n aligned up to the next double-word boundary.
//
// Example:
//
//	AlignDW(1)  = 16
//	AlignDW(16) = 16
//	AlignDW(17) = 32
func AlignDW(n int) int {
	return (n + DoubleWordMask) & ^DoubleWordMask
}

// IsAlignedDW reports whether n sits on a double-word boundary.
func IsAlignedDW(n int) bool {
	return n&DoubleWordMask == 0
}

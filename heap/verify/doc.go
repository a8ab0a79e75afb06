// Package verify provides heap consistency checks for the segheap allocator.
//
// # Overview
//
// The checks walk the raw heap image twice, once along the physical block
// chain and once along every size-class list, and compare the two views.
// They never trust a tag or link blindly: every read is bounds-checked and
// list walks are capped, so a corrupt heap yields findings instead of a
// panic or an endless loop. The allocator itself never calls this package.
//
// Validation categories:
//   - Prologue: header/footer present, allocated, expected size
//   - Block chain: alignment, minimum size, header == footer, no two
//     adjacent free blocks, epilogue at the break
//   - Free lists: members free, in the right class, back links consistent,
//     no cycles, no blocks outside the chain
//   - Counts: free blocks in the chain == free blocks in the lists
//
// # Quick Start
//
//	if err := verify.AllInvariants(a); err != nil {
//	    t.Fatalf("heap corrupt: %v", err)
//	}
//
// Collect every finding instead of the first:
//
//	for _, f := range verify.Check(a) {
//	    fmt.Println(f)
//	}
//
// # ValidationError
//
// All findings are *ValidationError:
//
//	type ValidationError struct {
//	    Type    string                 // Finding category (e.g., "TagMismatch")
//	    Message string                 // Human-readable description
//	    Offset  int                    // Heap offset where it was found (-1 if N/A)
//	    Details map[string]interface{} // Additional context
//	}
//
// # Related Packages
//
//   - github.com/joshuapare/segheap/heap/alloc: the allocator being checked
//   - github.com/joshuapare/segheap/heap/printer: block dumps used by Report
package verify

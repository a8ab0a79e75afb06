// Package trace reads and writes allocator trace files.
//
// A trace is four header lines followed by one operation per line:
//
//	20000      suggested heap size
//	2          number of block ids
//	3          number of operations
//	1          weight
//	a 0 512    allocate 512 bytes as id 0
//	r 0 1024   reallocate id 0 to 1024 bytes
//	f 0        free id 0
//
// Input may carry a UTF-8 or UTF-16 byte order mark.
package trace

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned for malformed trace input.
var ErrSyntax = errors.New("trace: syntax error")

// Kind is an operation type.
type Kind byte

const (
	Alloc   Kind = 'a'
	Free    Kind = 'f'
	Realloc Kind = 'r'
)

func (k Kind) String() string {
	switch k {
	case Alloc:
		return "alloc"
	case Free:
		return "free"
	case Realloc:
		return "realloc"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Op is one trace operation.
type Op struct {
	Kind Kind
	ID   int
	Size int // unused for Free
	Line int // source line, 0 for generated traces
}

// Trace is a parsed trace file.
type Trace struct {
	Name          string // file name or caller label
	SuggestedHeap int
	NumIDs        int
	Weight        int
	Ops           []Op
}

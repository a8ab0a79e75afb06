package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseFile parses the trace at path. The trace is named after the file.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// Parse reads a trace. Blank lines and # comments are ignored. The header
// op count must match the number of operations, and every id must be below
// the header id count.
func Parse(r io.Reader) (*Trace, error) {
	// Traces written on Windows tools often arrive as UTF-16 with a BOM
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	buf := make([]byte, 0, ScannerInitialBufferSize)
	scanner.Buffer(buf, ScannerMaxLineSize)

	t := &Trace{}
	var header []int
	numOps := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		if len(header) < HeaderLines {
			v, err := strconv.Atoi(line)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("%w: line %d: header value %q", ErrSyntax, lineNo, line)
			}
			header = append(header, v)
			if len(header) == HeaderLines {
				t.SuggestedHeap, t.NumIDs, numOps, t.Weight = header[0], header[1], header[2], header[3]
				capacity := numOps
				if capacity > MaxPreallocOps {
					capacity = InitialOpCapacity
				}
				t.Ops = make([]Op, 0, capacity)
			}
			continue
		}

		op, err := parseOp(line, lineNo)
		if err != nil {
			return nil, err
		}
		if op.ID >= t.NumIDs {
			return nil, fmt.Errorf("%w: line %d: id %d outside [0, %d)", ErrSyntax, lineNo, op.ID, t.NumIDs)
		}
		t.Ops = append(t.Ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}

	if len(header) < HeaderLines {
		return nil, fmt.Errorf("%w: header has %d of %d lines", ErrSyntax, len(header), HeaderLines)
	}
	if len(t.Ops) != numOps {
		return nil, fmt.Errorf("%w: header declares %d ops, found %d", ErrSyntax, numOps, len(t.Ops))
	}
	return t, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, CommentPrefix); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// parseOp decodes one operation line.
func parseOp(line string, lineNo int) (Op, error) {
	fields := strings.Fields(line)
	op := Op{Line: lineNo}

	var want int
	switch fields[0] {
	case OpAllocToken:
		op.Kind, want = Alloc, 3
	case OpReallocToken:
		op.Kind, want = Realloc, 3
	case OpFreeToken:
		op.Kind, want = Free, 2
	default:
		return Op{}, fmt.Errorf("%w: line %d: unknown op %q", ErrSyntax, lineNo, fields[0])
	}
	if len(fields) != want {
		return Op{}, fmt.Errorf("%w: line %d: %s takes %d fields, got %d", ErrSyntax, lineNo, op.Kind, want-1, len(fields)-1)
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil || id < 0 {
		return Op{}, fmt.Errorf("%w: line %d: bad id %q", ErrSyntax, lineNo, fields[1])
	}
	op.ID = id

	if want == 3 {
		size, err := strconv.Atoi(fields[2])
		if err != nil || size < 0 {
			return Op{}, fmt.Errorf("%w: line %d: bad size %q", ErrSyntax, lineNo, fields[2])
		}
		op.Size = size
	}
	return op, nil
}

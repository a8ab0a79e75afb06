// Package replay runs allocator traces against a fresh heap and checks the
// results: payload integrity, alignment, overlap and, optionally, the full
// set of heap invariants after every operation.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/heap/memlib"
	"github.com/joshuapare/segheap/heap/verify"
	"github.com/joshuapare/segheap/internal/format"
	"github.com/joshuapare/segheap/internal/trace"
)

var (
	// ErrBadOp indicates a trace operation on an id in the wrong state.
	ErrBadOp = errors.New("replay: invalid operation for id")

	// ErrMisaligned indicates a returned payload is not double-word aligned.
	ErrMisaligned = errors.New("replay: payload not aligned")

	// ErrOverlap indicates two live payloads share bytes.
	ErrOverlap = errors.New("replay: payloads overlap")

	// ErrCorrupt indicates a payload lost its contents.
	ErrCorrupt = errors.New("replay: payload corrupted")

	// ErrInvariant indicates the heap checker found a problem.
	ErrInvariant = errors.New("replay: heap invariant violated")
)

// Config selects the heap the trace runs on.
type Config struct {
	// Alloc holds allocator options (nil for defaults).
	Alloc *alloc.Options

	// MaxHeap is the grower reservation (0 for memlib.DefaultMaxHeap).
	MaxHeap int

	// UseMmap backs the heap with an anonymous mapping instead of a slice.
	UseMmap bool

	// CheckEach runs the heap checker after every operation.
	CheckEach bool
}

// Result summarises one run.
type Result struct {
	Name        string
	Ops         int
	PeakPayload int // largest sum of live request sizes
	HeapSize    int
	Utilization float64 // PeakPayload / HeapSize
	Stats       alloc.Stats
}

// block is a live trace id.
type block struct {
	p    alloc.Ptr
	size int
}

// Replayer owns one heap and runs a trace on it.
type Replayer struct {
	cfg   Config
	g     memlib.Grower
	close func() error
	a     *alloc.Allocator

	live    map[int]block
	payload int
	peak    int
}

// New reserves the heap and initializes the allocator.
func New(cfg Config) (*Replayer, error) {
	r := &Replayer{cfg: cfg, live: make(map[int]block)}
	if cfg.UseMmap {
		m, err := memlib.NewMmapHeap(cfg.MaxHeap)
		if err != nil {
			return nil, err
		}
		r.g, r.close = m, m.Close
	} else {
		s := memlib.NewSliceHeap(cfg.MaxHeap)
		r.g, r.close = s, s.Close
	}

	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

// init builds the allocator on the reserved heap. On failure the
// reservation is released and any release error is joined in.
func (r *Replayer) init() error {
	a, err := alloc.New(r.g, r.cfg.Alloc)
	if err != nil {
		return errors.Join(fmt.Errorf("replay: init: %w", err), r.close())
	}
	r.a = a
	return nil
}

// Allocator returns the allocator under test.
func (r *Replayer) Allocator() *alloc.Allocator {
	return r.a
}

// Close releases the heap reservation.
func (r *Replayer) Close() error {
	return r.close()
}

// Run executes every operation of t in order and stops at the first
// failure. The returned error names the failing operation.
func (r *Replayer) Run(t *trace.Trace) (*Result, error) {
	for i, op := range t.Ops {
		if err := r.step(op); err != nil {
			return nil, fmt.Errorf("%s: op %d (%s id %d, line %d): %w", t.Name, i, op.Kind, op.ID, op.Line, err)
		}
		if r.cfg.CheckEach {
			if err := verify.AllInvariants(r.a); err != nil {
				return nil, fmt.Errorf("%s: after op %d: %w: %w", t.Name, i, ErrInvariant, err)
			}
		}
	}

	res := &Result{
		Name:        t.Name,
		Ops:         len(t.Ops),
		PeakPayload: r.peak,
		HeapSize:    r.a.HeapSize(),
		Stats:       r.a.Stats(),
	}
	if res.HeapSize > 0 {
		res.Utilization = float64(res.PeakPayload) / float64(res.HeapSize)
	}
	return res, nil
}

// step applies one operation.
func (r *Replayer) step(op trace.Op) error {
	switch op.Kind {
	case trace.Alloc:
		if _, ok := r.live[op.ID]; ok {
			return fmt.Errorf("%w: id already live", ErrBadOp)
		}
		p, err := r.a.Alloc(op.Size)
		if err != nil {
			return err
		}
		if err := r.admit(op.ID, p, op.Size); err != nil {
			return err
		}
		r.fill(op.ID, p, 0, op.Size)

	case trace.Realloc:
		b, ok := r.live[op.ID]
		if !ok {
			return fmt.Errorf("%w: realloc of id that is not live", ErrBadOp)
		}
		if err := r.check(op.ID, b); err != nil {
			return err
		}
		delete(r.live, op.ID)
		r.payload -= b.size

		p, err := r.a.Realloc(b.p, op.Size)
		if err != nil {
			return err
		}
		if err := r.admit(op.ID, p, op.Size); err != nil {
			return err
		}
		keep := min(b.size, op.Size)
		if err := r.check(op.ID, block{p: p, size: keep}); err != nil {
			return fmt.Errorf("realloc lost data: %w", err)
		}
		r.fill(op.ID, p, keep, op.Size)

	case trace.Free:
		b, ok := r.live[op.ID]
		if !ok {
			return fmt.Errorf("%w: free of id that is not live", ErrBadOp)
		}
		if err := r.check(op.ID, b); err != nil {
			return err
		}
		if err := r.a.Free(b.p); err != nil {
			return err
		}
		delete(r.live, op.ID)
		r.payload -= b.size

	default:
		return fmt.Errorf("%w: unknown kind %v", ErrBadOp, op.Kind)
	}
	return nil
}

// admit records a fresh payload after checking alignment, bounds and
// overlap with every other live payload.
func (r *Replayer) admit(id int, p alloc.Ptr, size int) error {
	if size == 0 {
		// zero-size requests hold no block; the id stays live with Nil
		r.live[id] = block{p: p}
		return nil
	}
	if !format.IsAlignedDW(int(p)) {
		return fmt.Errorf("%w: %d", ErrMisaligned, p)
	}
	lo, hi := int(p), int(p)+size
	if hi > r.a.HeapSize() {
		return fmt.Errorf("%w: [%d, %d) past heap end %d", ErrOverlap, lo, hi, r.a.HeapSize())
	}
	for other, b := range r.live {
		if lo < int(b.p)+b.size && int(b.p) < hi {
			return fmt.Errorf("%w: id %d [%d, %d) and id %d [%d, %d)", ErrOverlap, id, lo, hi, other, b.p, int(b.p)+b.size)
		}
	}
	r.live[id] = block{p: p, size: size}
	r.payload += size
	r.peak = max(r.peak, r.payload)
	return nil
}

func patternByte(id, i int) byte {
	return byte(id*131 + i)
}

// fill writes id's pattern over payload bytes [from, to).
func (r *Replayer) fill(id int, p alloc.Ptr, from, to int) {
	payload := r.a.Bytes(p)
	for i := from; i < to; i++ {
		payload[i] = patternByte(id, i)
	}
}

// check verifies b still holds id's pattern.
func (r *Replayer) check(id int, b block) error {
	if b.size == 0 {
		return nil
	}
	payload := r.a.Bytes(b.p)
	if len(payload) < b.size {
		return fmt.Errorf("%w: id %d at %d: payload %d bytes, want %d", ErrCorrupt, id, b.p, len(payload), b.size)
	}
	for i := range b.size {
		if payload[i] != patternByte(id, i) {
			return fmt.Errorf("%w: id %d at %d: byte %d", ErrCorrupt, id, b.p, i)
		}
	}
	return nil
}

// Run replays t on a fresh heap built from cfg.
func Run(t *trace.Trace, cfg Config) (*Result, error) {
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Run(t)
}

// PrintResults writes one line per result and an average, in the layout
// of the classic driver summary.
func PrintResults(w io.Writer, results []*Result) {
	fmt.Fprintf(w, "%-20s %8s %10s %10s %7s\n", "trace", "ops", "peak", "heap", "util")
	var total float64
	for _, res := range results {
		fmt.Fprintf(w, "%-20s %8d %10d %10d %6.1f%%\n",
			res.Name, res.Ops, res.PeakPayload, res.HeapSize, 100*res.Utilization)
		total += res.Utilization
	}
	if len(results) > 0 {
		fmt.Fprintf(w, "%-20s %8s %10s %10s %6.1f%%\n", "average", "", "", "", 100*total/float64(len(results)))
	}
}

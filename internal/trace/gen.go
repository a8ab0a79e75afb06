package trace

import "math/rand"

// GenOptions shapes a generated trace.
type GenOptions struct {
	Seed    int64
	NumIDs  int // distinct block ids
	MaxSize int // largest request
	Weight  int
}

// Generate builds a well-formed random trace: ids are allocated before
// being freed or reallocated, and every id is freed by the end. The trace
// has 2*NumIDs + reallocs operations.
func Generate(opts GenOptions) *Trace {
	if opts.NumIDs <= 0 {
		opts.NumIDs = 1
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 4096
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	t := &Trace{
		Name:   "generated",
		NumIDs: opts.NumIDs,
		Weight: opts.Weight,
	}

	next := 0 // next id to allocate
	var live []int
	peak, cur := 0, 0
	sizes := make([]int, opts.NumIDs)

	for next < opts.NumIDs || len(live) > 0 {
		r := rng.Intn(10)
		switch {
		case next < opts.NumIDs && (len(live) == 0 || r < 5):
			size := 1 + rng.Intn(opts.MaxSize)
			t.Ops = append(t.Ops, Op{Kind: Alloc, ID: next, Size: size})
			sizes[next] = size
			cur += size
			live = append(live, next)
			next++

		case r < 7:
			i := rng.Intn(len(live))
			id := live[i]
			size := 1 + rng.Intn(opts.MaxSize)
			t.Ops = append(t.Ops, Op{Kind: Realloc, ID: id, Size: size})
			cur += size - sizes[id]
			sizes[id] = size

		default:
			i := rng.Intn(len(live))
			id := live[i]
			t.Ops = append(t.Ops, Op{Kind: Free, ID: id})
			cur -= sizes[id]
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		}
		peak = max(peak, cur)
	}
	t.SuggestedHeap = peak
	return t
}

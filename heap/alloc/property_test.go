package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRandomWorkload runs a seeded mix of Alloc/Free/Realloc, validating
// the whole heap and every live payload after each operation.
func TestRandomWorkload(t *testing.T) {
	configs := map[string]*Options{
		"defaults":         nil,
		"coalesce-on-grow": {CoalesceOnGrow: true},
		"pow2-big-chunk":   {Classes: &ConfigPow2, ChunkSize: 4096},
	}
	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			runRandomWorkload(t, opts, 42, 1500)
		})
	}
}

func randomSize(rng *rand.Rand) int {
	switch rng.Intn(10) {
	case 0:
		return 1 + rng.Intn(5000)
	case 1, 2:
		return 256 + rng.Intn(768)
	default:
		return 1 + rng.Intn(256)
	}
}

func runRandomWorkload(t *testing.T, opts *Options, seed int64, ops int) {
	a := newTestAllocator(t, opts)
	rng := rand.New(rand.NewSource(seed))

	// live maps each pointer to its requested size; the pattern key follows
	// the pointer the data was first written at
	type entry struct {
		size int
		key  Ptr
	}
	live := map[Ptr]entry{}
	var order []Ptr

	pick := func() (int, Ptr) {
		i := rng.Intn(len(order))
		return i, order[i]
	}
	drop := func(i int) {
		order[i] = order[len(order)-1]
		order = order[:len(order)-1]
	}

	for op := range ops {
		switch r := rng.Intn(10); {
		case r < 5 || len(order) == 0:
			size := randomSize(rng)
			p := mustAlloc(t, a, size)
			_, dup := live[p]
			require.False(t, dup, "op %d: Alloc returned live pointer %d", op, p)
			fillPattern(t, a, p, size)
			live[p] = entry{size: size, key: p}
			order = append(order, p)

		case r < 8:
			i, p := pick()
			e := live[p]
			checkPattern(t, a, p, e.key, e.size)
			require.NoError(t, a.Free(p), "op %d", op)
			delete(live, p)
			drop(i)

		default:
			i, p := pick()
			e := live[p]
			size := randomSize(rng)
			np, err := a.Realloc(p, size)
			require.NoError(t, err, "op %d", op)
			require.Zero(t, int(np)%16)
			checkPattern(t, a, np, e.key, min(size, e.size))
			fillPattern(t, a, np, size)
			delete(live, p)
			drop(i)
			live[np] = entry{size: size, key: np}
			order = append(order, np)
		}
		assertInvariants(t, a)
	}

	for p, e := range live {
		checkPattern(t, a, p, e.key, e.size)
		require.NoError(t, a.Free(p))
	}
	assertInvariants(t, a)
	require.Equal(t, int64(0), a.Stats().BytesInUse)
	require.Equal(t, 1, freeChainCount(a))
}

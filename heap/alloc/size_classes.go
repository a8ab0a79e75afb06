package alloc

import "fmt"

// SizeClassConfig defines the bucket breakpoints.
//
// Breakpoints are inclusive upper bounds in ascending order. A block whose
// size exceeds the last breakpoint goes to the final class, so the number of
// classes is len(Breakpoints)+1.
type SizeClassConfig struct {
	// Name for this configuration (for logs and CLI output)
	Name string

	Breakpoints []int
}

// Predefined configurations.
var (
	// ConfigLiteral keeps the historical 2058 breakpoint.
	ConfigLiteral = SizeClassConfig{
		Name:        "Literal",
		Breakpoints: []int{2, 4, 8, 16, 32, 64, 144, 256, 512, 1024, 2058, 4096, 8192, 16384},
	}

	// ConfigPow2 uses 2048 where ConfigLiteral uses 2058.
	ConfigPow2 = SizeClassConfig{
		Name:        "Pow2",
		Breakpoints: []int{2, 4, 8, 16, 32, 64, 144, 256, 512, 1024, 2048, 4096, 8192, 16384},
	}

	// Default configuration (used if none specified).
	DefaultConfig = ConfigLiteral
)

// sizeClassTable holds the validated breakpoints.
type sizeClassTable struct {
	config     SizeClassConfig
	boundaries []int
	numClasses int
}

// newSizeClassTable validates config and builds the lookup table.
func newSizeClassTable(config SizeClassConfig) (*sizeClassTable, error) {
	if len(config.Breakpoints) == 0 {
		return nil, fmt.Errorf("alloc: size class config %q has no breakpoints", config.Name)
	}
	for i := 1; i < len(config.Breakpoints); i++ {
		if config.Breakpoints[i] <= config.Breakpoints[i-1] {
			return nil, fmt.Errorf("alloc: size class config %q not ascending at %d", config.Name, i)
		}
	}
	boundaries := make([]int, len(config.Breakpoints))
	copy(boundaries, config.Breakpoints)
	return &sizeClassTable{
		config:     config,
		boundaries: boundaries,
		numClasses: len(boundaries) + 1,
	}, nil
}

// getSizeClass returns the class index for a block size. Monotonic and total.
func (t *sizeClassTable) getSizeClass(size int) int {
	// Binary search for the smallest boundary >= size
	lo, hi := 0, len(t.boundaries)
	for lo < hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// String returns a human-readable description of the size class table.
func (t *sizeClassTable) String() string {
	return t.config.Name
}

// NumClasses returns the number of size classes, the overflow class included.
func (t *sizeClassTable) NumClasses() int {
	return t.numClasses
}

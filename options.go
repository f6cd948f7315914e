package lazysort

import (
	"math/rand"

	"github.com/niceyeti/lazysort/internal/partition"
)

// config holds the tunable constants from the pivot-tree driver, each
// exposed as an Option rather than a compile-time constant (the C
// reference reads these from a params.h header; Go callers set them per
// container instead).
type config struct {
	sortThresh    int
	contigThresh  int
	rng           *rand.Rand
	countCacheCap int
}

// defaultContigThresh is the slice-step threshold below which Slice
// sorts the whole covered range instead of sorting each selected index
// independently.
const defaultContigThresh = 8

func defaultConfig() config {
	return config{
		sortThresh:   partition.DefaultSortThresh,
		contigThresh: defaultContigThresh,
		rng:          nil,
	}
}

// Option configures a Sequence at construction time.
type Option func(*config)

// WithSortThreshold sets SORT_THRESH: ranges of this size or smaller are
// finished with insertion sort instead of continued partitioning.
func WithSortThreshold(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.sortThresh = n
		}
	}
}

// WithContigThreshold sets CONTIG_THRESH: Slice calls with |step| at or
// below this value sort the whole covered contiguous range up front
// rather than calling At for each selected position.
func WithContigThreshold(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.contigThresh = n
		}
	}
}

// WithRand supplies the *rand.Rand used to draw pivot priorities and
// partition pivots. Passing one explicitly makes pivot choice, and
// therefore timing (but never correctness), reproducible across runs —
// useful for tests. Without this option, each Sequence gets its own
// generator seeded from the runtime's entropy source, never a shared
// package-level one.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithCountCache enables an LRU cache of n most-recently-queried values'
// CountOf results. A value's multiset count never changes as a Sequence
// is queried (unlike its index, which can still move), so the cache
// never needs invalidation for the life of the Sequence. n <= 0 leaves
// counting uncached, the default.
//
// The cache is silently disabled for an element type T that reflection
// can tell ahead of time is never comparable (a slice, map, or func
// type) so that CountOf never risks an equality panic caching such a
// value.
func WithCountCache(n int) Option {
	return func(c *config) {
		c.countCacheCap = n
	}
}

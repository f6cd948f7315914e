// Package lazysort implements a lazily sorted sequence: a container that
// ingests a slice of elements once and then answers positional and
// membership queries by sorting only as much of the underlying slice as
// each query demands, via quickselect cooperating with a pivot treap.
//
// A Sequence is not safe for concurrent use, nor for concurrent read-only
// use: every query (including At) permutes the backing slice in place.
// A Sequence is owned by exactly one goroutine between calls.
package lazysort

import (
	"fmt"
	"math/rand"
	"reflect"
	"sync/atomic"

	"github.com/niceyeti/lazysort/internal/partition"
	"github.com/niceyeti/lazysort/internal/pivot"
	"github.com/niceyeti/lazysort/internal/querycache"
)

// Sequence is a partially-sorted view over a slice of T. Construct one
// with New; it owns xs for its lifetime and permutes it in place as
// queries are answered. It never resizes or replaces xs.
type Sequence[T any] struct {
	xs   []T
	cmp  Comparator[T]
	tree *pivot.Tree
	rng  *rand.Rand

	sortThresh   int
	contigThresh int

	countCache *querycache.Cache[any, int]

	inQuery atomic.Bool
}

// New builds a Sequence over items. items is not copied; New retains it
// and all subsequent queries permute it in place. A nil cmp is rejected
// with ErrInvalidComparator; for a T with a natural order, NewOrdered
// supplies the comparator instead.
func New[T any](items []T, cmp Comparator[T], opts ...Option) (*Sequence[T], error) {
	if cmp == nil {
		return nil, ErrInvalidComparator
	}

	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	var cache *querycache.Cache[any, int]
	if c.countCacheCap > 0 && reflect.TypeOf((*T)(nil)).Elem().Comparable() {
		// The cache keys on T boxed in an interface; map lookups over an
		// interface key panic at runtime if its dynamic type turns out
		// uncomparable (a slice, map, or func), so WithCountCache is
		// silently a no-op for element types reflect can tell ahead of
		// time are never comparable. A T that is itself an interface
		// type is reported comparable here but can still hold an
		// uncomparable dynamic value; that residual risk is the
		// caller's to avoid by not requesting the cache for such T.
		cache = querycache.New[any, int](c.countCacheCap)
	}

	return &Sequence[T]{
		xs:           items,
		cmp:          cmp,
		tree:         pivot.NewTree(len(items), c.rng),
		rng:          c.rng,
		sortThresh:   c.sortThresh,
		contigThresh: c.contigThresh,
		countCache:   cache,
	}, nil
}

// NewOrdered is a convenience constructor for element types with a
// natural order, equivalent to New(items, Ordered[T]{}, opts...).
func NewOrdered[T interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}](items []T, opts ...Option) (*Sequence[T], error) {
	return New(items, Ordered[T]{}, opts...)
}

// Len returns the number of elements. It never mutates the sequence and
// needs no query guard.
func (s *Sequence[T]) Len() int { return len(s.xs) }

// elemData adapts a Sequence to internal/partition.Data: comparisons go
// through the user's Comparator, swaps directly permute xs.
type elemData[T any] struct {
	s *Sequence[T]
}

func (d elemData[T]) Less(i, j int) (bool, error) {
	return d.s.cmp.Less(d.s.xs[i], d.s.xs[j])
}

func (d elemData[T]) Swap(i, j int) {
	d.s.xs[i], d.s.xs[j] = d.s.xs[j], d.s.xs[i]
}

var _ partition.Data = elemData[int]{}

// enterQuery marks the sequence as mid-query and returns a func to clear
// that mark. It exists purely to catch accidental reentrancy — a
// comparator callback that calls back into the same Sequence, or two
// goroutines racing on one instance — both of which are programming
// errors under the single-threaded ownership model this type assumes.
// It is not a concurrency primitive and provides no exclusion beyond
// detection.
func (s *Sequence[T]) enterQuery() (func(), error) {
	if !s.inQuery.CompareAndSwap(false, true) {
		return nil, ErrConcurrentAccess
	}
	return func() { s.inQuery.Store(false) }, nil
}

func outOfRange(k, n int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, k, n)
}

package lazysort

import "errors"

var (
	// ErrOutOfRange is returned by At, Slice, and Between for an index
	// or range outside the sequence's bounds.
	ErrOutOfRange = errors.New("lazysort: index out of range")
	// ErrNotFound marks an absent value inside the lookups behind
	// IndexOf, Contains and CountOf; those methods never return it, and
	// report an absent value as -1, false and 0 with a nil error.
	ErrNotFound = errors.New("lazysort: value not found")
	// ErrInvalidComparator is returned by New when cmp is nil. New never
	// falls back to a default order; NewOrdered supplies Ordered[T].
	ErrInvalidComparator = errors.New("lazysort: nil comparator")
	// ErrInternalInvariant marks a pivot-tree consistency violation:
	// a bug in this package, not a caller error. CheckInvariants wraps
	// the specific failure with this sentinel so callers can detect the
	// class of error via errors.Is.
	ErrInternalInvariant = errors.New("lazysort: internal invariant violated")
	// ErrConcurrentAccess is raised by the reentrancy guard when a
	// second query is observed to start before a prior one on the same
	// Sequence has finished — almost always a comparator callback that
	// re-enters the sequence it is comparing elements for, or two
	// goroutines sharing a Sequence. Per the single-threaded ownership
	// model, this is always a programming error.
	ErrConcurrentAccess = errors.New("lazysort: concurrent or reentrant access detected")
)

package lazysort

import (
	"errors"
	"fmt"
)

// At sorts the sequence just enough to guarantee xs[k] holds its final
// value, then returns it. k may be negative, interpreted relative to
// Len(), matching the host adapter convention in the system's external
// interface.
func (s *Sequence[T]) At(k int) (T, error) {
	var zero T

	done, err := s.enterQuery()
	if err != nil {
		return zero, err
	}
	defer done()

	n := len(s.xs)
	orig := k
	if k < 0 {
		k += n
	}
	if k < 0 || k >= n {
		return zero, outOfRange(orig, n)
	}

	if err := s.sortToRank(k); err != nil {
		return zero, err
	}
	return s.xs[k], nil
}

// Slice returns xs[start:stop:step] in fully sorted order. If |step| is
// at or below the configured contiguity threshold, the whole covered
// range is sorted with sortRange before the strided selection is read
// out; otherwise each selected position is sorted independently with
// sortToRank, which is cheaper when the selection is sparse.
//
// start and stop are otherwise validated strictly (an out-of-range bound
// is an error, never silently clamped, unlike Python's slice semantics),
// with two negative-step exceptions carried over from Python because no
// other spelling can reach them: start == n means "begin at the last
// element" (there is no exclusive upper bound expressible otherwise for
// a descending slice), and stop == -1 means "stop after index 0" (a
// descending slice's exclusive lower bound has no other way to include
// index 0).
func (s *Sequence[T]) Slice(start, stop, step int) ([]T, error) {
	done, err := s.enterQuery()
	if err != nil {
		return nil, err
	}
	defer done()

	n := len(s.xs)
	if step == 0 {
		return nil, fmt.Errorf("%w: step must be nonzero", ErrOutOfRange)
	}

	if step < 0 && start == n {
		start = n - 1
	}
	if start < 0 || start > n {
		return nil, outOfRange(start, n)
	}

	stopSentinel := step < 0 && stop == -1
	if !stopSentinel && (stop < 0 || stop > n) {
		return nil, outOfRange(stop, n)
	}
	if step > 0 && start > stop {
		return nil, fmt.Errorf("%w: start %d after stop %d for positive step", ErrOutOfRange, start, stop)
	}
	if step < 0 && !stopSentinel && start < stop {
		return nil, fmt.Errorf("%w: start %d before stop %d for negative step", ErrOutOfRange, start, stop)
	}

	absStep := step
	if absStep < 0 {
		absStep = -absStep
	}

	if absStep <= s.contigThresh {
		lo, hi := start, stop
		if step < 0 {
			lo, hi = stop, start
		}
		if lo < hi {
			if err := s.sortRange(lo, hi); err != nil {
				return nil, err
			}
		}
	}

	var out []T
	if step > 0 {
		for i := start; i < stop; i += step {
			if absStep > s.contigThresh {
				if err := s.sortToRank(i); err != nil {
					return nil, err
				}
			}
			out = append(out, s.xs[i])
		}
	} else {
		for i := start; i > stop; i += step {
			if absStep > s.contigThresh {
				if err := s.sortToRank(i); err != nil {
					return nil, err
				}
			}
			out = append(out, s.xs[i])
		}
	}
	return out, nil
}

// Between pivots at lo and hi and returns a copy of xs[lo:hi) with no
// guarantee on internal order — cheaper than Slice when the caller only
// wants the set of values in a percentile band, not their order.
func (s *Sequence[T]) Between(lo, hi int) ([]T, error) {
	done, err := s.enterQuery()
	if err != nil {
		return nil, err
	}
	defer done()

	n := len(s.xs)
	if lo < 0 || lo > n {
		return nil, outOfRange(lo, n)
	}
	if hi < lo || hi > n {
		return nil, outOfRange(hi, n)
	}

	if err := s.sortToRank(lo); err != nil {
		return nil, err
	}
	if err := s.sortToRank(hi); err != nil {
		return nil, err
	}

	out := make([]T, hi-lo)
	copy(out, s.xs[lo:hi])
	return out, nil
}

// IndexOf returns the smallest index holding a value equal to v, or -1
// if v is not present. A non-nil error indicates the comparator failed,
// not that v was absent.
func (s *Sequence[T]) IndexOf(v T) (int, error) {
	done, err := s.enterQuery()
	if err != nil {
		return 0, err
	}
	defer done()

	k, err := s.findItem(v)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return -1, nil
		}
		return 0, err
	}
	return k, nil
}

// Contains reports whether v is present.
func (s *Sequence[T]) Contains(v T) (bool, error) {
	idx, err := s.IndexOf(v)
	if err != nil {
		return false, err
	}
	return idx >= 0, nil
}

// CountOf returns the number of elements equal to v. If the Sequence was
// built with WithCountCache, repeated queries for the same value after
// its first count is known skip the tree walk entirely: a value's count
// is a property of the multiset, which querying never changes, so the
// cached result never goes stale.
func (s *Sequence[T]) CountOf(v T) (int, error) {
	if s.countCache != nil {
		if n, ok := s.countCache.Get(v); ok {
			return n, nil
		}
	}

	done, err := s.enterQuery()
	if err != nil {
		return 0, err
	}
	defer done()

	count, err := s.countItem(v)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if s.countCache != nil {
				s.countCache.Put(v, 0)
			}
			return 0, nil
		}
		return 0, err
	}
	if s.countCache != nil {
		s.countCache.Put(v, count)
	}
	return count, nil
}

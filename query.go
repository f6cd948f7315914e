package lazysort

import (
	"fmt"

	"github.com/niceyeti/lazysort/internal/partition"
	"github.com/niceyeti/lazysort/internal/pivot"
)

// sortToRank is quickselect cooperating with the pivot tree: it sorts
// only as much of xs as is needed to guarantee xs[k] holds its final,
// fully-sorted value.
//
// Each iteration re-brackets from the tree rather than carrying the
// previous iteration's left/right refs forward. That costs an extra
// O(log n) descent per iteration but sidesteps a real hazard: when
// uniqPivots dissolves a duplicate-valued boundary into the freshly
// inserted pivot, a rank comparison (unlike find_item's value
// comparison) has no invariant guaranteeing the dissolved side is always
// the one being replaced — an incrementally-tracked ref can end up
// pointing at a just-freed arena slot. Re-bracketing trades a constant
// factor for never touching a stale ref.
func (s *Sequence[T]) sortToRank(k int) error {
	data := elemData[T]{s}

	for {
		left, right := s.tree.Bracket(k)
		if s.tree.Idx(left) == k {
			return nil
		}
		if s.tree.Flags(right)&pivot.SortedRight != 0 {
			return nil
		}
		if s.tree.Idx(right)-s.tree.Idx(left) <= s.sortThresh+1 {
			return s.closeBracket(data, left, right)
		}

		hint := left
		if s.tree.Right(left) != pivot.NoRef {
			hint = right
		}

		p, err := partition.Partition(data, s.rng, s.tree.Idx(left)+1, s.tree.Idx(right))
		if err != nil {
			return err
		}
		middle, err := s.tree.Insert(p, pivot.Unsorted, hint)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternalInvariant, err)
		}
		if err := s.uniqPivots(left, middle, right); err != nil {
			return err
		}
		if p == k {
			return nil
		}
	}
}

// closeBracket finishes a small (<= sortThresh+1) bracket: insertion-sorts
// the interior, flags both boundaries, and dissolves any boundary that
// now sits between two fully sorted runs.
func (s *Sequence[T]) closeBracket(data elemData[T], left, right pivot.Ref) error {
	if err := partition.InsertionSort(data, s.tree.Idx(left)+1, s.tree.Idx(right)); err != nil {
		return err
	}
	s.tree.AddFlags(left, pivot.SortedLeft)
	s.tree.AddFlags(right, pivot.SortedRight)
	s.tree.Depivot(left, right)
	return nil
}

// uniqPivots checks whether the newly inserted middle pivot shares a
// value with either neighbor and, if so, absorbs that neighbor into
// middle so runs of duplicate keys don't grow the tree without bound.
// Sentinels never participate in the equality check (they mark the
// array's ends, not a real element).
func (s *Sequence[T]) uniqPivots(left, middle, right pivot.Ref) error {
	leftIdx, midIdx, rightIdx := s.tree.Idx(left), s.tree.Idx(middle), s.tree.Idx(right)

	var leftEqual, rightEqual bool
	var err error
	if leftIdx >= 0 {
		leftEqual, err = s.cmp.Equal(s.xs[leftIdx], s.xs[midIdx])
		if err != nil {
			return err
		}
	}
	if rightIdx < len(s.xs) {
		rightEqual, err = s.cmp.Equal(s.xs[midIdx], s.xs[rightIdx])
		if err != nil {
			return err
		}
	}
	s.tree.UniqPivots(left, middle, right, leftEqual, rightEqual)
	return nil
}

// sortRange fully sorts xs[lo:hi), pivoting at both ends first and then
// walking the pivots between them, running an unconstrained quicksort
// (no pivot bookkeeping) over every stretch not already flagged sorted.
func (s *Sequence[T]) sortRange(lo, hi int) error {
	if err := s.sortToRank(lo); err != nil {
		return err
	}
	if err := s.sortToRank(hi); err != nil {
		return err
	}

	data := elemData[T]{s}
	current, next := s.tree.Bracket(lo)
	if s.tree.Idx(current) == lo {
		next = s.tree.Successor(current)
	}

	for s.tree.Idx(current) < hi {
		if s.tree.Flags(current)&pivot.SortedLeft == 0 {
			if err := partition.QuickSort(data, s.rng, s.tree.Idx(current)+1, s.tree.Idx(next), s.sortThresh); err != nil {
				return err
			}
			s.tree.AddFlags(current, pivot.SortedLeft)
			s.tree.AddFlags(next, pivot.SortedRight)
		}

		if s.tree.Flags(current)&pivot.SortedRight != 0 {
			s.tree.Delete(current)
		}

		current = next
		next = s.tree.Successor(current)
	}

	if s.tree.Flags(current)&pivot.SortedLeft != 0 {
		s.tree.Delete(current)
	}
	return nil
}

// findItem locates the smallest index holding a value equal to v, or
// ErrNotFound. It descends the tree guided by value comparisons (rather
// than by rank, as sortToRank does), which is what makes carrying
// left/right forward across a uniqPivots merge safe here: the search
// invariant X[left.idx] < v <= X[right.idx] guarantees the boundary a
// merge can dissolve is always the one about to be replaced, never the
// one being kept.
func (s *Sequence[T]) findItem(v T) (int, error) {
	data := elemData[T]{s}

	left, right := pivot.NoRef, pivot.NoRef
	cur := s.tree.Root()
	n := len(s.xs)
	for cur != pivot.NoRef {
		idx := s.tree.Idx(cur)
		switch {
		case idx == -1:
			left = cur
			cur = s.tree.Right(cur)
		case idx == n:
			right = cur
			cur = s.tree.Left(cur)
		default:
			less, err := s.cmp.Less(s.xs[idx], v)
			if err != nil {
				return 0, err
			}
			if less {
				left = cur
				cur = s.tree.Right(cur)
			} else {
				right = cur
				cur = s.tree.Left(cur)
			}
		}
	}

	needsSort := s.tree.Flags(left)&pivot.SortedLeft == 0
	if needsSort {
		for s.tree.Idx(right)-s.tree.Idx(left) > s.sortThresh+1 {
			p, err := partition.Partition(data, s.rng, s.tree.Idx(left)+1, s.tree.Idx(right))
			if err != nil {
				return 0, err
			}

			hint := left
			if s.tree.Right(left) != pivot.NoRef {
				hint = right
			}
			middle, err := s.tree.Insert(p, pivot.Unsorted, hint)
			if err != nil {
				return 0, fmt.Errorf("%w: %v", ErrInternalInvariant, err)
			}
			if err := s.uniqPivots(left, middle, right); err != nil {
				return 0, err
			}

			less, err := s.cmp.Less(s.xs[p], v)
			if err != nil {
				return 0, err
			}
			if less {
				left = middle
			} else {
				right = middle
			}
		}

		if err := partition.InsertionSort(data, s.tree.Idx(left)+1, s.tree.Idx(right)); err != nil {
			return 0, err
		}
		s.tree.AddFlags(left, pivot.SortedLeft)
		s.tree.AddFlags(right, pivot.SortedRight)
	}

	// Capture bounds before Depivot: Depivot can delete left and/or right,
	// freeing their arena slots, so Idx must be read from them first.
	lo := s.tree.Idx(left) + 1
	// The descent sets right on xs[right.idx] >= v, so the match can be
	// right's own index; hi is exclusive, so it must extend one past it.
	hi := s.tree.Idx(right) + 1
	if hi > n {
		hi = n
	}
	if needsSort {
		s.tree.Depivot(left, right)
	}

	for k := lo; k < hi; k++ {
		eq, err := s.cmp.Equal(v, s.xs[k])
		if err != nil {
			return 0, err
		}
		if eq {
			return k, nil
		}
	}
	return 0, ErrNotFound
}

// countItem finds one occurrence of v via findItem, then extends the
// bracket rightward pivot-by-pivot (cheap equality probes against
// already-placed pivots only) before doing a final linear scan to tally
// every equal element in the resulting span.
func (s *Sequence[T]) countItem(v T) (int, error) {
	k, err := s.findItem(v)
	if err != nil {
		return 0, err
	}

	left, right := s.tree.Bracket(k)
	if right == pivot.NoRef {
		right = s.tree.Successor(left)
	}

	n := len(s.xs)
	for s.tree.Idx(right) < n {
		eq, err := s.cmp.Equal(v, s.xs[s.tree.Idx(right)])
		if err != nil {
			return 0, err
		}
		if !eq {
			break
		}
		right = s.tree.Successor(right)
	}

	count := 1
	hi := s.tree.Idx(right)
	for i := k + 1; i < hi; i++ {
		eq, err := s.cmp.Equal(v, s.xs[i])
		if err != nil {
			return 0, err
		}
		if eq {
			count++
		}
	}
	return count, nil
}

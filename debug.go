package lazysort

import (
	"fmt"

	"github.com/niceyeti/lazysort/internal/pivot"
	"github.com/niceyeti/lazysort/internal/telemetry"
)

// PivotDebug is one entry of DebugPivots: a pivot's array index and its
// current flag state, named per the four states a pivot can be in.
type PivotDebug struct {
	Idx  int
	Flag string
}

// DebugPivots returns every pivot currently in the tree, sentinels
// included, in ascending index order. It is a diagnostic: nothing about
// its cost or output is part of the sequence's correctness contract.
func (s *Sequence[T]) DebugPivots() []PivotDebug {
	out := make([]PivotDebug, 0, s.tree.Size())
	s.tree.InOrder(func(r pivot.Ref) {
		out = append(out, PivotDebug{Idx: s.tree.Idx(r), Flag: s.tree.Flags(r).Name()})
	})

	telemetry.Logger().Debug().
		Int("pivot_count", len(out)).
		Int("len", len(s.xs)).
		Msg("debug_pivots")

	return out
}

// CheckInvariants walks the whole pivot tree and element array and
// returns a wrapped ErrInternalInvariant describing the first violation
// found, or nil. It is O(n) per pivot (quadratic in the worst case) and
// is meant for tests and paranoid debugging, never the query path.
func (s *Sequence[T]) CheckInvariants() error {
	if err := s.tree.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalInvariant, err)
	}

	n := len(s.xs)
	var prev pivot.Ref = pivot.NoRef
	var firstErr error

	s.tree.InOrder(func(r pivot.Ref) {
		if firstErr != nil {
			return
		}

		idx := s.tree.Idx(r)
		if idx >= 0 && idx < n {
			for i := 0; i < idx; i++ {
				less, err := s.cmp.Less(s.xs[idx], s.xs[i])
				if err != nil {
					firstErr = err
					return
				}
				if less {
					firstErr = fmt.Errorf("%w: idx %d is not >= element at %d", ErrInternalInvariant, idx, i)
					return
				}
			}
			for i := idx; i < n; i++ {
				less, err := s.cmp.Less(s.xs[i], s.xs[idx])
				if err != nil {
					firstErr = err
					return
				}
				if less {
					firstErr = fmt.Errorf("%w: idx %d is not <= element at %d", ErrInternalInvariant, idx, i)
					return
				}
			}
		}

		if prev != pivot.NoRef {
			leftFaces := s.tree.Flags(r)&pivot.SortedRight != 0
			rightFaces := s.tree.Flags(prev)&pivot.SortedLeft != 0
			if leftFaces != rightFaces {
				firstErr = fmt.Errorf("%w: flag asymmetry between idx %d and idx %d",
					ErrInternalInvariant, s.tree.Idx(prev), idx)
				return
			}
		}
		prev = r
	})

	telemetry.Logger().Debug().
		Bool("ok", firstErr == nil).
		Msg("check_invariants")

	return firstErr
}

// Package partition implements the host-agnostic in-place partition
// primitives the lazy-sorted sequence's query driver builds on: a
// Lomuto-style partition, a small-range insertion sort, and an
// unconstrained quicksort that never touches the pivot tree.
//
// None of these know about pivots, treaps, or flags; they operate purely
// on a half-open index range [lo, hi) of anything that can compare and
// swap two positions, per Data.
package partition

import "math/rand"

// Data is the minimal surface the partition primitives need from the
// host's element storage: a fallible ordering and an in-place swap.
// The lazysort package's Sequence adapts a user-supplied Comparator to
// this interface.
type Data interface {
	// Less reports whether the element at i sorts strictly before j.
	Less(i, j int) (bool, error)
	// Swap exchanges the elements at i and j.
	Swap(i, j int)
}

// DefaultSortThresh is the default cutover below which Partition's caller should
// prefer InsertionSort over continued partitioning. Exported as a default;
// callers are free to use their own threshold (lazysort.Option wires this
// through as a per-container setting).
const DefaultSortThresh = 12

// PickPivot returns an index in [lo, hi) chosen uniformly at random via
// rng. Any unbiased choice satisfies the algorithm; uniform random is the
// reference policy.
func PickPivot(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

// Partition performs a classical Lomuto partition of data[lo:hi) around a
// pivot chosen by PickPivot, and returns the final resting index of that
// pivot. Requires hi-lo >= 2. On a comparator error, returns the error and
// an undefined index; data is left in some consistent permutation of its
// original elements (all reordering is via Swap), so no invariant beyond
// "valid permutation" is lost.
func Partition(data Data, rng *rand.Rand, lo, hi int) (int, error) {
	pivotIdx := PickPivot(rng, lo, hi)
	data.Swap(lo, pivotIdx)

	lastLess := lo
	for i := lo + 1; i < hi; i++ {
		less, err := data.Less(i, lo)
		if err != nil {
			return 0, err
		}
		if less {
			lastLess++
			data.Swap(i, lastLess)
		}
	}

	data.Swap(lo, lastLess)
	return lastLess, nil
}

// InsertionSort sorts data[lo:hi) in place. Intended for small ranges
// (hi-lo below the caller's sort threshold).
func InsertionSort(data Data, lo, hi int) error {
	for i := lo + 1; i < hi; i++ {
		for j := i; j > lo; j-- {
			less, err := data.Less(j, j-1)
			if err != nil {
				return err
			}
			if !less {
				break
			}
			data.Swap(j, j-1)
		}
	}
	return nil
}

// QuickSort recursively sorts data[lo:hi) in place, falling back to
// InsertionSort once the range shrinks to sortThresh or below. It does
// not record any pivot bookkeeping: it is used only when a whole range is
// being sorted unconditionally and any intermediate pivot would be
// immediately redundant.
func QuickSort(data Data, rng *rand.Rand, lo, hi, sortThresh int) error {
	if hi-lo <= sortThresh {
		return InsertionSort(data, lo, hi)
	}

	p, err := Partition(data, rng, lo, hi)
	if err != nil {
		return err
	}
	if err := QuickSort(data, rng, lo, p, sortThresh); err != nil {
		return err
	}
	return QuickSort(data, rng, p+1, hi, sortThresh)
}

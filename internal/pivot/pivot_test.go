package pivot

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// checkStructure walks the whole tree and asserts BST order on idx,
// max-heap order on priority, and parent/child pointer agreement —
// invariants 1-3 from the pivot tree's contract.
func checkStructure(t *Tree) {
	var walk func(r Ref, lo, hi int)
	walk = func(r Ref, lo, hi int) {
		if r == NoRef {
			return
		}
		idx := t.Idx(r)
		So(idx, ShouldBeGreaterThan, lo)
		So(idx, ShouldBeLessThan, hi)

		if l := t.Left(r); l != NoRef {
			So(t.Parent(l), ShouldEqual, r)
			So(t.Priority(l), ShouldBeLessThanOrEqualTo, t.Priority(r))
			walk(l, lo, idx)
		}
		if rt := t.Right(r); rt != NoRef {
			So(t.Parent(rt), ShouldEqual, r)
			So(t.Priority(rt), ShouldBeLessThanOrEqualTo, t.Priority(r))
			walk(rt, idx, hi)
		}
	}
	walk(t.Root(), -2, 1<<30)
	So(t.Parent(t.Root()), ShouldEqual, NoRef)
}

func TestNewTree(t *testing.T) {
	Convey("Given a fresh tree over n=10", t, func() {
		tr := NewTree(10, rand.New(rand.NewSource(1)))

		Convey("It contains exactly the two sentinels", func() {
			So(tr.Size(), ShouldEqual, 2)
			So(tr.Idx(tr.Negative()), ShouldEqual, -1)
			So(tr.Idx(tr.Positive()), ShouldEqual, 10)
			checkStructure(tr)
		})

		Convey("Bracket(5) returns the two sentinels", func() {
			l, r := tr.Bracket(5)
			So(l, ShouldEqual, tr.Negative())
			So(r, ShouldEqual, tr.Positive())
		})
	})
}

func TestInsertAndBracket(t *testing.T) {
	Convey("Given a tree with several pivots inserted", t, func() {
		tr := NewTree(20, rand.New(rand.NewSource(42)))

		for _, k := range []int{10, 5, 15, 2, 7} {
			_, err := tr.Insert(k, Unsorted, tr.Root())
			So(err, ShouldBeNil)
			checkStructure(tr)
		}

		Convey("Bracket finds the tightest surrounding pivots", func() {
			l, r := tr.Bracket(8)
			So(tr.Idx(l), ShouldEqual, 7)
			So(tr.Idx(r), ShouldEqual, 10)
		})

		Convey("Bracket on an existing pivot returns it as left", func() {
			l, _ := tr.Bracket(7)
			So(tr.Idx(l), ShouldEqual, 7)
		})

		Convey("Inserting a duplicate index fails", func() {
			_, err := tr.Insert(7, Unsorted, tr.Root())
			So(err, ShouldNotBeNil)
		})

		Convey("Successor/Predecessor form a consistent chain", func() {
			cur := tr.Negative()
			var seen []int
			for cur != NoRef {
				seen = append(seen, tr.Idx(cur))
				cur = tr.Successor(cur)
			}
			So(seen, ShouldResemble, []int{-1, 2, 5, 7, 10, 15, 20})

			last := tr.Positive()
			So(tr.Idx(tr.Predecessor(last)), ShouldEqual, 15)
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a tree with pivots forming all delete shapes", t, func() {
		tr := NewTree(100, rand.New(rand.NewSource(12)))
		for _, k := range []int{50, 25, 75, 10, 30, 60, 90} {
			_, err := tr.Insert(k, Unsorted, tr.Root())
			So(err, ShouldBeNil)
		}

		Convey("Deleting a leaf preserves structure", func() {
			l, _ := tr.Bracket(10)
			tr.Delete(l)
			checkStructure(tr)
			l2, _ := tr.Bracket(9)
			So(tr.Idx(l2), ShouldEqual, -1)
		})

		Convey("Deleting a two-child node preserves structure and key order", func() {
			leftOf50, rightOf50 := tr.Bracket(50)
			So(tr.Idx(leftOf50), ShouldEqual, 50)
			tr.Delete(leftOf50)
			checkStructure(tr)

			l, r := tr.Bracket(50)
			So(tr.Idx(l), ShouldBeLessThan, 50)
			_ = rightOf50
			_ = r
		})

		Convey("Deleting every non-sentinel leaves only the sentinels", func() {
			for _, k := range []int{50, 25, 75, 10, 30, 60, 90} {
				l, _ := tr.Bracket(k)
				tr.Delete(l)
				checkStructure(tr)
			}
			So(tr.Size(), ShouldEqual, 2)
		})
	})
}

func TestDepivot(t *testing.T) {
	Convey("Given two adjacent pivots both flagged toward each other", t, func() {
		tr := NewTree(10, rand.New(rand.NewSource(3)))
		left, _ := tr.Insert(4, Unsorted, tr.Root())
		right, _ := tr.Insert(6, Unsorted, tr.Root())

		tr.AddFlags(left, SortedLeft)
		tr.AddFlags(right, SortedRight)

		Convey("Neither is removed since neither is flagged sorted on its far side", func() {
			before := tr.Size()
			tr.Depivot(left, right)
			So(tr.Size(), ShouldEqual, before)
		})

		Convey("Flagging left.SortedRight removes left when left faces a sorted run on both sides", func() {
			tr.AddFlags(left, SortedRight)
			tr.Depivot(left, right)
			checkStructure(tr)
			So(tr.Size(), ShouldEqual, 3)
		})
	})
}

func TestUniqPivots(t *testing.T) {
	Convey("Given left, middle, right where left equals middle", t, func() {
		tr := NewTree(10, rand.New(rand.NewSource(9)))
		left, _ := tr.Insert(3, SortedRight, tr.Root())
		middle, _ := tr.Insert(5, Unsorted, tr.Root())
		right, _ := tr.Insert(7, Unsorted, tr.Root())

		tr.UniqPivots(left, middle, right, true, false)

		Convey("left is deleted and middle inherits its flags", func() {
			checkStructure(tr)
			So(tr.Flags(middle), ShouldEqual, SortedRight)
			l, _ := tr.Bracket(4)
			So(tr.Idx(l), ShouldEqual, -1)
		})
	})
}

// Package interval provides an in-place overlap index over genomic
// coordinates.
//
// The index is an implicit augmented interval tree: the caller's slice,
// sorted by start, is the tree. A node's children live at fixed
// bit-arithmetic offsets from its own position, so the structure needs
// no pointers and no per-node allocation. Each position additionally
// carries the maximum end coordinate of its subtree, which lets Overlap
// prune whole subtrees that cannot intersect the query.
//
// Intervals are half-open: [Start, End). Build once with Index, then
// query with Overlap as often as needed; queries are read-only and safe
// to run concurrently once the tree is built. Mutating an interval
// after Index silently invalidates the subtree maxima — rebuild after
// any change.
package interval

import (
	"iter"
	"slices"
)

// Interval is one indexed range with an attached payload. The unexported
// field holds the subtree maximum filled in by Index.
type Interval[T any] struct {
	Start, End int64
	Data       T
	max        int64
}

// Tree indexes a set of intervals for overlap queries. The zero value
// is an empty tree ready for Add.
type Tree[T any] struct {
	items   []Interval[T]
	level   int
	indexed bool
}

// Add appends an interval. Adding after Index is allowed but the tree
// must be re-indexed before the next query.
func (t *Tree[T]) Add(start, end int64, data T) {
	t.items = append(t.items, Interval[T]{Start: start, End: end, Data: data})
	t.indexed = false
}

// Len returns the number of intervals in the tree.
func (t *Tree[T]) Len() int {
	return len(t.items)
}

// Index sorts the intervals by start in place (ties in arbitrary
// order) and computes every position's subtree maximum bottom-up.
// Returns the tree height, or -1 for an empty tree.
//
// Leaves are the even positions. A node at level k sits at position
// 2^k-1, 2^k-1 + 2^(k+1), ... with its children 2^(k-1) positions to
// either side. The last element's path needs special handling because
// its right sibling may not exist at some levels: a running maximum of
// that path stands in for any missing right child.
func (t *Tree[T]) Index() int {
	a := t.items
	n := len(a)
	if n == 0 {
		t.level = -1
		t.indexed = true
		return -1
	}
	byStart := func(x, y Interval[T]) int {
		switch {
		case x.Start < y.Start:
			return -1
		case x.Start > y.Start:
			return 1
		default:
			return 0
		}
	}
	if !slices.IsSortedFunc(a, byStart) {
		slices.SortFunc(a, byStart)
	}

	var last int64 // max end along the path to the last element
	var lastI int  // position of the last element's ancestor at this level
	for i := 0; i < n; i += 2 {
		a[i].max = a[i].End
		lastI, last = i, a[i].End
	}
	k := 1
	for ; 1<<k <= n; k++ {
		x := 1 << (k - 1)  // child offset
		i0 := (x << 1) - 1 // first level-k node
		step := x << 2     // distance between level-k nodes
		for i := i0; i < n; i += step {
			m := a[i].End
			if left := a[i-x].max; left > m {
				m = left
			}
			right := last
			if i+x < n {
				right = a[i+x].max
			}
			if right > m {
				m = right
			}
			a[i].max = m
		}
		// Step lastI to its parent: the parent is x positions left
		// when lastI is a right child (bit k set), right otherwise.
		if lastI>>k&1 == 1 {
			lastI -= x
		} else {
			lastI += x
		}
		if lastI < n && a[lastI].max > last {
			last = a[lastI].max
		}
	}
	t.level = k - 1
	t.indexed = true
	return t.level
}

// frame is one node on the explicit traversal stack: position x at
// level k, with w marking whether the left subtree was already handled.
type frame struct {
	x    int
	k, w int
}

// Overlap yields every interval intersecting [start, end) in ascending
// start order. The sequence is lazy and restartable; each call walks
// the tree independently. Overlap panics if the tree was modified
// since the last Index.
//
// The walk is iterative. Small subtrees (level <= 3, at most 15
// intervals) are scanned linearly, stopping early once starts pass the
// query end — the slice is start-sorted, so nothing further in that
// subtree can match. Larger subtrees are visited left child, node,
// right child, descending left only when the left child's subtree
// maximum exceeds the query start and right only when the node's own
// start precedes the query end.
func (t *Tree[T]) Overlap(start, end int64) iter.Seq[Interval[T]] {
	if !t.indexed {
		panic("interval: Overlap called before Index")
	}
	return func(yield func(Interval[T]) bool) {
		a := t.items
		n := len(a)
		if n == 0 || start >= end {
			return
		}
		// Height is bounded by the word size, so a fixed stack holds
		// any tree.
		var stack [64]frame
		top := 0
		stack[top] = frame{x: (1 << t.level) - 1, k: t.level, w: 0}
		top++
		for top > 0 {
			top--
			z := stack[top]
			switch {
			case z.k <= 3:
				i0 := z.x >> z.k << z.k
				i1 := i0 + (1 << (z.k + 1)) - 1
				if i1 > n {
					i1 = n
				}
				for i := i0; i < i1 && a[i].Start < end; i++ {
					if start < a[i].End {
						if !yield(a[i]) {
							return
						}
					}
				}
			case z.w == 0:
				// First visit: queue the node for its second visit,
				// then the left child on top so it runs first. A left
				// child position beyond the slice is a virtual node
				// whose real descendants must still be searched.
				y := z.x - 1<<(z.k-1)
				stack[top] = frame{x: z.x, k: z.k, w: 1}
				top++
				if y >= n || a[y].max > start {
					stack[top] = frame{x: y, k: z.k - 1, w: 0}
					top++
				}
			default:
				// Second visit: the node itself, then the right
				// subtree, which only holds larger starts.
				if z.x < n && a[z.x].Start < end {
					if start < a[z.x].End {
						if !yield(a[z.x]) {
							return
						}
					}
					stack[top] = frame{x: z.x + 1<<(z.k-1), k: z.k - 1, w: 0}
					top++
				}
			}
		}
	}
}

// Count returns the number of intervals overlapping [start, end).
func (t *Tree[T]) Count(start, end int64) int {
	n := 0
	for range t.Overlap(start, end) {
		n++
	}
	return n
}

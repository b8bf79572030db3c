// Interval tree tests.
//
// The implicit layout is easy to get subtly wrong — off-by-one child
// offsets or a stale "last path" maximum produce a tree that answers
// most queries correctly and drops intervals only near the array's
// ragged right edge. The randomized test below therefore compares
// every query against a brute-force scan across many array sizes,
// deliberately including sizes around powers of two.
package interval

import (
	"math/rand"
	"slices"
	"testing"
)

// collect drains an Overlap sequence into a slice.
func collect[T any](t *Tree[T], start, end int64) []Interval[T] {
	var out []Interval[T]
	for iv := range t.Overlap(start, end) {
		out = append(out, iv)
	}
	return out
}

// TestOverlapBasic verifies the canonical scenario: three intervals,
// one query, one hit.
func TestOverlapBasic(t *testing.T) {
	var tr Tree[int]
	tr.Add(0, 5, 0)
	tr.Add(10, 15, 1)
	tr.Add(3, 8, 2)
	tr.Index()

	got := collect(&tr, 6, 9)
	if len(got) != 1 || got[0].Start != 3 || got[0].End != 8 || got[0].Data != 2 {
		t.Fatalf("Overlap(6,9) = %v, want [(3,8)]", got)
	}
}

// TestIndexSorts verifies that Index sorts unsorted input by start and
// reports the height.
func TestIndexSorts(t *testing.T) {
	var tr Tree[string]
	tr.Add(30, 40, "c")
	tr.Add(10, 20, "a")
	tr.Add(20, 30, "b")
	h := tr.Index()
	if h != 1 {
		t.Errorf("height = %d, want 1 for three intervals", h)
	}
	got := collect(&tr, 0, 100)
	names := make([]string, len(got))
	for i, iv := range got {
		names[i] = iv.Data
	}
	if !slices.Equal(names, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", names)
	}
}

// TestOverlapHalfOpen verifies the boundary semantics: [Start, End)
// means touching intervals do not overlap.
func TestOverlapHalfOpen(t *testing.T) {
	var tr Tree[int]
	tr.Add(0, 5, 0)
	tr.Index()

	if got := collect(&tr, 5, 10); len(got) != 0 {
		t.Errorf("Overlap(5,10) over [0,5) = %v, want empty", got)
	}
	if got := collect(&tr, 4, 5); len(got) != 1 {
		t.Errorf("Overlap(4,5) over [0,5) = %v, want one hit", got)
	}
	if got := collect(&tr, 0, 0); len(got) != 0 {
		t.Errorf("empty query returned %v", got)
	}
}

// TestEmptyTree verifies the degenerate cases.
func TestEmptyTree(t *testing.T) {
	var tr Tree[int]
	if h := tr.Index(); h != -1 {
		t.Errorf("empty Index = %d, want -1", h)
	}
	if got := collect(&tr, 0, 100); len(got) != 0 {
		t.Errorf("empty tree returned %v", got)
	}
}

// TestSingleInterval verifies a one-element tree, whose root is a
// leaf.
func TestSingleInterval(t *testing.T) {
	var tr Tree[int]
	tr.Add(5, 10, 42)
	if h := tr.Index(); h != 0 {
		t.Errorf("height = %d, want 0", h)
	}
	if got := collect(&tr, 7, 8); len(got) != 1 || got[0].Data != 42 {
		t.Errorf("Overlap = %v, want the single interval", got)
	}
	if got := collect(&tr, 10, 20); len(got) != 0 {
		t.Errorf("Overlap past end = %v, want empty", got)
	}
}

// TestOverlapRestartable verifies that each Overlap call is
// independent: no cursor survives between calls, and stopping one
// iteration early does not affect the next.
func TestOverlapRestartable(t *testing.T) {
	var tr Tree[int]
	for i := range 20 {
		tr.Add(int64(i), int64(i+5), i)
	}
	tr.Index()

	for iv := range tr.Overlap(0, 100) {
		_ = iv
		break // abandon after one element
	}
	if n := tr.Count(0, 100); n != 20 {
		t.Errorf("Count after abandoned iteration = %d, want 20", n)
	}
	if n := tr.Count(0, 100); n != 20 {
		t.Errorf("repeated Count = %d, want 20", n)
	}
}

// TestOverlapBruteForce compares the tree against a linear scan on
// random interval sets. Sizes bracket powers of two to stress the
// virtual-node and last-path handling at the array's right edge.
func TestOverlapBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 31, 32, 33, 100, 255, 256, 257, 1000} {
		var tr Tree[int]
		type plain struct{ s, e int64 }
		ivs := make([]plain, n)
		for i := range n {
			s := int64(rng.Intn(1000))
			e := s + 1 + int64(rng.Intn(100))
			ivs[i] = plain{s, e}
			tr.Add(s, e, i)
		}
		tr.Index()

		for q := 0; q < 50; q++ {
			qs := int64(rng.Intn(1100) - 50)
			qe := qs + 1 + int64(rng.Intn(200))

			var want []plain
			for _, iv := range ivs {
				if iv.s < qe && qs < iv.e {
					want = append(want, iv)
				}
			}
			slices.SortStableFunc(want, func(a, b plain) int {
				switch {
				case a.s < b.s:
					return -1
				case a.s > b.s:
					return 1
				default:
					return 0
				}
			})

			got := collect(&tr, qs, qe)
			if len(got) != len(want) {
				t.Fatalf("n=%d query [%d,%d): got %d intervals, want %d", n, qs, qe, len(got), len(want))
			}
			for i := range got {
				if got[i].Start != want[i].s {
					t.Fatalf("n=%d query [%d,%d) position %d: start %d, want %d",
						n, qs, qe, i, got[i].Start, want[i].s)
				}
				if i > 0 && got[i].Start < got[i-1].Start {
					t.Fatalf("n=%d query [%d,%d): output not sorted at %d", n, qs, qe, i)
				}
			}
		}
	}
}

// TestMaxEndInvariant verifies that after Index every position's
// subtree maximum bounds its own end, by spot-checking pruning never
// hides a hit: querying exactly at each interval's last base must
// return it.
func TestMaxEndInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var tr Tree[int]
	type plain struct{ s, e int64 }
	ivs := make([]plain, 300)
	for i := range ivs {
		s := int64(rng.Intn(10000))
		e := s + 1 + int64(rng.Intn(500))
		ivs[i] = plain{s, e}
		tr.Add(s, e, i)
	}
	tr.Index()

	for _, iv := range ivs {
		found := false
		for hit := range tr.Overlap(iv.e-1, iv.e) {
			if hit.Start == iv.s && hit.End == iv.e {
				found = true
			}
		}
		if !found {
			t.Fatalf("interval [%d,%d) not found at its own last base", iv.s, iv.e)
		}
	}
}

// TestAddAfterIndexPanics verifies the staleness guard: querying a
// tree modified since the last Index panics rather than returning
// silently wrong answers.
func TestAddAfterIndexPanics(t *testing.T) {
	var tr Tree[int]
	tr.Add(0, 5, 0)
	tr.Index()
	tr.Add(10, 15, 1)

	defer func() {
		if recover() == nil {
			t.Error("Overlap on a stale tree did not panic")
		}
	}()
	tr.Overlap(0, 1)
}

func BenchmarkIndex(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	base := make([]Interval[int], 100000)
	for i := range base {
		s := int64(rng.Intn(1 << 20))
		base[i] = Interval[int]{Start: s, End: s + int64(rng.Intn(1000))}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := Tree[int]{items: slices.Clone(base)}
		tr.Index()
	}
}

func BenchmarkOverlap(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	var tr Tree[int]
	for i := 0; i < 100000; i++ {
		s := int64(rng.Intn(1 << 20))
		tr.Add(s, s+int64(rng.Intn(1000)), i)
	}
	tr.Index()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := int64(rng.Intn(1 << 20))
		for range tr.Overlap(s, s+1000) {
		}
	}
}

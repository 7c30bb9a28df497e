package freespace

import (
	"reflect"
	"testing"

	"github.com/grailbio/bpatch/rng"
)

func ivals(pairs ...int) []Interval {
	out := make([]Interval, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Interval{pairs[i], pairs[i+1]})
	}
	return out
}

func TestAddMergesOverlappingAndTouching(t *testing.T) {
	f := New()
	f.Add(0, 10)  // [0,10)
	f.Add(20, 10) // [20,30)
	f.Add(10, 10) // touches both -> should coalesce into [0,30)
	if got := f.Intervals(); !reflect.DeepEqual(got, ivals(0, 30)) {
		t.Fatalf("got %v, want [0,30)", got)
	}
}

func TestAddDisjoint(t *testing.T) {
	f := New()
	f.Add(0, 5)
	f.Add(100, 5)
	if got := f.Intervals(); !reflect.DeepEqual(got, ivals(0, 5, 100, 105)) {
		t.Fatalf("got %v", got)
	}
}

func TestAddEmptyIsNoop(t *testing.T) {
	f := New()
	f.Add(0, 10)
	f.Add(5, 0)
	if got := f.Intervals(); !reflect.DeepEqual(got, ivals(0, 10)) {
		t.Fatalf("got %v", got)
	}
}

func TestRemoveClipsZeroOneTwoResiduals(t *testing.T) {
	f := New()
	f.Add(0, 100)
	f.Remove(40, 20) // [0,40) and [60,100)
	if got := f.Intervals(); !reflect.DeepEqual(got, ivals(0, 40, 60, 100)) {
		t.Fatalf("got %v", got)
	}
	f.Remove(0, 40) // removes the first residual entirely
	if got := f.Intervals(); !reflect.DeepEqual(got, ivals(60, 100)) {
		t.Fatalf("got %v", got)
	}
	f.Remove(0, 1000) // covers everything remaining
	if got := f.Intervals(); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

// Property 9: add(a,s) then remove(a,s) restores Freespace iff [a,a+s) was
// entirely outside the prior Freespace.
func TestAddRemoveIdempotence(t *testing.T) {
	f := New()
	f.Add(0, 10)
	f.Add(50, 10)
	before := f.Intervals()

	// [20,30) is entirely outside the existing freespace: round-trips.
	f.Add(20, 10)
	f.Remove(20, 10)
	if got := f.Intervals(); !reflect.DeepEqual(got, before) {
		t.Fatalf("round trip on disjoint insert: got %v, want %v", got, before)
	}

	// [5,15) overlaps [0,10): round trip does NOT restore the original,
	// since remove(5,10) also clips away [5,10), which was already free
	// before add(5,10), leaving only [0,5).
	f2 := New()
	f2.Add(0, 10)
	before2 := f2.Intervals()
	f2.Add(5, 10)
	f2.Remove(5, 10)
	if got := f2.Intervals(); reflect.DeepEqual(got, before2) {
		t.Fatalf("expected overlapping add/remove to NOT restore original state")
	}
}

func TestIncludingExcludingDoNotMutateReceiver(t *testing.T) {
	f := New()
	f.Add(0, 10)
	g := f.Including(20, 10)
	if !reflect.DeepEqual(f.Intervals(), ivals(0, 10)) {
		t.Fatalf("Including mutated receiver: %v", f.Intervals())
	}
	if !reflect.DeepEqual(g.Intervals(), ivals(0, 10, 20, 30)) {
		t.Fatalf("Including result = %v", g.Intervals())
	}
	h := g.Excluding(5, 2)
	if !reflect.DeepEqual(g.Intervals(), ivals(0, 10, 20, 30)) {
		t.Fatalf("Excluding mutated receiver: %v", g.Intervals())
	}
	if !reflect.DeepEqual(h.Intervals(), ivals(0, 5, 7, 10, 20, 30)) {
		t.Fatalf("Excluding result = %v", h.Intervals())
	}
}

// S7: zero-size patches consume no freespace and ignore gamut entirely.
func TestZeroSizeCandidatesIgnoreGamut(t *testing.T) {
	f := New()
	f.Add(0, 10)
	f.Add(100, 10)
	restrictive := rng.New(9000, 9001, 1) // does not overlap either interval
	c := f.Candidates(0, restrictive)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (one placeholder per interval)", c.Len())
	}
	var got []int
	c.ForEach(func(a int) bool { got = append(got, a); return false })
	for _, a := range got {
		if a != 0 {
			t.Fatalf("zero-size candidate = %d, want 0", a)
		}
	}
}

func TestCandidatesIntersectsGamut(t *testing.T) {
	f := New()
	f.Add(0, 10) // starts 0..7 for size 3 (since 10-3+1=8 -> R(0,8,1))
	only4and6 := rng.New(4, 8, 2)
	c := f.Candidates(3, only4and6)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	var got []int
	c.ForEach(func(a int) bool { got = append(got, a); return false })
	want := []int{4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCandidatesRoundRobinOrder(t *testing.T) {
	f := New()
	f.Add(0, 5)   // size-1 starts: 0,1,2,3,4
	f.Add(100, 3) // size-1 starts: 100,101,102
	c := f.Candidates(1, rng.Unbounded())
	var got []int
	c.ForEach(func(a int) bool { got = append(got, a); return false })
	want := []int{0, 100, 1, 101, 2, 102, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCandidatesForEachEarlyStop(t *testing.T) {
	f := New()
	f.Add(0, 100)
	c := f.Candidates(1, rng.Unbounded())
	count := 0
	c.ForEach(func(a int) bool {
		count++
		return count == 3
	})
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

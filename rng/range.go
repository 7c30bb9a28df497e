package rng

import "fmt"

// Range is an arithmetic progression {start, start+step, ..., < stop}, or
// one of two sentinel states: Unbounded (no constraint has been applied
// yet) and the empty range (no address satisfies it).
type Range struct {
	start, stop, step int
	unbounded         bool
	empty             bool
}

// Unbounded is the intersection identity: Unbounded.Intersect(g) == g.
func Unbounded() Range {
	return Range{unbounded: true}
}

// Empty is a range with no elements.
func Empty() Range {
	return Range{empty: true}
}

// New builds a concrete progression {start, start+step, ..., < stop}.
// step must be positive; a range with no elements collapses to Empty().
func New(start, stop, step int) Range {
	if step < 1 {
		panic(fmt.Sprintf("rng: step must be >= 1, got %d", step))
	}
	if stop <= start {
		return Empty()
	}
	return Range{start: start, stop: stop, step: step}
}

func (r Range) IsUnbounded() bool { return r.unbounded }
func (r Range) IsEmpty() bool     { return r.empty }

// Start, Stop, Step are only meaningful for a concrete (non-unbounded,
// non-empty) range.
func (r Range) Start() int { return r.start }
func (r Range) Stop() int   { return r.stop }
func (r Range) Step() int   { return r.step }

// Len is the number of addresses in the range. Panics for Unbounded, which
// has no finite cardinality.
func (r Range) Len() int {
	if r.unbounded {
		panic("rng: Len of an unbounded range")
	}
	if r.empty || r.stop <= r.start {
		return 0
	}
	return (r.stop - r.start + r.step - 1) / r.step
}

// At returns the i'th element (0-based) of a concrete range.
func (r Range) At(i int) int {
	return r.start + i*r.step
}

// Contains reports whether v is one of the range's addresses.
func (r Range) Contains(v int) bool {
	if r.empty {
		return false
	}
	if r.unbounded {
		return true
	}
	if v < r.start || v >= r.stop {
		return false
	}
	return (v-r.start)%r.step == 0
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// extGCD returns (g, x, y) such that a*x + b*y == g == gcd(a, b), for
// a, b > 0.
func extGCD(a, b int) (g, x, y int) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := extGCD(b, a%b)
	return g, y1, x1 - (a/b)*y1
}

func mod(a, m int) int {
	v := a % m
	if v < 0 {
		v += m
	}
	return v
}

// Intersect computes the set intersection of r and other: both bounds
// (the tighter stop) and the residue class (solved by CRT over the two
// step moduli) must agree for the result to be non-empty. Unbounded
// intersects to the other operand unchanged.
func (r Range) Intersect(other Range) Range {
	if r.unbounded {
		return other
	}
	if other.unbounded {
		return r
	}
	if r.empty || other.empty {
		return Empty()
	}

	x, y := r, other
	if x.start > y.start {
		x, y = y, x
	}
	stop := x.stop
	if y.stop < stop {
		stop = y.stop
	}

	g := gcd(x.step, y.step)
	lcm := x.step / g * y.step
	diff := y.start - x.start
	if diff%g != 0 {
		return Empty()
	}

	_, p, _ := extGCD(x.step, y.step)
	m2g := y.step / g
	t0 := mod((diff/g)*p, m2g)
	v := x.start + x.step*t0

	if v < y.start {
		k := (y.start - v + lcm - 1) / lcm
		v += k * lcm
	}
	if v >= stop {
		return Empty()
	}
	return New(v, stop, lcm)
}

// Exclude splits r around the sub-interval [low, high), returning the
// portion before low and the portion from high onward. Either result may
// be Empty(); a caller that assumed at most one residual would lose
// addresses on a range straddling both sides of the excluded interval.
func (r Range) Exclude(low, high int) (before, after Range) {
	if r.unbounded {
		panic("rng: Exclude of an unbounded range")
	}
	if r.empty {
		return Empty(), Empty()
	}

	before = Empty()
	if r.start < low {
		bstop := r.stop
		if low < bstop {
			bstop = low
		}
		if bstop > r.start {
			before = New(r.start, bstop, r.step)
		}
	}

	after = Empty()
	if r.stop > high {
		astart := r.start
		if high > r.start {
			k := (high - r.start + r.step - 1) / r.step
			astart = r.start + k*r.step
		}
		if astart < r.stop {
			after = New(astart, r.stop, r.step)
		}
	}
	return before, after
}

func (r Range) String() string {
	if r.unbounded {
		return "Range(unbounded)"
	}
	if r.empty {
		return "Range(empty)"
	}
	return fmt.Sprintf("Range(%d, %d, %d)", r.start, r.stop, r.step)
}

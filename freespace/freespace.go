package freespace

import "github.com/grailbio/bpatch/rng"

// Interval is a half-open address range [Start, Stop).
type Interval struct {
	Start, Stop int
}

// Freespace is a sorted list of disjoint, non-adjacent half-open
// intervals: the addresses still available for placing a patch.
type Freespace struct {
	intervals []Interval
}

// New returns an empty Freespace.
func New() *Freespace {
	return &Freespace{}
}

// Intervals returns a copy of the current interval list, sorted ascending
// by Start.
func (f *Freespace) Intervals() []Interval {
	out := make([]Interval, len(f.intervals))
	copy(out, f.intervals)
	return out
}

func mergeWith(intervals []Interval, start, size int) []Interval {
	if size <= 0 {
		return intervals
	}
	mergedStart, mergedStop := start, start+size
	written := false
	out := make([]Interval, 0, len(intervals)+1)
	for _, r := range intervals {
		switch {
		case r.Stop < mergedStart:
			// Entirely before the inserted range.
			out = append(out, r)
		case r.Start > mergedStop:
			// Entirely after; flush the merged chunk first.
			if !written {
				out = append(out, Interval{mergedStart, mergedStop})
				written = true
			}
			out = append(out, r)
		default:
			// Touches or overlaps: absorb into the merged chunk.
			if r.Start < mergedStart {
				mergedStart = r.Start
			}
			if r.Stop > mergedStop {
				mergedStop = r.Stop
			}
		}
	}
	if !written {
		out = append(out, Interval{mergedStart, mergedStop})
	}
	return out
}

func removeFrom(intervals []Interval, start, size int) []Interval {
	if size <= 0 {
		return intervals
	}
	removedStart, removedStop := start, start+size
	out := make([]Interval, 0, len(intervals))
	for _, r := range intervals {
		if r.Stop <= removedStart || r.Start >= removedStop {
			out = append(out, r)
			continue
		}
		// Overlaps: clip, producing 0, 1, or 2 residual intervals.
		if r.Start < removedStart {
			out = append(out, Interval{r.Start, removedStart})
		}
		if r.Stop > removedStop {
			out = append(out, Interval{removedStop, r.Stop})
		}
	}
	return out
}

// Add merges [start, start+size) into the set in place.
func (f *Freespace) Add(start, size int) {
	f.intervals = mergeWith(f.intervals, start, size)
}

// Remove clips [start, start+size) out of the set in place.
func (f *Freespace) Remove(start, size int) {
	f.intervals = removeFrom(f.intervals, start, size)
}

// Including returns a new Freespace with [start, start+size) merged in,
// leaving the receiver unmodified.
func (f *Freespace) Including(start, size int) *Freespace {
	return &Freespace{intervals: mergeWith(f.intervals, start, size)}
}

// Excluding returns a new Freespace with [start, start+size) clipped out,
// leaving the receiver unmodified.
func (f *Freespace) Excluding(start, size int) *Freespace {
	return &Freespace{intervals: removeFrom(f.intervals, start, size)}
}

// Candidates enumerates the addresses where a patch of the given size
// could start, subject to gamut. Zero-size patches consume no space and
// ignore gamut entirely: they can go anywhere, so each free interval
// simply contributes the placeholder address 0, and an empty Freespace
// still yields that one placeholder.
func (f *Freespace) Candidates(size int, gamut rng.Range) *Candidates {
	ranges := make([]rng.Range, 0, len(f.intervals))
	for _, iv := range f.intervals {
		if size == 0 {
			ranges = append(ranges, rng.New(0, 1, 1))
			continue
		}
		starts := rng.New(iv.Start, iv.Stop-size+1, 1)
		ranges = append(ranges, starts.Intersect(gamut))
	}
	if size == 0 && len(ranges) == 0 {
		ranges = append(ranges, rng.New(0, 1, 1))
	}
	return &Candidates{ranges: ranges}
}

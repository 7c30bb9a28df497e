package freespace

import "github.com/grailbio/bpatch/rng"

// Candidates is the set of addresses where a patch could be placed,
// grouped by the free interval each address came from.
type Candidates struct {
	ranges []rng.Range
}

// Len is the total number of candidate addresses.
func (c *Candidates) Len() int {
	total := 0
	for _, r := range c.ranges {
		if !r.IsEmpty() {
			total += r.Len()
		}
	}
	return total
}

// ForEach visits every candidate address in round-robin order across the
// contributing intervals (one address from interval 0, one from interval
// 1, ..., then back to 0), rather than draining each interval fully
// before moving to the next: this diversifies placement across the
// address space, which tends to make backtracking fail fast instead of
// piling every attempt into the same hot interval. Stops as soon as visit
// returns true.
func (c *Candidates) ForEach(visit func(address int) (stop bool)) {
	type cursor struct {
		idx int
		r   rng.Range
	}
	active := make([]cursor, 0, len(c.ranges))
	for _, r := range c.ranges {
		if !r.IsEmpty() && r.Len() > 0 {
			active = append(active, cursor{0, r})
		}
	}
	for len(active) > 0 {
		cur := active[0]
		active = active[1:]
		if visit(cur.r.At(cur.idx)) {
			return
		}
		cur.idx++
		if cur.idx < cur.r.Len() {
			active = append(active, cur)
		}
	}
}

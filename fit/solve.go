package fit

import (
	"errors"
	"sort"

	"github.com/grailbio/bpatch/freespace"
	"github.com/grailbio/bpatch/patch"
	"github.com/grailbio/bpatch/rng"
)

// ErrNoFit indicates no placement satisfies every patch's gamut and
// freespace constraint. Distinguished from a malformed-input error so
// callers can report a "fitting failed" outcome separately.
var ErrNoFit = errors.New("fit: no placement satisfies every constraint")

// Solve finds an address for every patch named in gamuts. It recurses in
// most-constrained-variable order: at each step, the name with the fewest
// remaining candidate addresses goes next, ties broken lexicographically,
// and candidates are tried in freespace's round-robin order. Ported from
// json_bpatch/constrain.py:make_fit_map_rec, generalized to take the gamut
// map as already-computed input (produced by package constrain) rather
// than recomputing it inline.
func Solve(patchMap patch.Map, gamuts map[string]rng.Range, fs *freespace.Freespace) (map[string]int, error) {
	unfitted := make([]string, 0, len(gamuts))
	for name := range gamuts {
		unfitted = append(unfitted, name)
	}
	sort.Strings(unfitted)

	fits := make(map[string]int, len(unfitted))
	if !solve(patchMap, gamuts, fs, unfitted, fits) {
		return nil, ErrNoFit
	}
	return fits, nil
}

func solve(patchMap patch.Map, gamuts map[string]rng.Range, fs *freespace.Freespace, unfitted []string, fits map[string]int) bool {
	if len(unfitted) == 0 {
		return true
	}

	candidateCount := func(name string) int {
		return fs.Candidates(patchMap[name].Len(), gamuts[name]).Len()
	}

	// unfitted is kept sorted by name throughout the recursion, so a
	// strict less-than comparison below keeps the first (alphabetically
	// smallest) name on a tie, matching the spec's deterministic
	// tie-break.
	bestIdx, bestCount := 0, candidateCount(unfitted[0])
	for i := 1; i < len(unfitted); i++ {
		if c := candidateCount(unfitted[i]); c < bestCount {
			bestIdx, bestCount = i, c
		}
	}

	name := unfitted[bestIdx]
	size := patchMap[name].Len()
	rest := make([]string, 0, len(unfitted)-1)
	rest = append(rest, unfitted[:bestIdx]...)
	rest = append(rest, unfitted[bestIdx+1:]...)

	found := false
	fs.Candidates(size, gamuts[name]).ForEach(func(address int) bool {
		fits[name] = address
		if solve(patchMap, gamuts, fs.Excluding(address, size), rest, fits) {
			found = true
			return true
		}
		delete(fits, name)
		return false
	})
	return found
}

package constrain

import (
	"fmt"

	"github.com/grailbio/base/errors"

	"github.com/grailbio/bpatch/patch"
	"github.com/grailbio/bpatch/rng"
)

// GamutMap computes the transitive closure of every Pointer constraint
// reachable from roots: starting from the root patch names, each patch's
// components intersect their referents' running gamut and enqueue any
// newly-discovered referent, until no unprocessed name remains. Patches
// never reached by a root or a pointer chain from one are absent from the
// result, matching the pruning json_bpatch/constrain.py:make_gamut_map
// performs by construction (it only ever visits patches reachable from
// to_process).
func GamutMap(patchMap patch.Map, roots []string) (map[string]rng.Range, error) {
	gamuts := make(map[string]rng.Range, len(roots))
	processed := make(map[string]bool, len(roots))
	toProcess := make([]string, 0, len(roots))
	for _, r := range roots {
		if _, ok := gamuts[r]; !ok {
			gamuts[r] = rng.Unbounded()
		}
		toProcess = append(toProcess, r)
	}

	for len(toProcess) > 0 {
		name := toProcess[0]
		toProcess = toProcess[1:]
		if processed[name] {
			// Constrain appends a referent whenever it isn't yet processed,
			// without checking whether it's already queued; the same name
			// can appear more than once when several pointers target it
			// before it's visited. Re-running Constrain on it would be
			// harmless (intersection is idempotent) but wasteful.
			continue
		}
		p, ok := patchMap[name]
		if !ok {
			return nil, errors.E(fmt.Sprintf("unknown patch referenced: %q", name))
		}
		p.Constrain(gamuts, processed, &toProcess)
		processed[name] = true
	}
	return gamuts, nil
}

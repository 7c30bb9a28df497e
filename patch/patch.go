package patch

import "github.com/grailbio/bpatch/rng"

// Component is a single element of a Patch: either a Datum (fixed bytes,
// no constraint) or a ptr.Pointer (an encoded address, constraining its
// referent's placement).
type Component interface {
	// Len is the number of bytes this component contributes to its Patch.
	Len() int
	// Data returns the bytes to write for this component, given the final
	// placement of every patch. A Pointer consults fitMap for its
	// referent; a Datum ignores it.
	Data(fitMap map[string]int) ([]byte, error)
	// Constrain applies this component's placement constraint (if any) to
	// gamuts, and records any newly-discovered referent in toProcess.
	Constrain(gamuts map[string]rng.Range, processed map[string]bool, toProcess *[]string)
}

// Datum is a fixed byte sequence contributed verbatim to a Patch.
type Datum []byte

func (d Datum) Len() int { return len(d) }

func (d Datum) Data(map[string]int) ([]byte, error) { return []byte(d), nil }

func (d Datum) Constrain(map[string]rng.Range, map[string]bool, *[]string) {}

// Patch is a named, ordered sequence of components forming one contiguous
// write unit.
type Patch struct {
	Name       string
	Components []Component
}

// Len is the total byte length of the patch: the sum of its components'
// lengths.
func (p *Patch) Len() int {
	total := 0
	for _, c := range p.Components {
		total += c.Len()
	}
	return total
}

// Constrain has every component apply its constraint to gamuts, growing
// toProcess with any newly-discovered referents.
func (p *Patch) Constrain(gamuts map[string]rng.Range, processed map[string]bool, toProcess *[]string) {
	for _, c := range p.Components {
		c.Constrain(gamuts, processed, toProcess)
	}
}

// Map collects every patch known to a run, keyed by name.
type Map map[string]*Patch

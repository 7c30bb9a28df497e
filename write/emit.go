package write

import (
	"sort"

	"github.com/grailbio/base/log"

	"github.com/grailbio/bpatch/freespace"
	"github.com/grailbio/bpatch/patch"
)

// Emit writes every patch in patchMap into buf at the address fitMap
// assigns it, in ascending-address order, and removes each placed
// interval from fs as it's written (so a caller inspecting fs afterward
// sees the post-patch freespace). Component.Data errors (an
// out-of-gamut or misaligned pointer address) abort the write; buf may
// be left partially written in that case, since a fit map produced by
// package fit should never reach this, and an error here indicates the
// fit map was tampered with or built against a different patch set.
func Emit(buf *Buffer, patchMap patch.Map, fitMap map[string]int, fs *freespace.Freespace) error {
	names := make([]string, 0, len(fitMap))
	for name := range fitMap {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := fitMap[names[i]], fitMap[names[j]]
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		where := fitMap[name]
		p := patchMap[name]
		log.Printf("Writing: %s in [%d:%d]", name, where, where+p.Len())
		offset := where
		for _, component := range p.Components {
			data, err := component.Data(fitMap)
			if err != nil {
				return err
			}
			buf.WriteAt(offset, data)
			offset += len(data)
		}
		fs.Remove(where, p.Len())
	}
	return nil
}

package loadpatch

import (
	"context"
	"encoding/json"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/bpatch/freespace"
)

// LoadFreespace reads a freespace file: a JSON array of [start, end)
// two-element arrays, loaded into a fresh freespace.Freespace via repeated
// Add. An empty path yields an empty Freespace.
func LoadFreespace(ctx context.Context, path string) (*freespace.Freespace, error) {
	fs := freespace.New()
	if path == "" {
		return fs, nil
	}
	var pairs [][2]int
	if err := readJSON(ctx, path, &pairs); err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		start, end := pair[0], pair[1]
		if end < start {
			return nil, errors.E("freespace interval end precedes start", path)
		}
		fs.Add(start, end-start)
	}
	return fs, nil
}

// SaveFreespace writes fs back out in the same [start, end) array shape
// LoadFreespace reads.
func SaveFreespace(ctx context.Context, path string, fs *freespace.Freespace) error {
	intervals := fs.Intervals()
	pairs := make([][2]int, len(intervals))
	for i, iv := range intervals {
		pairs[i] = [2]int{iv.Start, iv.Stop}
	}
	data, err := json.Marshal(pairs)
	if err != nil {
		return errors.E(err, "encoding freespace JSON")
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "creating", path)
	}
	defer out.Close(ctx)
	if _, err := out.Writer(ctx).Write(data); err != nil {
		return errors.E(err, "writing", path)
	}
	return nil
}

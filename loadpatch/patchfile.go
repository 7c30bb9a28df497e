package loadpatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/bpatch/patch"
)

func readJSON(ctx context.Context, path string, out interface{}) error {
	f, err := file.Open(ctx, path)
	if err != nil {
		return errors.E(err, "opening", path)
	}
	defer f.Close(ctx)
	data, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return errors.E(err, "reading", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.E(err, "parsing JSON in", path)
	}
	return nil
}

// LoadPatchFile reads the patch file at patchPath, and the optional
// defaults file at defaultsPath (empty means no defaults), into a
// patch.Map. Each patch name maps to a JSON array of items: a string is a
// Datum literal (see makeDatum), an object is a Pointer whose fields merge
// over defaults field-by-field.
func LoadPatchFile(ctx context.Context, patchPath, defaultsPath string) (patch.Map, error) {
	var defaults pointerFields
	if defaultsPath != "" {
		if err := readJSON(ctx, defaultsPath, &defaults); err != nil {
			return nil, err
		}
		if err := validateDefaults(defaults); err != nil {
			return nil, errors.E(err, "in defaults file", defaultsPath)
		}
	}

	var raw map[string][]json.RawMessage
	if err := readJSON(ctx, patchPath, &raw); err != nil {
		return nil, err
	}

	result := make(patch.Map, len(raw))
	for name, items := range raw {
		components := make([]patch.Component, 0, len(items))
		for i, item := range items {
			component, err := loadItem(ctx, defaults, name, item)
			if err != nil {
				return nil, errors.E(err, fmt.Sprintf("patch %q item %d", name, i))
			}
			components = append(components, component)
		}
		result[name] = &patch.Patch{Name: name, Components: components}
	}
	return result, nil
}

func loadItem(ctx context.Context, defaults pointerFields, patchName string, raw json.RawMessage) (patch.Component, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return makeDatum(ctx, asString)
	}

	fields, err := decodePointerFields(raw)
	if err != nil {
		return nil, errors.E("patch item must be a Datum literal string or a Pointer object", err)
	}
	return resolve(defaults, fields, patchName)
}

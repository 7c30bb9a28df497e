package loadpatch

import (
	"bytes"
	"encoding/json"

	"github.com/grailbio/base/errors"

	"github.com/grailbio/bpatch/ptr"
)

// pointerFields is the raw JSON shape of a Pointer patch item, and also of
// a defaults file. Pointer fields to encoding/json's struct-based decoding,
// which already rejects a JSON bool where a struct field is typed int (and
// vice versa) and a non-integer JSON number where a field is typed int:
// ported from json_bpatch/main.py:get_param's explicit `type(value) !=
// expected_type` check, which Go's static struct typing gives for free.
type pointerFields struct {
	Referent  *string `json:"referent"`
	Offset    *int    `json:"offset"`
	Size      *int    `json:"size"`
	Align     *int    `json:"align"`
	Stride    *int    `json:"stride"`
	Signed    *bool   `json:"signed"`
	BigEndian *bool   `json:"bigendian"`
}

// decodePointerFields strict-decodes raw into a pointerFields, rejecting
// unknown keys so a typo in a field name fails loudly instead of silently
// falling back to a default.
func decodePointerFields(raw json.RawMessage) (pointerFields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var pf pointerFields
	if err := dec.Decode(&pf); err != nil {
		return pointerFields{}, errors.E(err, "malformed pointer fields")
	}
	return pf, nil
}

// validateDefaults enforces that a defaults file never specifies referent:
// it must always come from the patch item itself.
func validateDefaults(pf pointerFields) error {
	if pf.Referent != nil {
		return errors.E("default value for referent may not be specified")
	}
	return nil
}

// resolve merges settings over defaults field-by-field (settings wins when
// both specify a field), returning an error naming the first field that
// neither side provides.
func resolve(defaults, settings pointerFields, patchName string) (ptr.Pointer, error) {
	offset, err := resolveInt(defaults.Offset, settings.Offset, "offset", patchName)
	if err != nil {
		return ptr.Pointer{}, err
	}
	size, err := resolveInt(defaults.Size, settings.Size, "size", patchName)
	if err != nil {
		return ptr.Pointer{}, err
	}
	align, err := resolveInt(defaults.Align, settings.Align, "align", patchName)
	if err != nil {
		return ptr.Pointer{}, err
	}
	stride, err := resolveInt(defaults.Stride, settings.Stride, "stride", patchName)
	if err != nil {
		return ptr.Pointer{}, err
	}
	signed, err := resolveBool(defaults.Signed, settings.Signed, "signed", patchName)
	if err != nil {
		return ptr.Pointer{}, err
	}
	bigendian, err := resolveBool(defaults.BigEndian, settings.BigEndian, "bigendian", patchName)
	if err != nil {
		return ptr.Pointer{}, err
	}
	if settings.Referent == nil {
		return ptr.Pointer{}, errors.E("referent must be specified on every pointer item", patchName)
	}
	return ptr.New(*settings.Referent, offset, size, align, stride, signed, bigendian)
}

func resolveInt(fromDefaults, fromSettings *int, field, patchName string) (int, error) {
	if fromSettings != nil {
		return *fromSettings, nil
	}
	if fromDefaults != nil {
		return *fromDefaults, nil
	}
	return 0, errors.E("missing required pointer field", field, "in patch", patchName)
}

func resolveBool(fromDefaults, fromSettings *bool, field, patchName string) (bool, error) {
	if fromSettings != nil {
		return *fromSettings, nil
	}
	if fromDefaults != nil {
		return *fromDefaults, nil
	}
	return false, errors.E("missing required pointer field", field, "in patch", patchName)
}

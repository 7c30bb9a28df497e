package loadpatch

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/bpatch/patch"
)

// makeDatum dispatches a Datum literal string on its leading character, per
// json_bpatch/main.py:make_datum: "@path" reads a raw file, "=..." decodes
// standard base64, and anything else is whitespace-separated hex byte
// pairs.
func makeDatum(ctx context.Context, s string) (patch.Datum, error) {
	switch {
	case strings.HasPrefix(s, "@"):
		return readFileDatum(ctx, s[1:])
	case strings.HasPrefix(s, "="):
		data, err := base64.StdEncoding.DecodeString(s[1:])
		if err != nil {
			return nil, errors.E(err, "invalid base64 datum literal")
		}
		return patch.Datum(data), nil
	default:
		return hexDatum(s)
	}
}

func readFileDatum(ctx context.Context, path string) (patch.Datum, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "reading datum file", path)
	}
	defer f.Close(ctx)
	data, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "reading datum file", path)
	}
	return patch.Datum(data), nil
}

func hexDatum(s string) (patch.Datum, error) {
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		b, err := hex.DecodeString(f)
		if err != nil || len(b) != 1 {
			return nil, errors.E(fmt.Sprintf("invalid hex byte pair %q in datum literal", f))
		}
		out = append(out, b[0])
	}
	return patch.Datum(out), nil
}

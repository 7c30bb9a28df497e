package loadpatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadPatchFileHexAndBase64AndFileDatums(t *testing.T) {
	dir := t.TempDir()
	raw := writeFile(t, dir, "raw.bin", "\xDE\xAD\xBE\xEF")
	patchPath := writeFile(t, dir, "patch.json", `{
		"hexDatum": ["DE AD BE EF"],
		"b64Datum": ["=3q2+7w=="],
		"fileDatum": ["@`+raw+`"]
	}`)

	pm, err := LoadPatchFile(vcontext.Background(), patchPath, "")
	if err != nil {
		t.Fatalf("LoadPatchFile: %v", err)
	}
	for _, name := range []string{"hexDatum", "b64Datum", "fileDatum"} {
		p, ok := pm[name]
		if !ok {
			t.Fatalf("missing patch %q", name)
		}
		if p.Len() != 4 {
			t.Fatalf("%s: Len() = %d, want 4", name, p.Len())
		}
		data, err := p.Components[0].Data(nil)
		if err != nil {
			t.Fatalf("%s: Data: %v", name, err)
		}
		want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		for i, b := range want {
			if data[i] != b {
				t.Fatalf("%s: byte %d = %x, want %x", name, i, data[i], b)
			}
		}
	}
}

func TestLoadPatchFilePointerMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	defaultsPath := writeFile(t, dir, "defaults.json", `{
		"offset": 0, "size": 2, "align": 1, "stride": 1, "signed": false, "bigendian": false
	}`)
	patchPath := writeFile(t, dir, "patch.json", `{
		"p": [{"referent": "target", "offset": 100}]
	}`)

	pm, err := LoadPatchFile(vcontext.Background(), patchPath, defaultsPath)
	if err != nil {
		t.Fatalf("LoadPatchFile: %v", err)
	}
	if pm["p"].Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (from defaults.size)", pm["p"].Len())
	}
}

func TestLoadPatchFileMissingFieldIsError(t *testing.T) {
	dir := t.TempDir()
	patchPath := writeFile(t, dir, "patch.json", `{
		"p": [{"referent": "target", "offset": 100}]
	}`)
	if _, err := LoadPatchFile(vcontext.Background(), patchPath, ""); err == nil {
		t.Fatalf("expected error for missing size/align/stride/signed/bigendian")
	}
}

func TestLoadPatchFileBoolForIntIsRejected(t *testing.T) {
	dir := t.TempDir()
	patchPath := writeFile(t, dir, "patch.json", `{
		"p": [{"referent": "t", "offset": true, "size": 1, "align": 1, "stride": 1, "signed": false, "bigendian": false}]
	}`)
	if _, err := LoadPatchFile(vcontext.Background(), patchPath, ""); err == nil {
		t.Fatalf("expected error for bool presented where an int field is expected")
	}
}

func TestLoadPatchFileIntForBoolIsRejected(t *testing.T) {
	dir := t.TempDir()
	patchPath := writeFile(t, dir, "patch.json", `{
		"p": [{"referent": "t", "offset": 0, "size": 1, "align": 1, "stride": 1, "signed": 1, "bigendian": false}]
	}`)
	if _, err := LoadPatchFile(vcontext.Background(), patchPath, ""); err == nil {
		t.Fatalf("expected error for int presented where a bool field is expected")
	}
}

func TestLoadPatchFileReferentForbiddenInDefaults(t *testing.T) {
	dir := t.TempDir()
	defaultsPath := writeFile(t, dir, "defaults.json", `{
		"referent": "nope", "offset": 0, "size": 1, "align": 1, "stride": 1, "signed": false, "bigendian": false
	}`)
	patchPath := writeFile(t, dir, "patch.json", `{"p": []}`)
	if _, err := LoadPatchFile(vcontext.Background(), patchPath, defaultsPath); err == nil {
		t.Fatalf("expected error for referent in defaults file")
	}
}

func TestLoadPatchFileMalformedShapeIsError(t *testing.T) {
	dir := t.TempDir()
	patchPath := writeFile(t, dir, "patch.json", `{"p": "not an array"}`)
	if _, err := LoadPatchFile(vcontext.Background(), patchPath, ""); err == nil {
		t.Fatalf("expected error for a patch value that isn't a JSON array")
	}
}

func TestLoadFreespaceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "free.json", `[[0, 10], [20, 30]]`)
	ctx := vcontext.Background()
	fs, err := LoadFreespace(ctx, path)
	if err != nil {
		t.Fatalf("LoadFreespace: %v", err)
	}
	intervals := fs.Intervals()
	if len(intervals) != 2 || intervals[0].Start != 0 || intervals[0].Stop != 10 {
		t.Fatalf("got %v", intervals)
	}

	outPath := filepath.Join(dir, "free_out.json")
	if err := SaveFreespace(ctx, outPath, fs); err != nil {
		t.Fatalf("SaveFreespace: %v", err)
	}
	fs2, err := LoadFreespace(ctx, outPath)
	if err != nil {
		t.Fatalf("LoadFreespace(round trip): %v", err)
	}
	if len(fs2.Intervals()) != 2 {
		t.Fatalf("round trip: got %v", fs2.Intervals())
	}
}

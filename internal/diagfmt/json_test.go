package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"veryl/internal/diag"
	"veryl/internal/source"
)

func TestJSONBasic(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || out.Total != 1 {
		t.Fatalf("count=%d total=%d", out.Count, out.Total)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3300" || d.Category != "type" {
		t.Errorf("header = %+v", d)
	}
	if d.Location.File != "top.veryl" || d.Location.StartLine != 2 || d.Location.StartCol != 13 || d.Location.EndCol != 21 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 1 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.veryl", []byte("module a {}\n"))
	bag := diag.NewBag(0)
	for i := range 3 {
		bag.Add(diag.NewError(diag.SemaUnresolvedIdentifier, source.Span{File: id, Start: uint32(i), End: uint32(i + 1)}, "x is undefined"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Total != 3 {
		t.Fatalf("count=%d total=%d", out.Count, out.Total)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatal("positions must be omitted unless requested")
	}
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "note SEM3300 src/top.veryl:1:13") {
		t.Fatalf("short output:\n%s", buf.String())
	}
}

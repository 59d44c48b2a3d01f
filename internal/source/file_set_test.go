package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("top.veryl", []byte("module a {}"), 0)
	id2 := fs.Add("top.veryl", []byte("module b {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("top.veryl")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v, want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "module a {}" {
		t.Fatalf("old version lost: %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.veryl", []byte("ab\ncd\n\nef"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	f := fs.Get(id)
	for _, tc := range cases {
		if got := f.Position(tc.off); got != tc.want {
			t.Errorf("Position(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
		if back := f.Offset(tc.want.Line, tc.want.Col); back != tc.off {
			t.Errorf("Offset(%+v) = %d, want %d", tc.want, back, tc.off)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.veryl", []byte("first\nsecond\r\nthird")))
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("GetLine(9) = %q, want empty", got)
	}
}

func TestLoadStripsBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.veryl")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.veryl")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.veryl")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/file.veryl"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

package diag

import (
	"testing"

	"veryl/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/src/top.veryl", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		NewError(SemaInvalidClock, source.Span{File: file, Start: 2, End: 3}, "invalid clock b").
			WithNote(source.Span{File: file, Start: 0, End: 1}, "declared\nhere"),
		NewError(SynUnexpectedToken, source.Span{File: file, Start: 0, End: 1}, "unexpected"),
	}

	want := "note SEM3300 src/top.veryl:1:1 declared here\n" +
		"error SYN2001 src/top.veryl:1:1 unexpected\n" +
		"error SEM3300 src/top.veryl:2:1 invalid clock b"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestCodeCategory(t *testing.T) {
	cases := map[Code]Category{
		SemaUnresolvedIdentifier:       CategoryResolution,
		SemaDuplicateDeclaration:       CategoryResolution,
		SemaInvalidClock:               CategoryType,
		SemaInvalidReset:               CategoryType,
		SemaMissingIfReset:             CategoryStructural,
		SemaMissingClockSignal:         CategoryStructural,
		SemaInvalidResetNonElaborative: CategoryEvaluation,
		SynUnexpectedToken:             CategorySyntax,
	}
	for code, want := range cases {
		if got := code.Category(); got != want {
			t.Errorf("%s: category %s, want %s", code.ID(), got, want)
		}
	}
}

func TestBagLimitAndDedup(t *testing.T) {
	b := NewBag(2)
	d := NewError(SemaInvalidReset, source.Span{Start: 1, End: 2}, "x")
	if !b.Add(d) || !b.Add(d) || b.Add(d) {
		t.Fatal("bag must accept exactly two diagnostics")
	}
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("Len after Dedup = %d", b.Len())
	}
	if !b.HasErrors() {
		t.Fatal("HasErrors = false")
	}

	unlimited := NewBag(0)
	for i := 0; i < 100; i++ {
		unlimited.Add(d)
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag kept %d", unlimited.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rb := ReportError(BagReporter{Bag: bag}, SemaDuplicateDeclaration, source.Span{}, "dup").
		WithNote(source.Span{Start: 4, End: 5}, "previous declaration here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("unexpected bag contents: %+v", bag.Items())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	r.Report(SemaInvalidClock, SevError, source.Span{Start: 1, End: 2}, "m", nil)
	r.Report(SemaInvalidClock, SevError, source.Span{Start: 1, End: 2}, "m", nil)
	r.Report(SemaInvalidClock, SevError, source.Span{Start: 3, End: 4}, "m", nil)
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

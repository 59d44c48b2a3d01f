package analyzer

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/parser"
	"veryl/internal/source"
	"veryl/internal/symbols"
)

func parseAll(t *testing.T, srcs ...string) []*ast.File {
	t.Helper()
	fs := source.NewFileSet()
	files := make([]*ast.File, 0, len(srcs))
	for i, src := range srcs {
		id := fs.AddVirtual(fmt.Sprintf("f%d.veryl", i), []byte(src))
		bag := diag.NewBag(0)
		res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if bag.Len() != 0 {
			t.Fatalf("parse f%d: %d diagnostics", i, bag.Len())
		}
		files = append(files, res.File)
	}
	return files
}

// run executes the three passes with the barriers, pass 1 concurrently.
func run(t *testing.T, a *Analyzer, files []*ast.File) []diag.Diagnostic {
	t.Helper()
	ctx := context.Background()
	units := make([]*symbols.Unit, len(files))
	perFile := make([][]diag.Diagnostic, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			units[i], perFile[i] = a.Pass1(ctx, f)
		}()
	}
	wg.Wait()

	var out []diag.Diagnostic
	for _, ds := range perFile {
		out = append(out, ds...)
	}
	out = append(out, a.Commit(units)...)
	for _, f := range files {
		out = append(out, a.Pass2(ctx, f)...)
	}
	_, cycles := a.SortTypes()
	out = append(out, cycles...)
	for _, f := range files {
		out = append(out, a.Pass3(ctx, f)...)
	}
	return out
}

func summary(ds []diag.Diagnostic) string {
	if len(ds) == 0 {
		return "<none>"
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

const top = `
module Top (i_clk: input clock, i_rst: input reset, o: output logic<8>) {
    inst u: Sub (i_clk, i_rst, o);
}
`

const sub = `
module Sub (i_clk: input clock, i_rst: input reset, o: output logic<8>) {
    always_ff (i_clk, i_rst) {
        if_reset {
            o = pkg::INIT;
        } else {
            o = o + 1;
        }
    }
}
package pkg {
    local INIT: u32 = 8'h10;
}
`

func TestForwardReferenceAcrossFiles(t *testing.T) {
	a := New("prj", Options{})
	diags := run(t, a, parseAll(t, top, sub))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(diags))
	}
	order, _ := a.SortTypes()
	if !slices.Equal(order, []string{"prj.Top", "prj.Sub", "prj.pkg"}) {
		t.Fatalf("type order = %v", order)
	}
	if a.Context().Refs.Len() == 0 {
		t.Fatal("no references recorded")
	}
}

func TestProgressEvents(t *testing.T) {
	var mu sync.Mutex
	counts := map[Stage]int{}
	sink := SinkFunc(func(e Event) {
		if e.Status == StatusWorking {
			return
		}
		mu.Lock()
		counts[e.Stage]++
		mu.Unlock()
	})
	a := New("prj", Options{Progress: sink})
	run(t, a, parseAll(t, top, sub))
	for _, st := range []Stage{StagePass1, StagePass2, StagePass3} {
		if counts[st] != 2 {
			t.Fatalf("%s: %d finished events, want 2", st, counts[st])
		}
	}
}

func TestErrorStatusOnDiagnostics(t *testing.T) {
	ch := make(chan Event, 32)
	a := New("", Options{Progress: ChannelSink{Ch: ch}})
	// два тактовых порта: тактового сигнала по умолчанию нет
	diags := run(t, a, parseAll(t, `module m (c: input clock, d: input clock) { var r: logic; always_ff { r = 0; } }`))
	close(ch)
	if len(diags) != 1 || diags[0].Code != diag.SemaMissingClockSignal {
		t.Fatalf("diagnostics: %s", summary(diags))
	}

	var last Event
	for e := range ch {
		last = e
	}
	if last.Stage != StagePass3 || last.Status != StatusError || last.Diagnostics != 1 {
		t.Fatalf("last event = %+v", last)
	}
}

func TestCommitReportsDuplicatesAgainstLaterFile(t *testing.T) {
	a := New("prj", Options{})
	diags := run(t, a, parseAll(t, `module M {}`, `module M {}`))
	if len(diags) != 1 || diags[0].Code != diag.SemaDuplicateDeclaration {
		t.Fatalf("diagnostics: %s", summary(diags))
	}
	if diags[0].Primary.File != 1 {
		t.Fatalf("duplicate reported in file %d", diags[0].Primary.File)
	}
}

func TestSortTypesDedupsCycles(t *testing.T) {
	a := New("", Options{})
	diags := run(t, a, parseAll(t, "module A { inst b: B; }\nmodule B { inst a: A; }"))
	cyc := 0
	for _, d := range diags {
		if d.Code == diag.SemaCyclicTypeDependency {
			cyc++
		}
	}
	if cyc != 2 {
		t.Fatalf("expected one diagnostic per cycle member, got %s", summary(diags))
	}
}

func TestResetStartsNewSession(t *testing.T) {
	a := New("prj", Options{})
	run(t, a, parseAll(t, sub))
	first := a.Session()
	if a.Table().Symbols.Len() == 0 {
		t.Fatal("symbols missing after run")
	}
	a.Reset()
	if a.Session().ID == first.ID {
		t.Fatal("session id reused")
	}
	if a.Table().Symbols.Len() != 0 || a.Context().Assigns.Len() != 0 {
		t.Fatal("reset kept previous results")
	}
}

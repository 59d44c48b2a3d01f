package handlers

import (
	"fmt"
	"strings"
	"testing"

	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/parser"
	"veryl/internal/source"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

type analyzed struct {
	ctx   *Context
	files []*ast.File
	diags []diag.Diagnostic
}

// analyze runs all three passes over srcs, one file per source.
func analyze(t *testing.T, srcs ...string) analyzed {
	t.Helper()
	fs := source.NewFileSet()
	table := symbols.NewTable(symbols.Hints{}, nil, "prj")
	a := analyzed{ctx: NewContext(table)}

	var units []*symbols.Unit
	for i, src := range srcs {
		id := fs.AddVirtual(fmt.Sprintf("f%d.veryl", i), []byte(src))
		bag := diag.NewBag(0)
		res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if bag.Len() != 0 {
			t.Fatalf("parse %d: %s", i, summary(bag.Items()))
		}
		a.files = append(a.files, res.File)
		cst, num := NewCreateSymbolTable(id), NewCheckNumber()
		walker.Walk(res.File, cst, num)
		a.diags = append(a.diags, walker.Collect(cst, num)...)
		units = append(units, cst.Unit())
	}
	for _, u := range units {
		for _, err := range table.Commit(u) {
			d, _ := FromError(err)
			a.diags = append(a.diags, d)
		}
	}
	for _, f := range a.files {
		hs := []walker.Handler{NewCreateReference(a.ctx), NewCreateTypeDag(a.ctx), NewCreateAssignList(a.ctx)}
		walker.Walk(f, hs...)
		a.diags = append(a.diags, walker.Collect(hs...)...)
	}
	for _, f := range a.files {
		hs := []walker.Handler{NewCheckClockReset(a.ctx), NewCheckAssignment(a.ctx)}
		walker.Walk(f, hs...)
		a.diags = append(a.diags, walker.Collect(hs...)...)
	}
	return a
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

func codes(ds []diag.Diagnostic, code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func expectOnly(t *testing.T, ds []diag.Diagnostic, code diag.Code) diag.Diagnostic {
	t.Helper()
	if len(ds) != 1 || ds[0].Code != code {
		t.Fatalf("expected exactly one %s, got %s", code.ID(), summary(ds))
	}
	return ds[0]
}

func TestScenarioPosedgeClockNoReset(t *testing.T) {
	a := analyze(t, `
module Top (
    i_clk: input clock_posedge,
    i_d: input logic,
    o_q: output logic,
) {
    var r: logic;
    always_ff (i_clk) {
        r = i_d;
    }
    assign o_q = r;
}
`)
	if len(a.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.diags))
	}
}

func TestScenarioMissingIfReset(t *testing.T) {
	a := analyze(t, `
module Top (i_clk: input clock, i_rst: input reset) {
    var r: logic;
    always_ff (i_clk, i_rst) {
        r = 0;
    }
}
`)
	expectOnly(t, a.diags, diag.SemaMissingIfReset)
}

func TestScenarioNonElaborativeReset(t *testing.T) {
	src := `
module Top (i_clk: input clock, i_rst: input reset, i_d: input logic, o_q: output logic) {
    always_ff (i_clk, i_rst) {
        if_reset {
            o_q = i_d;
        } else {
            o_q = i_d;
        }
    }
}
`
	a := analyze(t, src)
	d := expectOnly(t, a.diags, diag.SemaInvalidResetNonElaborative)
	start := strings.Index(src, "o_q = i_d;") + len("o_q = ")
	if d.Primary.Start != uint32(start) || d.Primary.End != uint32(start+len("i_d")) {
		t.Fatalf("span = %v, want the right-hand side at %d", d.Primary, start)
	}
}

func TestScenarioPartiallySelectedClockArray(t *testing.T) {
	src := `
module Top (i_d: input logic) {
    var clks: clock<2> [4];
    var r: logic;
    always_ff (clks[1]) {
        r = i_d;
    }
}
`
	a := analyze(t, src)
	d := expectOnly(t, a.diags, diag.SemaInvalidClock)
	if !strings.Contains(d.Message, "clks") {
		t.Fatalf("message does not name the identifier: %q", d.Message)
	}
	if got := src[d.Primary.Start:d.Primary.End]; got != "clks[1]" {
		t.Fatalf("span covers %q", got)
	}
}

func TestScenarioMissingClockSignal(t *testing.T) {
	a := analyze(t, `
module Top (i_d: input logic) {
    var r: logic;
    always_ff {
        r = i_d;
    }
}
`)
	expectOnly(t, a.diags, diag.SemaMissingClockSignal)
}

func TestSelectorCountInvariant(t *testing.T) {
	cases := []struct {
		ref   string
		valid bool
	}{
		{"clks[0][1]", true},
		{"clks[0]", false},
		{"clks", false},
		{"clks[0][1][2]", false},
		{"clks[idx[0]][1]", true},
	}
	for _, tc := range cases {
		a := analyze(t, fmt.Sprintf(`
module Top (i_d: input logic, i_rst: input reset_sync_low [3]) {
    var clks: clock_negedge<2> [2];
    var idx: logic<2> [2];
    var r: logic;
    always_ff (%s, i_rst[2]) {
        if_reset {
            r = 0;
        }
    }
}
`, tc.ref))
		bad := codes(a.diags, diag.SemaInvalidClock)
		if tc.valid != (len(bad) == 0) {
			t.Fatalf("%s: valid=%v, diagnostics: %s", tc.ref, tc.valid, summary(a.diags))
		}
		if len(a.diags) != len(bad) {
			t.Fatalf("%s: unexpected diagnostics: %s", tc.ref, summary(a.diags))
		}
	}
}

func TestInvalidResetThroughInterface(t *testing.T) {
	a := analyze(t, `
interface Bus {
    var rst: reset<2>;
    var clk: clock;
}
module Top (i_d: input logic) {
    var bus: Bus;
    var r: logic;
    always_ff (bus.clk, bus.rst) {
        if_reset {
            r = 0;
        }
    }
}
`)
	d := expectOnly(t, a.diags, diag.SemaInvalidReset)
	if !strings.HasPrefix(d.Message, "bus ") {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestDefaultInheritance(t *testing.T) {
	withDefault := `
module Top (i_clk: input clock, i_rst: input reset_async_high, i_d: input logic) {
    var r: logic;
    always_ff {
        if_reset {
            r = 0;
        } else {
            r = i_d;
        }
    }
}
`
	if a := analyze(t, withDefault); len(a.diags) != 0 {
		t.Fatalf("defaults should satisfy the block: %s", summary(a.diags))
	}

	noDefault := `
module Top (i_clk_a: input clock, i_clk_b: input clock, i_d: input logic) {
    var r: logic;
    always_ff {
        r = i_d;
    }
}
`
	expectOnly(t, analyze(t, noDefault).diags, diag.SemaMissingClockSignal)

	attributed := `
module Top (
    #[default_clock]
    i_clk_a: input clock,
    i_clk_b: input clock,
    i_d: input logic,
) {
    var r: logic;
    always_ff {
        r = i_d;
    }
}
`
	if a := analyze(t, attributed); len(a.diags) != 0 {
		t.Fatalf("attributed default ignored: %s", summary(a.diags))
	}
}

func TestMissingResetSignal(t *testing.T) {
	a := analyze(t, `
module Top (i_clk: input clock, i_d: input logic) {
    var r: logic;
    always_ff (i_clk) {
        r = i_d;
        if_reset {
            r = 0;
        }
    }
}
`)
	expectOnly(t, a.diags, diag.SemaMissingResetSignal)
}

func TestEvaluatorMonotonicity(t *testing.T) {
	cases := []struct {
		rhs string
		bad bool
	}{
		{"0", false},
		{"8'hff", false},
		{"INIT", false},
		{"W - 1", false},
		{"INIT + $clog2(W)", false},
		{"{1'b0, INIT[3:0]}", false},
		{"i_d", true},
		{"i_d + INIT", true},
		{"missing", true},
	}
	for _, tc := range cases {
		a := analyze(t, fmt.Sprintf(`
module Top::<W: u32> #(param INIT: u32 = 3) (i_clk: input clock, i_rst: input reset, i_d: input logic) {
    var r: logic<8>;
    always_ff (i_clk, i_rst) {
        if_reset {
            r = %s;
        }
    }
}
`, tc.rhs))
		bad := codes(a.diags, diag.SemaInvalidResetNonElaborative)
		if tc.bad != (len(bad) == 1) {
			t.Fatalf("%s: expected rejection=%v, got %s", tc.rhs, tc.bad, summary(a.diags))
		}
	}
}

func TestBraceDepthClosesAtMatchingBrace(t *testing.T) {
	src := `
module Top (i_clk: input clock, i_rst: input reset, i_d: input logic) {
    var r: logic;
    always_ff (i_clk, i_rst) {
        if_reset {
            if i_d {
                if i_d {
                    r = 0;
                }
            } else {
                r = 1;
            }
            r = 0;
        } else {
            r = i_d;
        }
    }
}
`
	a := analyze(t, src)
	if len(a.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.diags))
	}

	h := NewCheckClockReset(a.ctx)
	var trace strings.Builder
	transitions := 0
	was := false
	probe := walker.HandlerFunc(func(p walker.Point, n ast.Node) {
		if b, ok := n.(*ast.Brace); ok && p == walker.Before {
			if b.Open {
				trace.WriteByte('{')
			} else {
				trace.WriteByte('}')
			}
			if was && !h.inIfReset {
				transitions++
				trace.WriteByte('!')
			}
			was = h.inIfReset
		}
		if _, ok := n.(*ast.IfResetStmt); ok && p == walker.Before {
			was = h.inIfReset
		}
	})
	walker.Walk(a.files[0], h, probe)
	if transitions != 1 {
		t.Fatalf("in_if_reset cleared %d times; braces %s", transitions, trace.String())
	}
	// сброс приходится на закрывающую скобку if_reset, перед else
	if got := trace.String(); !strings.Contains(got, "{{{{}}{}}!{}") {
		t.Fatalf("unexpected brace trace %s", got)
	}
}

func TestUnresolvedAndDuplicate(t *testing.T) {
	a := analyze(t,
		`module Top (i_clk: input clock) { var r: logic; always_ff (i_clk) { r = nothing; } }`,
		`module Top { }`,
	)
	if len(codes(a.diags, diag.SemaUnresolvedIdentifier)) != 1 {
		t.Fatalf("expected one unresolved identifier: %s", summary(a.diags))
	}
	dup := codes(a.diags, diag.SemaDuplicateDeclaration)
	if len(dup) != 1 || dup[0].Primary.File != 1 || len(dup[0].Notes) != 1 {
		t.Fatalf("duplicate must be reported against the later file: %s", summary(a.diags))
	}
}

func TestUnresolvedClockIsLeftToReferences(t *testing.T) {
	a := analyze(t, `module Top { var r: logic; always_ff (clk) { r = 0; } }`)
	expectOnly(t, a.diags, diag.SemaUnresolvedIdentifier)
}

func TestCheckNumber(t *testing.T) {
	a := analyze(t, `
module Top {
    var a: logic<4>;
    var b: logic<4>;
    assign a = 4'b1012;
    assign b = 4'h1f;
}
`)
	if len(codes(a.diags, diag.SemaInvalidNumberCharacter)) != 1 || len(codes(a.diags, diag.SemaTooLargeNumber)) != 1 || len(a.diags) != 2 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.diags))
	}
}

func TestCheckAssignment(t *testing.T) {
	a := analyze(t, `
module Top #(param P: u32 = 1) (i_a: input logic, o_b: output logic) {
    let l: logic = i_a;
    always_comb {
        i_a = 1;
        o_b = 0;
        l = 0;
    }
    assign P = 2;
}
`)
	bad := codes(a.diags, diag.SemaInvalidAssignment)
	if len(bad) != 3 || len(a.diags) != 3 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.diags))
	}
}

func TestReferencesAssignsAndDag(t *testing.T) {
	a := analyze(t, `
package pkg {
    param WIDTH: u32 = 8;
}
module Sub (i_clk: input clock, o_data: output logic<pkg::WIDTH>) {
    assign o_data = 0;
}
module Top (i_clk: input clock) {
    var data: logic<8>;
    inst u0: Sub (i_clk, o_data: data);
    always_comb {
        data = u0.o_data;
    }
}
`)
	if len(a.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.diags))
	}
	if a.ctx.Refs.Len() == 0 {
		t.Fatal("no references recorded")
	}
	var kinds []string
	for _, as := range a.ctx.Assigns.Items() {
		kinds = append(kinds, as.Kind.String()+":"+as.Path)
	}
	if got := strings.Join(kinds, " "); got != "assign:o_data inst:data always_comb:data" {
		t.Fatalf("assign list = %s", got)
	}
	want := "prj.Sub -> prj.pkg\nprj.Top -> prj.Sub\nprj.pkg\n"
	if got := a.ctx.Dag.Dump(); got != want {
		t.Fatalf("type dag:\n%s\nwant:\n%s", got, want)
	}
}

func TestInstanceConnectionNames(t *testing.T) {
	a := analyze(t, `
module Sub #(param W: u32 = 8) (i_clk: input clock, o_data: output logic<W>) {
    assign o_data = 0;
}
module Top (i_clk: input clock) {
    var data: logic<8>;
    inst u0: Sub #(W: 8) (i_clk, o_data: data);
    inst u1: Sub #(WW: 8) (i_clk, o_dat: data);
}
`)
	bad := codes(a.diags, diag.SemaUnresolvedIdentifier)
	if len(bad) != 2 || len(a.diags) != 2 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.diags))
	}
	if !strings.Contains(bad[0].Message, "WW is undefined (not a parameter of Sub)") ||
		!strings.Contains(bad[1].Message, "o_dat is undefined (not a port of Sub)") {
		t.Fatalf("messages: %s", summary(bad))
	}
}

func TestCyclicInstantiation(t *testing.T) {
	a := analyze(t, `
module A { inst b: B; }
module B { inst a: A; }
`)
	bag := diag.NewBag(0)
	a.ctx.Dag.Sort(diag.BagReporter{Bag: bag})
	if len(codes(bag.Items(), diag.SemaCyclicTypeDependency)) != 2 {
		t.Fatalf("cycle diagnostics: %s", summary(bag.Items()))
	}
}

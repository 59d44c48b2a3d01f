package parser

import (
	"fmt"
	"strings"
	"testing"

	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/source"
	"veryl/internal/testkit"
	"veryl/internal/token"
)

func parseSnippet(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.veryl", []byte(src))
	bag := diag.NewBag(0)
	res := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckSpanInvariants(res.File, fs.Get(id)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return res.File, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

const counter = `
module Counter::<W: u32 = 8> #(
    param INIT: u32 = 0,
) (
    i_clk: input clock,
    #[default_reset]
    i_rst: input reset,
    o_cnt: output logic<W>,
) {
    var r_cnt: logic<W> [2];
    let next: logic<W> = r_cnt[0] + 1;
    assign o_cnt = r_cnt[0];

    always_ff (i_clk, i_rst) {
        if_reset {
            r_cnt[0] = INIT;
        } else if next == '1 {
            r_cnt[0] = 0;
        } else {
            r_cnt[0] += {1'b0, next[W - 1:1]};
        }
    }
}
`

func TestParseModule(t *testing.T) {
	f, bag := parseSnippet(t, counter)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	if len(f.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(f.Items))
	}
	m, ok := f.Items[0].(*ast.ModuleDecl)
	if !ok {
		t.Fatalf("expected module, got %T", f.Items[0])
	}
	if m.Name.Text() != "Counter" || len(m.Generics) != 1 || len(m.Params) != 1 || len(m.Ports) != 3 {
		t.Fatalf("header mismatch: %s generics=%d params=%d ports=%d", m.Name.Text(), len(m.Generics), len(m.Params), len(m.Ports))
	}
	if !ast.HasAttr(m.Ports[1].Attrs, "default_reset") {
		t.Fatal("attribute on i_rst lost")
	}
	if m.Ports[0].Type.Keyword != token.KwClock || m.Ports[0].Direction != ast.DirInput {
		t.Fatalf("i_clk type = %s", m.Ports[0].Type.Keyword)
	}
	v := m.Items[0].(*ast.VarDecl)
	if len(v.Type.Width) != 1 || len(v.Type.Array) != 1 {
		t.Fatalf("var type width=%d array=%d", len(v.Type.Width), len(v.Type.Array))
	}
	ff := m.Items[3].(*ast.AlwaysFFDecl)
	if ff.Event == nil || ff.Event.Reset == nil || ff.Event.Clock.Ident.String() != "i_clk" {
		t.Fatalf("event list mismatch: %+v", ff.Event)
	}
	ifr, ok := ff.Body.Stmts[0].(*ast.IfResetStmt)
	if !ok {
		t.Fatalf("first statement is %T", ff.Body.Stmts[0])
	}
	elif, ok := ifr.Else.(*ast.IfStmt)
	if !ok || elif.Else == nil {
		t.Fatalf("else-if chain lost: %T", ifr.Else)
	}
}

func TestParseAlwaysFFWithoutEvents(t *testing.T) {
	f, bag := parseSnippet(t, "module m (clk: input clock) { var a: logic; always_ff { a = 1; } }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	ff := f.Items[0].(*ast.ModuleDecl).Items[1].(*ast.AlwaysFFDecl)
	if ff.Event != nil {
		t.Fatal("event list must be nil")
	}
}

func TestParseHierIdent(t *testing.T) {
	f, bag := parseSnippet(t, "module m { assign a = pkg::C + u0.bus[1][0].data; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	as := f.Items[0].(*ast.ModuleDecl).Items[0].(*ast.AssignDecl)
	bin := as.Value.(*ast.Binary)
	left := bin.Left.(*ast.HierIdent)
	if len(left.Scope) != 1 || left.String() != "pkg::C" {
		t.Fatalf("scoped ident = %s", left)
	}
	right := bin.Right.(*ast.HierIdent)
	if len(right.Segments) != 3 || len(right.Segments[1].Selects) != 2 || right.Segments[1].Dot == nil {
		t.Fatalf("hier ident = %s", right)
	}
}

func TestParsePrecedence(t *testing.T) {
	f, bag := parseSnippet(t, "package p { local X: u32 = 1 + 2 * 3 == 7 && 1; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	prm := f.Items[0].(*ast.PackageDecl).Items[0].(*ast.ParamDecl)
	top := prm.Value.(*ast.Binary)
	if top.Op != token.AndAnd {
		t.Fatalf("top op = %s", top.Op)
	}
	eq := top.Left.(*ast.Binary)
	if eq.Op != token.EqEq {
		t.Fatalf("eq op = %s", eq.Op)
	}
	add := eq.Left.(*ast.Binary)
	if add.Op != token.Plus || add.Right.(*ast.Binary).Op != token.Star {
		t.Fatal("multiplication must bind tighter than addition")
	}
}

func TestParseInstAndIfExpr(t *testing.T) {
	src := `module top (clk: input clock) {
    var sel: logic;
    let y: logic<4> = if sel { 4'h1 } else { 4'h2 };
    inst u0: Sub #(W: 4) (clk, d: y);
}`
	f, bag := parseSnippet(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	m := f.Items[0].(*ast.ModuleDecl)
	if _, ok := m.Items[1].(*ast.LetDecl).Value.(*ast.IfExpr); !ok {
		t.Fatal("if expression not parsed")
	}
	inst := m.Items[2].(*ast.InstDecl)
	if inst.Component.String() != "Sub" || len(inst.Params) != 1 || len(inst.Ports) != 2 || inst.Ports[0].Value != nil {
		t.Fatalf("inst mismatch: %+v", inst)
	}
}

func TestParseRecovery(t *testing.T) {
	src := `module a {
    var x: ;
    var y: logic;
}
garbage
module b {}`
	f, bag := parseSnippet(t, src)
	if bag.Len() < 2 {
		t.Fatalf("expected at least two diagnostics, got %s", diagnosticsSummary(bag))
	}
	if len(f.Items) != 2 {
		t.Fatalf("expected both modules to survive, got %d items", len(f.Items))
	}
	if got := len(f.Items[0].(*ast.ModuleDecl).Items); got != 1 {
		t.Fatalf("expected y to survive in module a, got %d items", got)
	}
}

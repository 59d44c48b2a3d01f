package evaluator

import (
	"testing"

	"veryl/internal/ast"
	"veryl/internal/symbols"
	"veryl/internal/token"
)

func num(kind token.Kind, text string) *ast.Number {
	return &ast.Number{Tok: token.Token{Kind: kind, Text: text}}
}

func ident(names ...string) *ast.HierIdent {
	h := &ast.HierIdent{}
	for i, n := range names {
		seg := &ast.HierSegment{Name: &ast.Identifier{Tok: token.Token{Kind: token.Ident, Text: n, Loc: token.NewLocation(1, 1, uint32(i+1), 1)}}}
		if i > 0 {
			seg.Dot = &ast.Dot{}
		}
		h.Segments = append(h.Segments, seg)
	}
	return h
}

func bin(op token.Kind, l, r ast.Expr) *ast.Binary {
	return &ast.Binary{Op: op, Left: l, Right: r}
}

type fixture struct {
	table *symbols.Table
	scope symbols.ScopeID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	tab := symbols.NewTable(symbols.Hints{}, nil, "")
	col := uint32(100)
	decl := func(name string, kind symbols.SymbolKind, prop symbols.Property) *symbols.Decl {
		col++
		return &symbols.Decl{Name: name, Kind: kind, Location: token.NewLocation(1, 2, col, 1), Prop: prop}
	}
	top := decl("Top", symbols.SymbolModule, &symbols.ModuleProperty{})
	top.Children = []*symbols.Decl{
		decl("W", symbols.SymbolGeneric, &symbols.GenericProperty{}),
		decl("A", symbols.SymbolParameter, &symbols.ParameterProperty{Value: num(token.IntLit, "4")}),
		decl("B", symbols.SymbolParameter, &symbols.ParameterProperty{Value: bin(token.Star, ident("A"), num(token.IntLit, "2"))}),
		decl("C", symbols.SymbolParameter, &symbols.ParameterProperty{Value: ident("D")}),
		decl("D", symbols.SymbolParameter, &symbols.ParameterProperty{Value: ident("C")}),
		decl("E", symbols.SymbolParameter, &symbols.ParameterProperty{}),
		decl("a", symbols.SymbolVariable, &symbols.VariableProperty{Type: symbols.Type{Kind: symbols.TypeLogic}}),
	}
	if errs := tab.Commit(&symbols.Unit{File: 1, Decls: []*symbols.Decl{top}}); len(errs) != 0 {
		t.Fatalf("commit: %v", errs)
	}
	id, _ := tab.Lookup(tab.Root(), "Top")
	return fixture{table: tab, scope: tab.Get(id).Members()}
}

func TestExpressionKinds(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		expr ast.Expr
		kind Kind
	}{
		{"decimal", num(token.IntLit, "10"), Fixed},
		{"based", num(token.BasedLit, "8'hff"), Fixed},
		{"fill zero", num(token.AllBitLit, "'0"), Fixed},
		{"x fill", num(token.AllBitLit, "'x"), UnknownStatic},
		{"parameter chain", ident("B"), Fixed},
		{"generic", ident("W"), UnknownStatic},
		{"parameter without value", ident("E"), UnknownStatic},
		{"division by zero", bin(token.Slash, num(token.IntLit, "1"), num(token.IntLit, "0")), UnknownStatic},
		{"signal", ident("a"), Variable},
		{"signal plus constant", bin(token.Plus, ident("a"), num(token.IntLit, "1")), Variable},
		{"unresolved", ident("nope"), Unknown},
		{"unknown beats variable", bin(token.Plus, ident("a"), ident("nope")), Unknown},
		{"parameter cycle", ident("C"), Unknown},
		{"nil", nil, Unknown},
		{"sys call on constant", &ast.FuncCall{Sys: &token.Token{Text: "$bits"}, Args: []ast.Expr{num(token.IntLit, "3")}}, UnknownStatic},
	}
	for _, tc := range cases {
		ev := New(f.table, f.scope)
		if got := ev.Expression(tc.expr); got.Kind != tc.kind {
			t.Fatalf("%s: kind = %s, want %s", tc.name, got.Kind, tc.kind)
		}
	}
}

func TestFolding(t *testing.T) {
	f := newFixture(t)
	ev := New(f.table, f.scope)
	cases := []struct {
		name string
		expr ast.Expr
		want int64
	}{
		{"param", ident("B"), 8},
		{"shift", bin(token.Shl, num(token.IntLit, "1"), num(token.IntLit, "4")), 16},
		{"compare", bin(token.Lt, num(token.IntLit, "1"), num(token.IntLit, "4")), 1},
		{"if", &ast.IfExpr{
			Cond: num(token.IntLit, "0"),
			Then: &ast.BracedExpr{Value: num(token.IntLit, "5")},
			Else: &ast.BracedExpr{Value: num(token.IntLit, "7")},
		}, 7},
		{"concat", &ast.Concat{Items: []ast.Expr{num(token.BasedLit, "4'h1"), num(token.BasedLit, "4'h2")}}, 0x12},
		{"clog2", &ast.FuncCall{Sys: &token.Token{Text: "$clog2"}, Args: []ast.Expr{num(token.IntLit, "9")}}, 4},
		{"negate", &ast.Unary{Op: token.Minus, Operand: num(token.IntLit, "3")}, -3},
		{"wrap", bin(token.Plus, num(token.BasedLit, "8'hff"), num(token.BasedLit, "8'h01")), 0},
		{"negate sized", &ast.Unary{Op: token.Minus, Operand: num(token.BasedLit, "4'h1")}, 0xf},
		{"concat negated", &ast.Concat{Items: []ast.Expr{
			num(token.BasedLit, "4'h1"),
			&ast.Unary{Op: token.Minus, Operand: num(token.BasedLit, "4'h1")},
		}}, 0x1f},
	}
	for _, tc := range cases {
		got := ev.Expression(tc.expr)
		if got.Kind != Fixed || got.Value.Int64() != tc.want {
			t.Fatalf("%s: got %s %v, want %d", tc.name, got.Kind, got.Value, tc.want)
		}
	}
}

func TestVariableCarriesSymbol(t *testing.T) {
	f := newFixture(t)
	got := New(f.table, f.scope).Expression(bin(token.Plus, num(token.IntLit, "1"), ident("a")))
	if got.Kind != Variable || f.table.Name(got.Symbol) != "a" {
		t.Fatalf("got %+v", got)
	}
	if got.IsElaborative() {
		t.Fatal("variable must not be elaborative")
	}
	if !unknownStatic.IsElaborative() {
		t.Fatal("unknown-static must be elaborative")
	}
}

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		kind     token.Kind
		text     string
		invalid  bool
		overflow bool
	}{
		{token.BasedLit, "8'hff", false, false},
		{token.BasedLit, "4'hff", false, true},
		{token.BasedLit, "4'b1021", true, false},
		{token.BasedLit, "3'o17", false, true},
		{token.BasedLit, "8'hx0", false, false},
		{token.BasedLit, "'sd42", false, false},
		{token.BasedLit, "8'dxf", true, false},
		{token.IntLit, "1_000", false, false},
		{token.AllBitLit, "'1", false, false},
	}
	for _, tc := range cases {
		lit, err := ParseLiteral(token.Token{Kind: tc.kind, Text: tc.text})
		_, isDigit := err.(*InvalidDigitError)
		if isDigit != tc.invalid {
			t.Fatalf("%s: invalid digit = %v (%v), want %v", tc.text, isDigit, err, tc.invalid)
		}
		if err == nil && lit.Overflows() != tc.overflow {
			t.Fatalf("%s: overflow = %v, want %v", tc.text, lit.Overflows(), tc.overflow)
		}
	}
}

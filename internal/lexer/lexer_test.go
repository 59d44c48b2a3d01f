package lexer_test

import (
	"testing"

	"veryl/internal/diag"
	"veryl/internal/lexer"
	"veryl/internal/source"
	"veryl/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.veryl", []byte(src))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.Tokens(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexAlwaysFFHeader(t *testing.T) {
	toks, bag := lexAll(t, "always_ff (i_clk, i_rst) { if_reset { a = '0; } }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{
		token.KwAlwaysFF, token.LParen, token.Ident, token.Comma, token.Ident, token.RParen,
		token.LBrace, token.KwIfReset, token.LBrace, token.Ident, token.Assign, token.AllBitLit,
		token.Semicolon, token.RBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"1_000", token.IntLit},
		{"8'hff", token.BasedLit},
		{"4'sb1010", token.BasedLit},
		{"'d3", token.BasedLit},
		{"'1", token.AllBitLit},
		{"8'x", token.AllBitLit},
		{"4'b102", token.BasedLit}, // цифры проверяет анализатор
	}
	for _, tc := range cases {
		toks, bag := lexAll(t, tc.src)
		if toks[0].Kind != tc.kind || toks[0].Text != tc.src {
			t.Errorf("%q: got %s %q", tc.src, toks[0].Kind, toks[0].Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %+v", tc.src, bag.Items())
		}
	}
}

func TestLexGreedyOperators(t *testing.T) {
	toks, _ := lexAll(t, "a <<= b >>> c :: d != e")
	want := []token.Kind{token.Ident, token.ShlAssign, token.Ident, token.AShr, token.Ident,
		token.ColonColon, token.Ident, token.BangEq, token.Ident, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexLocations(t *testing.T) {
	toks, _ := lexAll(t, "module m {\n  var clk: clock;\n}")
	var clk token.Token
	for _, tok := range toks {
		if tok.Text == "clk" {
			clk = tok
		}
	}
	want := token.NewLocation(clk.Span.File, 2, 7, 3)
	if clk.Location() != want {
		t.Fatalf("location = %v, want %v", clk.Location(), want)
	}
}

func TestLexTriviaAndErrors(t *testing.T) {
	toks, bag := lexAll(t, "// head\n/* block */ a ` b /* open")
	if toks[0].Kind != token.Ident || len(toks[0].Leading) != 4 {
		t.Fatalf("leading trivia = %+v", toks[0].Leading)
	}
	if toks[1].Kind != token.Invalid {
		t.Fatalf("expected Invalid for backtick, got %s", toks[1].Kind)
	}
	codes := map[diag.Code]bool{}
	for _, d := range bag.Items() {
		codes[d.Code] = true
	}
	if !codes[diag.LexUnknownChar] || !codes[diag.LexUnterminatedBlockComment] {
		t.Fatalf("missing lexer diagnostics: %+v", bag.Items())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.veryl", []byte("a b"))), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
}

package walker

import (
	"fmt"
	"strings"
	"testing"

	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/parser"
	"veryl/internal/source"
)

func parseSnippet(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	res := parser.ParseFile(fs.Get(fs.AddVirtual("w.veryl", []byte(src))), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	return res.File
}

type recorder struct {
	events []string
}

func (r *recorder) Handle(p Point, n ast.Node) {
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
	if b, ok := n.(*ast.Brace); ok {
		if b.Open {
			name = "{"
		} else {
			name = "}"
		}
	}
	r.events = append(r.events, p.String()+":"+name)
}

func TestWalkBeforeChildrenAfter(t *testing.T) {
	f := parseSnippet(t, "module m { always_ff (c) { if_reset { a = 1; } } }")
	rec := &recorder{}
	Walk(f, rec)

	// Каждый Before закрывается своим After в стековом порядке.
	var stack []string
	for _, ev := range rec.events {
		point, name, _ := strings.Cut(ev, ":")
		if point == "before" {
			stack = append(stack, name)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != name {
			t.Fatalf("unbalanced event %s, stack %v", ev, stack)
		}
		stack = stack[:len(stack)-1]
	}
	if len(stack) != 0 {
		t.Fatalf("unclosed nodes: %v", stack)
	}

	var braces []string
	for _, ev := range rec.events {
		if ev == "before:{" || ev == "before:}" {
			braces = append(braces, strings.TrimPrefix(ev, "before:"))
		}
	}
	if got := strings.Join(braces, ""); got != "{{{}}}" {
		t.Fatalf("brace order = %s", got)
	}
	if rec.events[0] != "before:File" || rec.events[len(rec.events)-1] != "after:File" {
		t.Fatalf("root events: %s ... %s", rec.events[0], rec.events[len(rec.events)-1])
	}
}

func TestWalkHandlersInRegistrationOrder(t *testing.T) {
	f := parseSnippet(t, "package p { local X: u32 = 1; }")
	var log []string
	first := HandlerFunc(func(p Point, n ast.Node) {
		if _, ok := n.(*ast.ParamDecl); ok {
			log = append(log, "first:"+p.String())
		}
	})
	second := HandlerFunc(func(p Point, n ast.Node) {
		if _, ok := n.(*ast.ParamDecl); ok {
			log = append(log, "second:"+p.String())
		}
	})
	Walk(f, first, second)
	want := "first:before second:before first:after second:after"
	if got := strings.Join(log, " "); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWalkHierIdentOrder(t *testing.T) {
	f := parseSnippet(t, "module m { assign x = a[0].b[1][2]; }")
	rec := &recorder{}
	Walk(f, rec)
	var seq []string
	for _, ev := range rec.events {
		switch ev {
		case "before:Identifier", "before:Dot", "before:Select":
			seq = append(seq, strings.TrimPrefix(ev, "before:"))
		}
	}
	want := "Identifier Identifier Identifier Select Dot Identifier Select Select" // m, x, a[0].b[1][2]
	if got := strings.Join(seq, " "); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

type countingReporter struct {
	HandlerFunc
	n int
}

func (c *countingReporter) Diagnostics() []diag.Diagnostic {
	return make([]diag.Diagnostic, c.n)
}

func TestCollect(t *testing.T) {
	a := &countingReporter{HandlerFunc: func(Point, ast.Node) {}, n: 2}
	b := HandlerFunc(func(Point, ast.Node) {})
	if got := len(Collect(a, b, a)); got != 4 {
		t.Fatalf("Collect = %d, want 4", got)
	}
}

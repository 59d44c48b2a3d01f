// Package walker drives rule handlers over a syntax tree.
//
// Walk visits every node depth-first in source order. For each node N every
// registered handler receives Handle(Before, N), then the children of N are
// walked, then every handler receives Handle(After, N). Handlers see events in
// registration order and never call each other; any state they need to share
// lives in the symbol table or in their own fields.
package walker

import (
	"fmt"

	"veryl/internal/ast"
	"veryl/internal/diag"
)

// Point says on which side of a node's children an event fires.
type Point uint8

const (
	Before Point = iota
	After
)

func (p Point) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Handler reacts to walker events. Handlers ignore node kinds they do not care about.
type Handler interface {
	Handle(p Point, n ast.Node)
}

// Reporting is implemented by handlers that accumulate diagnostics.
type Reporting interface {
	Diagnostics() []diag.Diagnostic
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(p Point, n ast.Node)

func (f HandlerFunc) Handle(p Point, n ast.Node) { f(p, n) }

// Walk walks root with hs.
func Walk(root ast.Node, hs ...Handler) {
	w := walker{hs: hs}
	w.node(root)
}

// Collect gathers diagnostics of every Reporting handler in hs, in order.
func Collect(hs ...Handler) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, h := range hs {
		if r, ok := h.(Reporting); ok {
			out = append(out, r.Diagnostics()...)
		}
	}
	return out
}

type walker struct {
	hs []Handler
}

func (w *walker) emit(p Point, n ast.Node) {
	for _, h := range w.hs {
		h.Handle(p, n)
	}
}

func (w *walker) node(n ast.Node) {
	w.emit(Before, n)
	w.children(n)
	w.emit(After, n)
}

func (w *walker) brace(b *ast.Brace) {
	if b != nil {
		w.node(b)
	}
}

func (w *walker) ident(id *ast.Identifier) {
	if id != nil {
		w.node(id)
	}
}

func (w *walker) typ(t *ast.TypeExpr) {
	if t != nil {
		w.node(t)
	}
}

func (w *walker) expr(e ast.Expr) {
	if e != nil {
		w.node(e)
	}
}

func (w *walker) exprs(es []ast.Expr) {
	for _, e := range es {
		w.expr(e)
	}
}

func (w *walker) attrs(as []*ast.Attribute) {
	for _, a := range as {
		w.node(a)
	}
}

func (w *walker) items(items []ast.Item) {
	for _, it := range items {
		w.node(it)
	}
}

func (w *walker) block(b *ast.Block) {
	if b != nil {
		w.node(b)
	}
}

func (w *walker) children(n ast.Node) {
	switch n := n.(type) {
	case *ast.File:
		w.items(n.Items)
	case *ast.ModuleDecl:
		w.attrs(n.Attrs)
		w.ident(n.Name)
		for _, g := range n.Generics {
			w.node(g)
		}
		for _, p := range n.Params {
			w.node(p)
		}
		for _, p := range n.Ports {
			w.node(p)
		}
		w.brace(n.LBrace)
		w.items(n.Items)
		w.brace(n.RBrace)
	case *ast.InterfaceDecl:
		w.attrs(n.Attrs)
		w.ident(n.Name)
		for _, g := range n.Generics {
			w.node(g)
		}
		for _, p := range n.Params {
			w.node(p)
		}
		w.brace(n.LBrace)
		w.items(n.Items)
		w.brace(n.RBrace)
	case *ast.PackageDecl:
		w.attrs(n.Attrs)
		w.ident(n.Name)
		w.brace(n.LBrace)
		w.items(n.Items)
		w.brace(n.RBrace)
	case *ast.Attribute:
		w.ident(n.Name)
		for _, a := range n.Args {
			w.ident(a)
		}
	case *ast.GenericParam:
		w.ident(n.Name)
		w.typ(n.Type)
		w.expr(n.Default)
	case *ast.ParamDecl:
		w.ident(n.Name)
		w.typ(n.Type)
		w.expr(n.Value)
	case *ast.PortDecl:
		w.attrs(n.Attrs)
		w.ident(n.Name)
		w.typ(n.Type)
	case *ast.VarDecl:
		w.attrs(n.Attrs)
		w.ident(n.Name)
		w.typ(n.Type)
	case *ast.LetDecl:
		w.attrs(n.Attrs)
		w.ident(n.Name)
		w.typ(n.Type)
		w.expr(n.Value)
	case *ast.InstDecl:
		w.ident(n.Name)
		if n.Component != nil {
			w.node(n.Component)
		}
		for _, a := range n.Params {
			w.node(a)
		}
		for _, a := range n.Ports {
			w.node(a)
		}
	case *ast.InstArg:
		w.ident(n.Name)
		w.expr(n.Value)
	case *ast.AssignDecl:
		if n.Target != nil {
			w.node(n.Target)
		}
		w.expr(n.Value)
	case *ast.AlwaysFFDecl:
		if n.Event != nil {
			w.node(n.Event)
		}
		w.block(n.Body)
	case *ast.EventList:
		if n.Clock != nil {
			w.node(n.Clock)
		}
		if n.Reset != nil {
			w.node(n.Reset)
		}
	case *ast.AlwaysFFClock:
		if n.Ident != nil {
			w.node(n.Ident)
		}
	case *ast.AlwaysFFReset:
		if n.Ident != nil {
			w.node(n.Ident)
		}
	case *ast.AlwaysCombDecl:
		w.block(n.Body)
	case *ast.Block:
		w.brace(n.LBrace)
		for _, s := range n.Stmts {
			w.node(s)
		}
		w.brace(n.RBrace)
	case *ast.AssignStmt:
		if n.Target != nil {
			w.node(n.Target)
		}
		w.expr(n.Value)
	case *ast.IfStmt:
		w.expr(n.Cond)
		w.block(n.Then)
		if n.Else != nil {
			w.node(n.Else)
		}
	case *ast.IfResetStmt:
		w.block(n.Then)
		if n.Else != nil {
			w.node(n.Else)
		}
	case *ast.HierIdent:
		for _, id := range n.Scope {
			w.ident(id)
		}
		for _, seg := range n.Segments {
			if seg.Dot != nil {
				w.node(seg.Dot)
			}
			w.ident(seg.Name)
			for _, sel := range seg.Selects {
				w.node(sel)
			}
		}
	case *ast.Select:
		w.expr(n.Index)
		w.expr(n.Lsb)
	case *ast.TypeExpr:
		if n.User != nil {
			w.node(n.User)
		}
		w.exprs(n.Width)
		w.exprs(n.Array)
	case *ast.Binary:
		w.expr(n.Left)
		w.expr(n.Right)
	case *ast.Unary:
		w.expr(n.Operand)
	case *ast.Paren:
		w.expr(n.Inner)
	case *ast.IfExpr:
		w.expr(n.Cond)
		if n.Then != nil {
			w.node(n.Then)
		}
		w.expr(n.Else)
	case *ast.BracedExpr:
		w.brace(n.LBrace)
		w.expr(n.Value)
		w.brace(n.RBrace)
	case *ast.Concat:
		w.brace(n.LBrace)
		w.exprs(n.Items)
		w.brace(n.RBrace)
	case *ast.FuncCall:
		if n.Path != nil {
			w.node(n.Path)
		}
		w.exprs(n.Args)
	case *ast.Brace, *ast.Dot, *ast.Identifier, *ast.Number:
		// листья
	default:
		panic(fmt.Sprintf("walker: unhandled node %T", n))
	}
}

package ast

import (
	"veryl/internal/source"
	"veryl/internal/token"
)

// Node is any syntax tree node. The set of node types is closed: every
// implementation lives in this package and the walker switches over all of them.
type Node interface {
	Span() source.Span
	node()
}

// Item is a top-level or module-level declaration.
type Item interface {
	Node
	itemNode()
}

// Stmt is a statement inside always_ff / always_comb blocks.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Pos carries the span of a node.
type Pos struct {
	Sp source.Span
}

func (p Pos) Span() source.Span { return p.Sp }
func (Pos) node()               {}

// Brace is a single '{' or '}' token. Every brace of the source is a
// distinct node, visited in source order.
type Brace struct {
	Pos
	Open bool
}

// Dot is the '.' member separator inside a hierarchical identifier.
type Dot struct {
	Pos
}

// Identifier wraps a single identifier token.
type Identifier struct {
	Pos
	Tok token.Token
}

func (id *Identifier) Text() string { return id.Tok.Text }

func (id *Identifier) Location() token.Location { return id.Tok.Loc }

// Attribute is #[name] or #[name(arg, ...)].
type Attribute struct {
	Pos
	Name *Identifier
	Args []*Identifier
}

// HasAttr reports whether attrs contains an attribute named name.
func HasAttr(attrs []*Attribute, name string) bool {
	for _, a := range attrs {
		if a.Name != nil && a.Name.Text() == name {
			return true
		}
	}
	return false
}

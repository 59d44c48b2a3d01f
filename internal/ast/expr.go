package ast

import (
	"strings"

	"veryl/internal/token"
)

// HierIdent is a scoped and hierarchical identifier:
//
//	pkg::Name        Scope=[pkg], Segments=[Name]
//	u0.o_data[1][0]  Segments=[u0, o_data(2 selects)]
type HierIdent struct {
	Pos
	Scope    []*Identifier
	Segments []*HierSegment
}

// HierSegment is one '.'-separated element with its selects.
type HierSegment struct {
	Dot     *Dot // nil for the first segment
	Name    *Identifier
	Selects []*Select
}

// Select is [index] or [msb:lsb].
type Select struct {
	Pos
	Index Expr
	Lsb   Expr // nil unless a range select
}

// First returns the leading identifier (the scope root if present).
func (h *HierIdent) First() *Identifier {
	if len(h.Scope) > 0 {
		return h.Scope[0]
	}
	return h.Segments[0].Name
}

// Names flattens scope and segment names in order.
func (h *HierIdent) Names() []string {
	out := make([]string, 0, len(h.Scope)+len(h.Segments))
	for _, id := range h.Scope {
		out = append(out, id.Text())
	}
	for _, seg := range h.Segments {
		out = append(out, seg.Name.Text())
	}
	return out
}

// SelectCount returns the number of selects on the last segment.
func (h *HierIdent) SelectCount() int {
	return len(h.Segments[len(h.Segments)-1].Selects)
}

func (h *HierIdent) String() string {
	var b strings.Builder
	for _, id := range h.Scope {
		b.WriteString(id.Text())
		b.WriteString("::")
	}
	for i, seg := range h.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Name.Text())
		for range seg.Selects {
			b.WriteString("[]")
		}
	}
	return b.String()
}

// Number is an integer, based or fill literal.
type Number struct {
	Pos
	Tok token.Token
}

type Binary struct {
	Pos
	Op    token.Kind
	Left  Expr
	Right Expr
}

type Unary struct {
	Pos
	Op      token.Kind
	Operand Expr
}

type Paren struct {
	Pos
	Inner Expr
}

// IfExpr: if cond { a } else { b }; Else is *IfExpr or *BracedExpr.
type IfExpr struct {
	Pos
	Cond Expr
	Then *BracedExpr
	Else Expr
}

// BracedExpr is { expr } inside an if expression.
type BracedExpr struct {
	Pos
	LBrace *Brace
	Value  Expr
	RBrace *Brace
}

// Concat: { a, b, ... }
type Concat struct {
	Pos
	LBrace *Brace
	Items  []Expr
	RBrace *Brace
}

// FuncCall covers system calls ($clog2(x)) and package functions (pkg::f(x)).
type FuncCall struct {
	Pos
	Sys  *token.Token // set for $name calls
	Path *HierIdent   // set otherwise
	Args []Expr
}

// Name returns the callee text.
func (c *FuncCall) Name() string {
	if c.Sys != nil {
		return c.Sys.Text
	}
	return c.Path.String()
}

func (*HierIdent) exprNode()  {}
func (*Number) exprNode()     {}
func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Paren) exprNode()      {}
func (*IfExpr) exprNode()     {}
func (*BracedExpr) exprNode() {}
func (*Concat) exprNode()     {}
func (*FuncCall) exprNode()   {}

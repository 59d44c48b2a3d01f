package ast

import "veryl/internal/token"

// TypeExpr: builtin<width, ...> [array, ...] or a user-defined type path.
type TypeExpr struct {
	Pos
	Keyword token.Kind // token.Invalid for user-defined types
	User    *HierIdent
	Width   []Expr
	Array   []Expr
}

func (t *TypeExpr) IsUser() bool { return t.User != nil }

package ast

import "veryl/internal/token"

// Block is { stmts }.
type Block struct {
	Pos
	LBrace *Brace
	Stmts  []Stmt
	RBrace *Brace
}

// AssignStmt: target op value;
type AssignStmt struct {
	Pos
	Target *HierIdent
	Op     token.Kind
	Value  Expr
}

// IfStmt: if cond { ... } [else if ... | else { ... }]
type IfStmt struct {
	Pos
	Cond Expr
	Then *Block
	Else Stmt // nil, *IfStmt or *Block
}

// IfResetStmt: if_reset { ... } [else if ... | else { ... }]
type IfResetStmt struct {
	Pos
	Then *Block
	Else Stmt
}

func (*Block) stmtNode()       {}
func (*AssignStmt) stmtNode()  {}
func (*IfStmt) stmtNode()      {}
func (*IfResetStmt) stmtNode() {}

package ast

import "veryl/internal/token"

// Direction of a port.
type Direction uint8

const (
	DirInput Direction = iota
	DirOutput
	DirInout
)

func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	default:
		return "inout"
	}
}

// GenericParam is one entry of ::<...>; IsType marks "T: type".
type GenericParam struct {
	Pos
	Name    *Identifier
	IsType  bool
	Type    *TypeExpr
	Default Expr
}

// ParamDecl covers param/local both in #( ... ) headers and as items.
type ParamDecl struct {
	Pos
	Local bool
	Name  *Identifier
	Type  *TypeExpr
	Value Expr
}

type PortDecl struct {
	Pos
	Attrs     []*Attribute
	Name      *Identifier
	Direction Direction
	Type      *TypeExpr
}

type VarDecl struct {
	Pos
	Attrs []*Attribute
	Name  *Identifier
	Type  *TypeExpr
}

// LetDecl: let name: type = value; (declaration plus continuous assignment).
type LetDecl struct {
	Pos
	Attrs []*Attribute
	Name  *Identifier
	Type  *TypeExpr
	Value Expr
}

// InstDecl: inst name: Component #( args ) ( args );
type InstDecl struct {
	Pos
	Name      *Identifier
	Component *HierIdent
	Params    []*InstArg
	Ports     []*InstArg
}

// InstArg is "name" or "name: expr" in an instance connection list.
type InstArg struct {
	Pos
	Name  *Identifier
	Value Expr // nil: connect to the same-named signal
}

// AssignDecl: assign target op value;
type AssignDecl struct {
	Pos
	Target *HierIdent
	Op     token.Kind
	Value  Expr
}

// AlwaysFFDecl: always_ff [(clock[, reset])] { ... }
type AlwaysFFDecl struct {
	Pos
	Event *EventList // nil when the event list is omitted
	Body  *Block
}

type EventList struct {
	Pos
	Clock *AlwaysFFClock
	Reset *AlwaysFFReset // nil when absent
}

type AlwaysFFClock struct {
	Pos
	Ident *HierIdent
}

type AlwaysFFReset struct {
	Pos
	Ident *HierIdent
}

type AlwaysCombDecl struct {
	Pos
	Body *Block
}

func (*ParamDecl) itemNode()      {}
func (*PortDecl) itemNode()       {}
func (*VarDecl) itemNode()        {}
func (*LetDecl) itemNode()        {}
func (*InstDecl) itemNode()       {}
func (*AssignDecl) itemNode()     {}
func (*AlwaysFFDecl) itemNode()   {}
func (*AlwaysCombDecl) itemNode() {}

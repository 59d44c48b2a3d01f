package symbols

import (
	"veryl/internal/ast"
	"veryl/internal/token"
)

// TypeKind is the base kind of a signal or parameter type.
type TypeKind uint8

const (
	TypeLogic TypeKind = iota
	TypeBit
	TypeU32
	TypeU64
	TypeI32
	TypeI64
	TypeClock
	TypeClockPosedge
	TypeClockNegedge
	TypeReset
	TypeResetAsyncHigh
	TypeResetAsyncLow
	TypeResetSyncHigh
	TypeResetSyncLow
	TypeUserDefined
	TypeGeneric // type generic parameter of the enclosing component
)

var typeKindNames = [...]string{
	TypeLogic:          "logic",
	TypeBit:            "bit",
	TypeU32:            "u32",
	TypeU64:            "u64",
	TypeI32:            "i32",
	TypeI64:            "i64",
	TypeClock:          "clock",
	TypeClockPosedge:   "clock_posedge",
	TypeClockNegedge:   "clock_negedge",
	TypeReset:          "reset",
	TypeResetAsyncHigh: "reset_async_high",
	TypeResetAsyncLow:  "reset_async_low",
	TypeResetSyncHigh:  "reset_sync_high",
	TypeResetSyncLow:   "reset_sync_low",
	TypeUserDefined:    "user",
	TypeGeneric:        "generic",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "invalid"
}

// Type is the declared type of a port, variable or parameter. Width and
// Array keep the declared expressions; only their count matters for select
// checks, values are computed by the evaluator on demand.
type Type struct {
	Kind  TypeKind
	Width []ast.Expr
	Array []ast.Expr
	User  *Path // for TypeUserDefined and TypeGeneric
}

// SelectorCount is the number of index selects that reduce the type to a
// single bit: one per width dimension plus one per array dimension.
func (t *Type) SelectorCount() int {
	return len(t.Width) + len(t.Array)
}

var clockKinds = []TypeKind{TypeClock, TypeClockPosedge, TypeClockNegedge}

var resetKinds = []TypeKind{TypeReset, TypeResetAsyncHigh, TypeResetAsyncLow, TypeResetSyncHigh, TypeResetSyncLow}

func (t *Type) IsClock() bool { return t.hasKind(clockKinds) }

func (t *Type) IsReset() bool { return t.hasKind(resetKinds) }

func (t *Type) hasKind(kinds []TypeKind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// ValidClock reports whether a reference to t with used selects denotes a
// single clock bit.
func ValidClock(t *Type, used int) bool {
	return validSignal(clockKinds, t, used)
}

// ValidReset is ValidClock for reset kinds.
func ValidReset(t *Type, used int) bool {
	return validSignal(resetKinds, t, used)
}

// validSignal requires the kind to match and every dimension to be selected
// exactly once: no partial selection and no over-indexing.
func validSignal(kinds []TypeKind, t *Type, used int) bool {
	return t != nil && t.hasKind(kinds) && used == t.SelectorCount()
}

var keywordKinds = map[token.Kind]TypeKind{
	token.KwLogic:        TypeLogic,
	token.KwBit:          TypeBit,
	token.KwU32:          TypeU32,
	token.KwU64:          TypeU64,
	token.KwI32:          TypeI32,
	token.KwI64:          TypeI64,
	token.KwClock:        TypeClock,
	token.KwClockPosedge: TypeClockPosedge,
	token.KwClockNegedge: TypeClockNegedge,
	token.KwReset:        TypeReset,
	token.KwResetAH:      TypeResetAsyncHigh,
	token.KwResetAL:      TypeResetAsyncLow,
	token.KwResetSH:      TypeResetSyncHigh,
	token.KwResetSL:      TypeResetSyncLow,
}

// TypeFromAST converts a parsed type. isGeneric tells whether a user type
// name refers to a type generic parameter in scope.
func TypeFromAST(te *ast.TypeExpr, isGeneric func(name string) bool) Type {
	t := Type{Width: te.Width, Array: te.Array}
	if te.User == nil {
		t.Kind = keywordKinds[te.Keyword]
		return t
	}
	p := PathOf(te.User)
	t.User = &p
	t.Kind = TypeUserDefined
	if len(p.Segments) == 1 && isGeneric != nil && isGeneric(p.Segments[0].Name) {
		t.Kind = TypeGeneric
	}
	return t
}

func (t *Type) String() string {
	s := t.Kind.String()
	if t.User != nil {
		s = t.User.String()
	}
	if len(t.Width) > 0 {
		s += "<" + dims(len(t.Width)) + ">"
	}
	if len(t.Array) > 0 {
		s += " [" + dims(len(t.Array)) + "]"
	}
	return s
}

func dims(n int) string {
	s := "_"
	for i := 1; i < n; i++ {
		s += ", _"
	}
	return s
}

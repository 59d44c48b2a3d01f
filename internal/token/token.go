package token

import (
	"veryl/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Loc     Location
	Text    string
	Leading []Trivia
}

// Location returns the token's line/column location.
func (t Token) Location() Location {
	return t.Loc
}

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, BasedLit, AllBitLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwModule && t.Kind <= KwResetSL
}

// IsTypeKeyword reports whether the token starts a builtin type.
func (t Token) IsTypeKeyword() bool {
	return t.Kind >= KwLogic && t.Kind <= KwResetSL
}

// IsAssignOp reports whether the token is '=' or a compound assignment.
func (t Token) IsAssignOp() bool {
	return t.Kind >= Assign && t.Kind <= ShrAssign
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

package symbols

import (
	"fmt"

	"veryl/internal/source"
	"veryl/internal/token"
)

// UnresolvedIdentifierError reports the first path segment that could not be found.
type UnresolvedIdentifierError struct {
	Name     string
	Path     string
	Location token.Location
	Span     source.Span
	Reason   string
	// Opaque is set when the lookup stepped into a generic parameter, whose
	// members are only known after instantiation.
	Opaque bool
}

func (e *UnresolvedIdentifierError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is undefined (%s)", e.Name, e.Reason)
	}
	return fmt.Sprintf("%s is undefined", e.Name)
}

// DuplicateDeclarationError reports a name already bound in the same scope.
type DuplicateDeclarationError struct {
	Name         string
	Location     token.Location
	Span         source.Span
	Previous     SymbolID
	PreviousSpan source.Span
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%s is duplicated", e.Name)
}

package diag

import (
	"veryl/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is an immutable finding; producers append, nobody edits.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Category is a shortcut for d.Code.Category().
func (d Diagnostic) Category() Category {
	return d.Code.Category()
}

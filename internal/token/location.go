package token

import (
	"fmt"

	"veryl/internal/source"
)

// Location identifies a token occurrence. Two locations are equal only when
// every field matches, including the duplication index assigned to tokens
// copied by generic expansion, so Location can be used as a map key.
type Location struct {
	File   source.FileID
	Line   uint32
	Column uint32
	Length uint32
	dup    uint32 // 0 = оригинал, иначе индекс копии + 1
}

// NewLocation builds an original (non-duplicated) location.
func NewLocation(file source.FileID, line, column, length uint32) Location {
	return Location{File: file, Line: line, Column: column, Length: length}
}

// Duplicated returns the duplication index, if the token is a copy.
func (l Location) Duplicated() (uint32, bool) {
	if l.dup == 0 {
		return 0, false
	}
	return l.dup - 1, true
}

// WithDuplicate returns a copy of l marked as the i-th duplicate.
func (l Location) WithDuplicate(i uint32) Location {
	l.dup = i + 1
	return l
}

func (l Location) String() string {
	if i, ok := l.Duplicated(); ok {
		return fmt.Sprintf("%d:%d:%d#%d", l.File, l.Line, l.Column, i)
	}
	return fmt.Sprintf("%d:%d:%d", l.File, l.Line, l.Column)
}

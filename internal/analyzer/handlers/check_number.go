package handlers

import (
	"errors"

	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/evaluator"
	"veryl/internal/walker"
)

// CheckNumber validates digits and widths of number literals.
type CheckNumber struct {
	base
}

func NewCheckNumber() *CheckNumber { return &CheckNumber{base: newBase()} }

func (h *CheckNumber) Handle(p walker.Point, n ast.Node) {
	num, ok := n.(*ast.Number)
	if !ok || p != walker.Before {
		return
	}
	lit, err := evaluator.ParseLiteral(num.Tok)
	var bad *evaluator.InvalidDigitError
	switch {
	case errors.As(err, &bad):
		h.report(diag.SemaInvalidNumberCharacter, num.Sp, "%s is not allowed in a base-%d literal %s", string(bad.Digit), bad.Base, num.Tok.Text).Emit()
	case err != nil:
		h.report(diag.SemaInvalidNumberCharacter, num.Sp, "%v", err).Emit()
	case lit.Overflows():
		h.report(diag.SemaTooLargeNumber, num.Sp, "%s does not fit in %d bits", num.Tok.Text, lit.Width).Emit()
	}
}

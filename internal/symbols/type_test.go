package symbols

import (
	"testing"

	"veryl/internal/ast"
)

func TestValidClockResetSelectors(t *testing.T) {
	scalar := &Type{Kind: TypeClock}
	vec := &Type{Kind: TypeResetSyncHigh, Width: make([]ast.Expr, 1), Array: make([]ast.Expr, 1)}
	logic := &Type{Kind: TypeLogic}

	cases := []struct {
		name  string
		fn    func(*Type, int) bool
		ty    *Type
		used  int
		valid bool
	}{
		{"scalar clock", ValidClock, scalar, 0, true},
		{"over-indexed clock", ValidClock, scalar, 1, false},
		{"full reset select", ValidReset, vec, 2, true},
		{"partial reset select", ValidReset, vec, 1, false},
		{"reset is not clock", ValidClock, vec, 2, false},
		{"logic", ValidClock, logic, 0, false},
		{"nil", ValidReset, nil, 0, false},
	}
	for _, tc := range cases {
		if got := tc.fn(tc.ty, tc.used); got != tc.valid {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.valid)
		}
	}
	if vec.SelectorCount() != 2 {
		t.Fatalf("selector count = %d", vec.SelectorCount())
	}
}

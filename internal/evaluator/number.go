package evaluator

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"veryl/internal/token"
)

// Literal is a decoded number token.
type Literal struct {
	Width  int // 0 for unsized literals
	Signed bool
	Base   int
	Digits string // without '_' separators
	Value  *big.Int
	XZ     bool // contains x/z digits; Value is nil
	Fill   bool // '0 '1 'x 'z
}

// InvalidDigitError reports a digit not allowed by the base of a literal.
type InvalidDigitError struct {
	Digit byte
	Base  int
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("'%c' is not a valid base-%d digit", e.Digit, e.Base)
}

// ParseLiteral decodes IntLit, BasedLit and AllBitLit tokens. Width overflow
// is not an error here; see Literal.Overflows.
func ParseLiteral(tok token.Token) (Literal, error) {
	text := strings.ReplaceAll(tok.Text, "_", "")
	switch tok.Kind {
	case token.IntLit:
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Literal{}, fmt.Errorf("malformed integer %q", tok.Text)
		}
		return Literal{Base: 10, Digits: text, Value: v}, nil
	case token.AllBitLit, token.BasedLit:
	default:
		return Literal{}, fmt.Errorf("%s is not a number", tok.Kind)
	}

	tick := strings.IndexByte(text, '\'')
	lit := Literal{}
	if tick > 0 {
		w, err := strconv.Atoi(text[:tick])
		if err != nil {
			return Literal{}, fmt.Errorf("malformed width %q: %w", text[:tick], err)
		}
		lit.Width = w
	}
	rest := text[tick+1:]

	if tok.Kind == token.AllBitLit {
		lit.Fill = true
		lit.Base = 2
		lit.Digits = rest
		switch rest {
		case "0":
			lit.Value = new(big.Int)
		case "1":
			lit.Value = fillOnes(lit.Width)
		default:
			lit.XZ = true
		}
		return lit, nil
	}

	if rest != "" && (rest[0] == 's' || rest[0] == 'S') {
		lit.Signed = true
		rest = rest[1:]
	}
	if rest == "" {
		return Literal{}, fmt.Errorf("missing base in %q", tok.Text)
	}
	switch rest[0] {
	case 'b', 'B':
		lit.Base = 2
	case 'o', 'O':
		lit.Base = 8
	case 'd', 'D':
		lit.Base = 10
	case 'h', 'H':
		lit.Base = 16
	default:
		return Literal{}, fmt.Errorf("unknown base %q", rest[0])
	}
	lit.Digits = rest[1:]
	for i := 0; i < len(lit.Digits); i++ {
		c := lit.Digits[i]
		if isXZ(c) && lit.Base != 10 {
			lit.XZ = true
			continue
		}
		if digitValue(c) >= lit.Base {
			return lit, &InvalidDigitError{Digit: c, Base: lit.Base}
		}
	}
	if lit.XZ || lit.Digits == "" {
		return lit, nil
	}
	v, ok := new(big.Int).SetString(lit.Digits, lit.Base)
	if !ok {
		return lit, fmt.Errorf("malformed literal %q", tok.Text)
	}
	lit.Value = v
	return lit, nil
}

// Overflows reports whether a sized literal needs more bits than its width.
func (l Literal) Overflows() bool {
	if l.Width == 0 || l.Fill {
		return false
	}
	if l.XZ {
		bitsPerDigit := map[int]int{2: 1, 8: 3, 16: 4}[l.Base]
		return len(strings.TrimLeft(l.Digits, "0"))*bitsPerDigit > l.Width
	}
	return l.Value != nil && l.Value.BitLen() > l.Width
}

func fillOnes(width int) *big.Int {
	if width == 0 {
		width = 1
	}
	v := new(big.Int).Lsh(big.NewInt(1), uint(width)) // #nosec G115 -- width is a parsed non-negative literal
	return v.Sub(v, big.NewInt(1))
}

func isXZ(c byte) bool {
	return c == 'x' || c == 'X' || c == 'z' || c == 'Z'
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 99
}

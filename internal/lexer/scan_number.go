package lexer

import (
	"veryl/internal/diag"
	"veryl/internal/token"
)

// scanNumber handles:
//
//	42, 1_000            -> IntLit
//	8'hff, 4'sb1010, 'd3 -> BasedLit
//	'0, '1, 8'x          -> AllBitLit
//
// Digits after the base are consumed greedily ([0-9A-Za-z_]); checking them
// against the base is left to the analyzer so that the whole literal gets
// one precise diagnostic.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() != '\'' {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
	}

	tick := lx.cursor.Mark()
	lx.cursor.Bump() // '
	b := lx.cursor.Peek()
	switch {
	case b == '0' || b == '1' || b == 'x' || b == 'X' || b == 'z' || b == 'Z':
		if !isIdentContinueByte(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.AllBitLit, Span: sp, Text: lx.text(sp)}
		}
	}

	lx.cursor.Eat('s')
	lx.cursor.Eat('S')
	switch lx.cursor.Peek() {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		lx.cursor.Bump()
	default:
		if tick == start {
			return lx.unknownChar(start)
		}
		// "8'" без базы: отдаём число, апостроф пойдёт отдельным (ошибочным) токеном
		lx.cursor.Reset(tick)
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
	}

	digits := 0
	for isIdentContinueByte(lx.cursor.Peek()) {
		if lx.cursor.Bump() != '_' {
			digits++
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if digits == 0 {
		lx.errLex(diag.LexBadNumber, sp, "based literal without digits")
	}
	return token.Token{Kind: token.BasedLit, Span: sp, Text: lx.text(sp)}
}

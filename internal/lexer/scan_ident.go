package lexer

import (
	"veryl/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z_][A-Za-z0-9_]* и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanSysIdent scans $name.
func (lx *Lexer) scanSysIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if !isIdentStartByte(lx.cursor.Peek()) {
		return lx.unknownChar(start)
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.SysIdent, Span: sp, Text: lx.text(sp)}
}

package lexer

import (
	"veryl/internal/diag"
	"veryl/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности, как в SystemVerilog)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r':
			for c := lx.cursor.Peek(); c == ' ' || c == '\t' || c == '\r'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaLineComment, start)
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.cursor.Off += 2
			closed := false
			for !lx.cursor.EOF() {
				if lx.try2('*', '/') {
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
			lx.pushTrivia(token.TriviaBlockComment, start)
		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

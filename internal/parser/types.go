package parser

import (
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/token"
)

// parseType: logic<8, 2> [4] | clock | pkg::my_t<4> | ...
func (p *Parser) parseType() (*ast.TypeExpr, bool) {
	start := p.peek()
	t := &ast.TypeExpr{Keyword: token.Invalid}
	switch {
	case start.IsTypeKeyword():
		p.advance()
		t.Keyword = start.Kind
	case start.Kind == token.Ident:
		user, ok := p.parseTypePath()
		if !ok {
			return nil, false
		}
		t.User = user
	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(start))
		return nil, false
	}

	if _, ok := p.eat(token.Lt); ok {
		for !p.at(token.Gt) && !p.at(token.EOF) {
			w, ok := p.parseExprNoGt()
			if !ok {
				return nil, false
			}
			t.Width = append(t.Width, w)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close width"); !ok {
			return nil, false
		}
	}
	if _, ok := p.eat(token.LBracket); ok {
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			a, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			t.Array = append(t.Array, a)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array"); !ok {
			return nil, false
		}
	}
	t.Sp = p.spanFrom(start.Span)
	return t, true
}

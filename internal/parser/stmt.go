package parser

import (
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/token"
)

// parseBlock: { stmt* }
func (p *Parser) parseBlock() (*ast.Block, bool) {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, false
	}
	b := &ast.Block{LBrace: braceFrom(lb)}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		st, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		b.Stmts = append(b.Stmts, st)
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	b.RBrace = braceFrom(rb)
	b.Sp = lb.Span.Cover(rb.Span)
	return b, true
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.KwIfReset:
		return p.parseIfReset()
	case token.KwIf:
		return p.parseIf()
	case token.Ident:
		return p.parseAssignStmt()
	default:
		p.err(diag.SynExpectStatement, "expected statement, got "+describe(p.peek()))
		return nil, false
	}
}

func (p *Parser) parseAssignStmt() (ast.Stmt, bool) {
	target, ok := p.parseHierIdent()
	if !ok {
		return nil, false
	}
	op := p.peek()
	if !op.IsAssignOp() {
		p.err(diag.SynUnexpectedToken, "expected assignment operator, got "+describe(op))
		return nil, false
	}
	p.advance()
	val, ok := p.parseExpr()
	if !ok || !p.semi() {
		return nil, false
	}
	return &ast.AssignStmt{Pos: ast.Pos{Sp: p.spanFrom(target.Sp)}, Target: target, Op: op.Kind, Value: val}, true
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	start := p.advance().Span
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	s := &ast.IfStmt{Cond: cond, Then: then}
	if s.Else, ok = p.parseElse(); !ok {
		return nil, false
	}
	s.Sp = p.spanFrom(start)
	return s, true
}

func (p *Parser) parseIfReset() (ast.Stmt, bool) {
	start := p.advance().Span
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	s := &ast.IfResetStmt{Then: then}
	if s.Else, ok = p.parseElse(); !ok {
		return nil, false
	}
	s.Sp = p.spanFrom(start)
	return s, true
}

// parseElse: [else if ... | else { ... }]
func (p *Parser) parseElse() (ast.Stmt, bool) {
	if _, ok := p.eat(token.KwElse); !ok {
		return nil, true
	}
	if p.at(token.KwIf) {
		return p.parseIf()
	}
	return p.parseBlock()
}

package parser

import (
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/token"
)

// Таблица приоритетов бинарных операторов; чем больше, тем сильнее связывает.
const (
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precBitwiseOr      = 3  // |
	precBitwiseXor     = 4  // ^
	precBitwiseAnd     = 5  // &
	precEquality       = 6  // == !=
	precComparison     = 7  // < <= > >=
	precShift          = 8  // << >> <<< >>>
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

func binaryPrec(k token.Kind, noGt bool) int {
	switch k {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq:
		return precComparison
	case token.Gt, token.GtEq:
		if noGt {
			return 0
		}
		return precComparison
	case token.Shl, token.AShl:
		return precShift
	case token.Shr, token.AShr:
		if noGt {
			return 0
		}
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	}
	return 0
}

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinary(1, false)
}

// parseExprNoGt parses inside <...> where '>' closes the list.
func (p *Parser) parseExprNoGt() (ast.Expr, bool) {
	return p.parseBinary(1, true)
}

// parseBinary: precedence climbing, все операторы левоассоциативны.
func (p *Parser) parseBinary(minPrec int, noGt bool) (ast.Expr, bool) {
	left, ok := p.parseUnary(noGt)
	if !ok {
		return nil, false
	}
	for {
		op := p.peek().Kind
		prec := binaryPrec(op, noGt)
		if prec == 0 || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(prec+1, noGt)
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Pos: ast.Pos{Sp: left.Span().Cover(right.Span())}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary(noGt bool) (ast.Expr, bool) {
	switch k := p.peek().Kind; k {
	case token.Minus, token.Plus, token.Bang, token.Tilde, token.Amp, token.Pipe, token.Caret:
		start := p.advance().Span
		operand, ok := p.parseUnary(noGt)
		if !ok {
			return nil, false
		}
		return &ast.Unary{Pos: ast.Pos{Sp: start.Cover(operand.Span())}, Op: k, Operand: operand}, true
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.BasedLit, token.AllBitLit:
		p.advance()
		return &ast.Number{Pos: ast.Pos{Sp: tok.Span}, Tok: tok}, true
	case token.Ident:
		h, ok := p.parseHierIdent()
		if !ok {
			return nil, false
		}
		if p.at(token.LParen) {
			args, ok := p.parseCallArgs()
			if !ok {
				return nil, false
			}
			return &ast.FuncCall{Pos: ast.Pos{Sp: p.spanFrom(h.Sp)}, Path: h, Args: args}, true
		}
		return h, true
	case token.SysIdent:
		p.advance()
		call := &ast.FuncCall{Sys: &tok}
		if p.at(token.LParen) {
			args, ok := p.parseCallArgs()
			if !ok {
				return nil, false
			}
			call.Args = args
		}
		call.Sp = p.spanFrom(tok.Span)
		return call, true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
			return nil, false
		}
		return &ast.Paren{Pos: ast.Pos{Sp: p.spanFrom(tok.Span)}, Inner: inner}, true
	case token.LBrace:
		return p.parseConcat()
	case token.KwIf:
		return p.parseIfExpr()
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return nil, false
}

func (p *Parser) parseCallArgs() ([]ast.Expr, bool) {
	p.advance() // (
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		a, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, a)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close call")
	return args, ok
}

// parseConcat: { a, b, ... }
func (p *Parser) parseConcat() (ast.Expr, bool) {
	lb := p.advance()
	c := &ast.Concat{LBrace: braceFrom(lb)}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		c.Items = append(c.Items, e)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close concatenation")
	if !ok {
		return nil, false
	}
	c.RBrace = braceFrom(rb)
	c.Sp = lb.Span.Cover(rb.Span)
	return c, true
}

// parseIfExpr: if c { a } else if d { b } else { e }
func (p *Parser) parseIfExpr() (ast.Expr, bool) {
	start := p.advance().Span
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBracedExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "if expression requires 'else'"); !ok {
		return nil, false
	}
	var els ast.Expr
	if p.at(token.KwIf) {
		if els, ok = p.parseIfExpr(); !ok {
			return nil, false
		}
	} else {
		b, ok := p.parseBracedExpr()
		if !ok {
			return nil, false
		}
		els = b
	}
	return &ast.IfExpr{Pos: ast.Pos{Sp: p.spanFrom(start)}, Cond: cond, Then: then, Else: els}, true
}

func (p *Parser) parseBracedExpr() (*ast.BracedExpr, bool) {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, false
	}
	val, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	if !ok {
		return nil, false
	}
	return &ast.BracedExpr{
		Pos:    ast.Pos{Sp: lb.Span.Cover(rb.Span)},
		LBrace: braceFrom(lb),
		Value:  val,
		RBrace: braceFrom(rb),
	}, true
}

// parseHierIdent: a::b::c.d[0][1:0].e
func (p *Parser) parseHierIdent() (*ast.HierIdent, bool) {
	return p.parseHierIdentOpts(true)
}

// parseTypePath: pkg::my_t: без selects, '[' после типа относится к массиву.
func (p *Parser) parseTypePath() (*ast.HierIdent, bool) {
	return p.parseHierIdentOpts(false)
}

func (p *Parser) parseHierIdentOpts(selects bool) (*ast.HierIdent, bool) {
	first, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	h := &ast.HierIdent{}
	names := []*ast.Identifier{first}
	for p.at(token.ColonColon) && p.peekN(1).Kind == token.Ident {
		p.advance()
		id, _ := p.parseIdent()
		names = append(names, id)
	}
	h.Scope = names[:len(names)-1]
	seg := &ast.HierSegment{Name: names[len(names)-1]}
	for {
		if selects {
			if seg.Selects, ok = p.parseSelects(); !ok {
				return nil, false
			}
		}
		h.Segments = append(h.Segments, seg)
		dot, isDot := p.eat(token.Dot)
		if !isDot {
			break
		}
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		seg = &ast.HierSegment{Dot: &ast.Dot{Pos: ast.Pos{Sp: dot.Span}}, Name: name}
	}
	// ::<...> после пути компонента: generic-аргументы экземпляра, не сохраняем
	if p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt {
		if !p.skipGenericArgs() {
			return nil, false
		}
	}
	h.Sp = p.spanFrom(first.Sp)
	return h, true
}

func (p *Parser) skipGenericArgs() bool {
	p.advance()
	p.advance()
	for !p.at(token.Gt) && !p.at(token.EOF) {
		if _, ok := p.parseExprNoGt(); !ok {
			return false
		}
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic arguments")
	return ok
}

// parseSelects: ([expr] | [msb:lsb])*
func (p *Parser) parseSelects() ([]*ast.Select, bool) {
	var out []*ast.Select
	for p.at(token.LBracket) {
		start := p.advance().Span
		idx, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		sel := &ast.Select{Index: idx}
		if _, ok := p.eat(token.Colon); ok {
			if sel.Lsb, ok = p.parseExpr(); !ok {
				return nil, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"); !ok {
			return nil, false
		}
		sel.Sp = p.spanFrom(start)
		out = append(out, sel)
	}
	return out, true
}

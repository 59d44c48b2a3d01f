package parser

import (
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/token"
)

// parseItems: основной цикл верхнего уровня.
func (p *Parser) parseItems(f *ast.File) {
	for !p.at(token.EOF) {
		item, ok := p.parseTopItem()
		if !ok {
			p.resyncTop()
			continue
		}
		f.Items = append(f.Items, item)
	}
}

func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwModule, token.KwInterface, token.KwPackage, token.Hash:
		return true
	}
	return false
}

// resyncTop: восстановление после ошибки на верхнем уровне: ищем следующий
// стартер, гарантируя прогресс хотя бы на один токен.
func (p *Parser) resyncTop() {
	start := p.pos
	p.resyncUntil(token.KwModule, token.KwInterface, token.KwPackage)
	if p.pos == start && !p.at(token.EOF) {
		p.advance()
		p.resyncUntil(token.KwModule, token.KwInterface, token.KwPackage)
	}
}

func (p *Parser) parseTopItem() (ast.Item, bool) {
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, false
	}
	switch p.peek().Kind {
	case token.KwModule:
		return p.parseModule(attrs)
	case token.KwInterface:
		return p.parseInterface(attrs)
	case token.KwPackage:
		return p.parsePackage(attrs)
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected module, interface or package, got "+describe(p.peek()))
		return nil, false
	}
}

// parseAttributes: #[name] или #[name(a, b)]
func (p *Parser) parseAttributes() ([]*ast.Attribute, bool) {
	var attrs []*ast.Attribute
	for p.at(token.Hash) && p.peekN(1).Kind == token.LBracket {
		start := p.advance().Span
		p.advance()
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		attr := &ast.Attribute{Name: name}
		if _, ok := p.eat(token.LParen); ok {
			for !p.at(token.RParen) && !p.at(token.EOF) {
				arg, ok := p.parseIdent()
				if !ok {
					return nil, false
				}
				attr.Args = append(attr.Args, arg)
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in attribute"); !ok {
				return nil, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after attribute"); !ok {
			return nil, false
		}
		attr.Sp = p.spanFrom(start)
		attrs = append(attrs, attr)
	}
	return attrs, true
}

func (p *Parser) parseModule(attrs []*ast.Attribute) (ast.Item, bool) {
	start := p.advance().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	m := &ast.ModuleDecl{Attrs: attrs, Name: name}
	if m.Generics, ok = p.parseGenerics(); !ok {
		return nil, false
	}
	if m.Params, ok = p.parseParamHeader(); !ok {
		return nil, false
	}
	if p.at(token.LParen) {
		if m.Ports, ok = p.parsePorts(); !ok {
			return nil, false
		}
	}
	if m.LBrace, m.Items, m.RBrace, ok = p.parseItemBody(); !ok {
		return nil, false
	}
	m.Sp = p.spanFrom(start)
	return m, true
}

func (p *Parser) parseInterface(attrs []*ast.Attribute) (ast.Item, bool) {
	start := p.advance().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	d := &ast.InterfaceDecl{Attrs: attrs, Name: name}
	if d.Generics, ok = p.parseGenerics(); !ok {
		return nil, false
	}
	if d.Params, ok = p.parseParamHeader(); !ok {
		return nil, false
	}
	if d.LBrace, d.Items, d.RBrace, ok = p.parseItemBody(); !ok {
		return nil, false
	}
	d.Sp = p.spanFrom(start)
	return d, true
}

func (p *Parser) parsePackage(attrs []*ast.Attribute) (ast.Item, bool) {
	start := p.advance().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	d := &ast.PackageDecl{Attrs: attrs, Name: name}
	if d.LBrace, d.Items, d.RBrace, ok = p.parseItemBody(); !ok {
		return nil, false
	}
	d.Sp = p.spanFrom(start)
	return d, true
}

// parseGenerics: ::<T: type, W: u32 = 8>
func (p *Parser) parseGenerics() ([]*ast.GenericParam, bool) {
	if !p.at(token.ColonColon) || p.peekN(1).Kind != token.Lt {
		return nil, true
	}
	p.advance()
	p.advance()
	var out []*ast.GenericParam
	for !p.at(token.Gt) && !p.at(token.EOF) {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		g := &ast.GenericParam{Name: name}
		if _, ok := p.eat(token.Colon); ok {
			if _, ok := p.eat(token.KwType); ok {
				g.IsType = true
			} else if g.Type, ok = p.parseType(); !ok {
				return nil, false
			}
		}
		if _, ok := p.eat(token.Assign); ok {
			if g.Default, ok = p.parseExprNoGt(); !ok {
				return nil, false
			}
		}
		g.Sp = p.spanFrom(name.Sp)
		out = append(out, g)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic parameters")
	return out, ok
}

// parseParamHeader: #( param A: u32 = 1, local B: u32 = 2 )
func (p *Parser) parseParamHeader() ([]*ast.ParamDecl, bool) {
	if !p.at(token.Hash) || p.peekN(1).Kind != token.LParen {
		return nil, true
	}
	p.advance()
	p.advance()
	var out []*ast.ParamDecl
	for !p.at(token.RParen) && !p.at(token.EOF) {
		prm, ok := p.parseParamDecl()
		if !ok {
			return nil, false
		}
		out = append(out, prm)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list")
	return out, ok
}

// parseParamDecl: (param|local) Name: type = expr
func (p *Parser) parseParamDecl() (*ast.ParamDecl, bool) {
	kw := p.peek()
	if kw.Kind != token.KwParam && kw.Kind != token.KwLocal {
		p.err(diag.SynUnexpectedToken, "expected 'param' or 'local', got "+describe(kw))
		return nil, false
	}
	p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	d := &ast.ParamDecl{Local: kw.Kind == token.KwLocal, Name: name}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return nil, false
	}
	if d.Type, ok = p.parseType(); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in parameter declaration"); !ok {
		return nil, false
	}
	if d.Value, ok = p.parseExpr(); !ok {
		return nil, false
	}
	d.Sp = p.spanFrom(kw.Span)
	return d, true
}

// parsePorts: ( clk: input clock, #[default_reset] rst: input reset, ... )
func (p *Parser) parsePorts() ([]*ast.PortDecl, bool) {
	p.advance()
	var out []*ast.PortDecl
	for !p.at(token.RParen) && !p.at(token.EOF) {
		attrs, ok := p.parseAttributes()
		if !ok {
			return nil, false
		}
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after port name"); !ok {
			return nil, false
		}
		port := &ast.PortDecl{Attrs: attrs, Name: name}
		switch p.peek().Kind {
		case token.KwInput:
			port.Direction = ast.DirInput
		case token.KwOutput:
			port.Direction = ast.DirOutput
		case token.KwInout:
			port.Direction = ast.DirInout
		default:
			p.err(diag.SynUnexpectedToken, "expected port direction, got "+describe(p.peek()))
			return nil, false
		}
		p.advance()
		if port.Type, ok = p.parseType(); !ok {
			return nil, false
		}
		port.Sp = p.spanFrom(name.Sp)
		out = append(out, port)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close port list")
	return out, ok
}

// parseItemBody: { item* } с восстановлением на уровне отдельных items.
func (p *Parser) parseItemBody() (*ast.Brace, []ast.Item, *ast.Brace, bool) {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, nil, nil, false
	}
	var items []ast.Item
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if isTopLevelStarter(p.peek().Kind) && p.peek().Kind != token.Hash {
			break
		}
		item, ok := p.parseModuleItem()
		if !ok {
			p.resyncItem()
			continue
		}
		items = append(items, item)
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'")
	if !ok {
		return nil, nil, nil, false
	}
	return braceFrom(lb), items, braceFrom(rb), true
}

func isModuleItemStarter(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwLet, token.KwParam, token.KwLocal, token.KwInst,
		token.KwAssign, token.KwAlwaysFF, token.KwAlwaysComb, token.Hash:
		return true
	}
	return false
}

// resyncItem пропускает до ';' (включительно), '}' или начала следующего item.
func (p *Parser) resyncItem() {
	start := p.pos
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if k == token.Semicolon {
			p.advance()
			return
		}
		if k == token.RBrace || isTopLevelStarter(k) || (isModuleItemStarter(k) && p.pos != start) {
			if p.pos == start && k != token.RBrace {
				p.advance()
				continue
			}
			return
		}
		p.advance()
	}
}

func (p *Parser) parseModuleItem() (ast.Item, bool) {
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, false
	}
	switch p.peek().Kind {
	case token.KwVar:
		return p.parseVar(attrs)
	case token.KwLet:
		return p.parseLet(attrs)
	case token.KwParam, token.KwLocal:
		d, ok := p.parseParamDecl()
		if !ok {
			return nil, false
		}
		if !p.semi() {
			return nil, false
		}
		d.Sp = p.spanFrom(d.Sp)
		return d, true
	case token.KwInst:
		return p.parseInst()
	case token.KwAssign:
		return p.parseAssignDecl()
	case token.KwAlwaysFF:
		return p.parseAlwaysFF()
	case token.KwAlwaysComb:
		start := p.advance().Span
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &ast.AlwaysCombDecl{Pos: ast.Pos{Sp: p.spanFrom(start)}, Body: body}, true
	default:
		p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+" in declaration body")
		return nil, false
	}
}

func (p *Parser) semi() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
	return ok
}

func (p *Parser) parseVar(attrs []*ast.Attribute) (ast.Item, bool) {
	start := p.advance().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after variable name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok || !p.semi() {
		return nil, false
	}
	return &ast.VarDecl{Pos: ast.Pos{Sp: p.spanFrom(start)}, Attrs: attrs, Name: name, Type: typ}, true
}

func (p *Parser) parseLet(attrs []*ast.Attribute) (ast.Item, bool) {
	start := p.advance().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let declaration"); !ok {
		return nil, false
	}
	val, ok := p.parseExpr()
	if !ok || !p.semi() {
		return nil, false
	}
	return &ast.LetDecl{Pos: ast.Pos{Sp: p.spanFrom(start)}, Attrs: attrs, Name: name, Type: typ, Value: val}, true
}

// parseInst: inst u0: Sub #(W: 8) (clk, rst: i_rst);
func (p *Parser) parseInst() (ast.Item, bool) {
	start := p.advance().Span
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after instance name"); !ok {
		return nil, false
	}
	comp, ok := p.parseHierIdent()
	if !ok {
		return nil, false
	}
	d := &ast.InstDecl{Name: name, Component: comp}
	if p.at(token.Hash) && p.peekN(1).Kind == token.LParen {
		p.advance()
		if d.Params, ok = p.parseInstArgs(); !ok {
			return nil, false
		}
	}
	if p.at(token.LParen) {
		if d.Ports, ok = p.parseInstArgs(); !ok {
			return nil, false
		}
	}
	if !p.semi() {
		return nil, false
	}
	d.Sp = p.spanFrom(start)
	return d, true
}

func (p *Parser) parseInstArgs() ([]*ast.InstArg, bool) {
	p.advance() // (
	var out []*ast.InstArg
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		arg := &ast.InstArg{Name: name}
		if _, ok := p.eat(token.Colon); ok {
			if arg.Value, ok = p.parseExpr(); !ok {
				return nil, false
			}
		}
		arg.Sp = p.spanFrom(name.Sp)
		out = append(out, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close connection list")
	return out, ok
}

func (p *Parser) parseAssignDecl() (ast.Item, bool) {
	start := p.advance().Span
	target, ok := p.parseHierIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '='"); !ok {
		return nil, false
	}
	val, ok := p.parseExpr()
	if !ok || !p.semi() {
		return nil, false
	}
	return &ast.AssignDecl{Pos: ast.Pos{Sp: p.spanFrom(start)}, Target: target, Op: token.Assign, Value: val}, true
}

// parseAlwaysFF: always_ff [(clk[, rst])] { ... }
func (p *Parser) parseAlwaysFF() (ast.Item, bool) {
	start := p.advance().Span
	d := &ast.AlwaysFFDecl{}
	if lp, ok := p.eat(token.LParen); ok {
		ev := &ast.EventList{}
		clk, ok := p.parseHierIdent()
		if !ok {
			return nil, false
		}
		ev.Clock = &ast.AlwaysFFClock{Pos: ast.Pos{Sp: clk.Sp}, Ident: clk}
		if _, ok := p.eat(token.Comma); ok {
			rst, ok := p.parseHierIdent()
			if !ok {
				return nil, false
			}
			ev.Reset = &ast.AlwaysFFReset{Pos: ast.Pos{Sp: rst.Sp}, Ident: rst}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close event list"); !ok {
			return nil, false
		}
		ev.Sp = p.spanFrom(lp.Span)
		d.Event = ev
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	d.Body = body
	d.Sp = p.spanFrom(start)
	return d, true
}

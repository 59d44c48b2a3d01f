package parser

import (
	"slices"

	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/lexer"
	"veryl/internal/source"
	"veryl/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		toks: lx.Tokens(),
		file: file,
		opts: opts,
	}
	p.lastSpan = source.Span{File: file.ID}

	f := &ast.File{ID: file.ID, Path: file.Path}
	f.Sp = p.peek().Span
	p.parseItems(f)
	f.Sp = f.Sp.Cover(p.lastSpan)
	return Result{File: f, Errors: p.opts.CurrentErrors}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg+", got "+describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// diagSpan: на EOF указываем сразу за последним съеденным токеном.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil && !p.opts.Enough() {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return "\"" + t.Text + "\""
}

// resyncUntil прокручивает токены до одного из kinds (не съедая его) или EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}

func (p *Parser) parseIdent() (*ast.Identifier, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
	if !ok {
		return nil, false
	}
	return identFrom(tok), true
}

func identFrom(tok token.Token) *ast.Identifier {
	return &ast.Identifier{Pos: ast.Pos{Sp: tok.Span}, Tok: tok}
}

func braceFrom(tok token.Token) *ast.Brace {
	return &ast.Brace{Pos: ast.Pos{Sp: tok.Span}, Open: tok.Kind == token.LBrace}
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

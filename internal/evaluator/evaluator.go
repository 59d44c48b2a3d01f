// Package evaluator classifies expressions by how much is known about their
// value before simulation.
package evaluator

import (
	"math/big"

	"veryl/internal/ast"
	"veryl/internal/symbols"
	"veryl/internal/token"
)

// Kind orders evaluation results from most to least known.
type Kind uint8

const (
	Fixed         Kind = iota // compile-time constant
	UnknownStatic             // static, value not computed here
	Variable                  // depends on a signal
	Unknown                   // cannot be analysed
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case UnknownStatic:
		return "unknown-static"
	case Variable:
		return "variable"
	}
	return "unknown"
}

// Evaluated is the result of Expression.
type Evaluated struct {
	Kind   Kind
	Value  *big.Int         // set for Fixed
	Width  int              // 0 when not known
	Symbol symbols.SymbolID // first signal seen, for Variable
}

// IsElaborative reports whether the value is fixed at elaboration time.
func (e Evaluated) IsElaborative() bool {
	return e.Kind == Fixed || e.Kind == UnknownStatic
}

// fixed обрезает значение до ширины; width 0 значит unsized.
func fixed(v *big.Int, width int) Evaluated {
	if width > 0 {
		v = new(big.Int).And(v, fillOnes(width))
	}
	return Evaluated{Kind: Fixed, Value: v, Width: width}
}

var (
	unknown       = Evaluated{Kind: Unknown}
	unknownStatic = Evaluated{Kind: UnknownStatic}
)

// combine merges operand results: the least known kind wins.
func combine(vals ...Evaluated) Evaluated {
	out := Evaluated{Kind: Fixed}
	for _, v := range vals {
		if v.Kind > out.Kind {
			out.Kind = v.Kind
		}
		if v.Kind == Variable && !out.Symbol.IsValid() {
			out.Symbol = v.Symbol
		}
	}
	if out.Kind != Variable {
		out.Symbol = symbols.NoSymbolID
	}
	return out
}

// Evaluator evaluates expressions in one scope. It is cheap to create and
// must not be shared between goroutines.
type Evaluator struct {
	table    *symbols.Table
	scope    symbols.ScopeID
	visiting map[symbols.SymbolID]struct{}
}

func New(table *symbols.Table, scope symbols.ScopeID) *Evaluator {
	return &Evaluator{table: table, scope: scope, visiting: make(map[symbols.SymbolID]struct{})}
}

// SetScope switches the resolution scope for following calls.
func (ev *Evaluator) SetScope(scope symbols.ScopeID) { ev.scope = scope }

// Expression evaluates e. A nil expression is Unknown.
func (ev *Evaluator) Expression(e ast.Expr) Evaluated {
	switch e := e.(type) {
	case *ast.Number:
		return ev.number(e)
	case *ast.HierIdent:
		return ev.identifier(e)
	case *ast.Paren:
		return ev.Expression(e.Inner)
	case *ast.BracedExpr:
		if e == nil {
			return unknown
		}
		return ev.Expression(e.Value)
	case *ast.Unary:
		return ev.unary(e)
	case *ast.Binary:
		return ev.binary(e)
	case *ast.IfExpr:
		return ev.ifExpr(e)
	case *ast.Concat:
		return ev.concat(e)
	case *ast.FuncCall:
		return ev.call(e)
	}
	return unknown
}

func (ev *Evaluator) number(n *ast.Number) Evaluated {
	lit, err := ParseLiteral(n.Tok)
	if err != nil {
		return unknown
	}
	if lit.Value == nil {
		return Evaluated{Kind: UnknownStatic, Width: lit.Width}
	}
	return fixed(lit.Value, lit.Width)
}

func (ev *Evaluator) identifier(h *ast.HierIdent) Evaluated {
	res, err := ev.table.Resolve(symbols.PathOf(h), ev.scope)
	if err != nil {
		return unknown
	}
	sym := res.Found
	switch sym.Kind {
	case symbols.SymbolPort, symbols.SymbolVariable:
		return Evaluated{Kind: Variable, Symbol: sym.ID}
	case symbols.SymbolGeneric:
		return unknownStatic
	case symbols.SymbolParameter:
		return ev.parameter(sym, res.Selects)
	}
	return unknown
}

func (ev *Evaluator) parameter(sym *symbols.Symbol, selects int) Evaluated {
	p, ok := sym.Prop.(*symbols.ParameterProperty)
	if !ok || p.Value == nil {
		return unknownStatic
	}
	if _, busy := ev.visiting[sym.ID]; busy {
		return unknown
	}
	ev.visiting[sym.ID] = struct{}{}
	saved := ev.scope
	ev.scope = sym.Scope
	v := ev.Expression(p.Value)
	ev.scope = saved
	delete(ev.visiting, sym.ID)

	if v.Kind == Fixed && selects > 0 {
		return unknownStatic
	}
	return v
}

func (ev *Evaluator) unary(u *ast.Unary) Evaluated {
	v := ev.Expression(u.Operand)
	if v.Kind != Fixed {
		return combine(v)
	}
	x := v.Value
	switch u.Op {
	case token.Plus:
		return v
	case token.Minus:
		return fixed(new(big.Int).Neg(x), v.Width)
	case token.Bang:
		return fixed(boolInt(x.Sign() == 0), 1)
	case token.Tilde:
		if v.Width == 0 {
			return unknownStatic
		}
		return fixed(new(big.Int).Xor(x, fillOnes(v.Width)), v.Width)
	case token.Amp, token.Pipe, token.Caret:
		return unknownStatic
	}
	return unknown
}

func (ev *Evaluator) binary(b *ast.Binary) Evaluated {
	l := ev.Expression(b.Left)
	r := ev.Expression(b.Right)
	if l.Kind != Fixed || r.Kind != Fixed {
		return combine(l, r)
	}
	x, y := l.Value, r.Value
	width := max(l.Width, r.Width)
	switch b.Op {
	case token.Plus:
		return fixed(new(big.Int).Add(x, y), width)
	case token.Minus:
		return fixed(new(big.Int).Sub(x, y), width)
	case token.Star:
		return fixed(new(big.Int).Mul(x, y), width)
	case token.Slash:
		if y.Sign() == 0 {
			return unknownStatic
		}
		return fixed(new(big.Int).Quo(x, y), width)
	case token.Percent:
		if y.Sign() == 0 {
			return unknownStatic
		}
		return fixed(new(big.Int).Rem(x, y), width)
	case token.Amp:
		return fixed(new(big.Int).And(x, y), width)
	case token.Pipe:
		return fixed(new(big.Int).Or(x, y), width)
	case token.Caret:
		return fixed(new(big.Int).Xor(x, y), width)
	case token.Shl, token.AShl:
		if !y.IsUint64() || y.Uint64() > 1<<16 {
			return unknownStatic
		}
		return fixed(new(big.Int).Lsh(x, uint(y.Uint64())), width)
	case token.Shr, token.AShr:
		if !y.IsUint64() || y.Uint64() > 1<<16 {
			return unknownStatic
		}
		return fixed(new(big.Int).Rsh(x, uint(y.Uint64())), width)
	case token.EqEq:
		return fixed(boolInt(x.Cmp(y) == 0), 1)
	case token.BangEq:
		return fixed(boolInt(x.Cmp(y) != 0), 1)
	case token.Lt:
		return fixed(boolInt(x.Cmp(y) < 0), 1)
	case token.LtEq:
		return fixed(boolInt(x.Cmp(y) <= 0), 1)
	case token.Gt:
		return fixed(boolInt(x.Cmp(y) > 0), 1)
	case token.GtEq:
		return fixed(boolInt(x.Cmp(y) >= 0), 1)
	case token.AndAnd:
		return fixed(boolInt(x.Sign() != 0 && y.Sign() != 0), 1)
	case token.OrOr:
		return fixed(boolInt(x.Sign() != 0 || y.Sign() != 0), 1)
	}
	return unknown
}

func (ev *Evaluator) ifExpr(e *ast.IfExpr) Evaluated {
	cond := ev.Expression(e.Cond)
	then := ev.Expression(e.Then)
	els := ev.Expression(e.Else)
	if cond.Kind == Fixed && then.Kind == Fixed && els.Kind == Fixed {
		if cond.Value.Sign() != 0 {
			return then
		}
		return els
	}
	return combine(cond, then, els)
}

func (ev *Evaluator) concat(c *ast.Concat) Evaluated {
	vals := make([]Evaluated, 0, len(c.Items))
	known := true
	for _, item := range c.Items {
		v := ev.Expression(item)
		vals = append(vals, v)
		known = known && v.Kind == Fixed && v.Width > 0
	}
	out := combine(vals...)
	if out.Kind != Fixed {
		return out
	}
	if !known {
		return unknownStatic
	}
	acc, width := new(big.Int), 0
	for _, v := range vals {
		acc.Lsh(acc, uint(v.Width)) // #nosec G115 -- widths are positive
		acc.Or(acc, v.Value)
		width += v.Width
	}
	return fixed(acc, width)
}

func (ev *Evaluator) call(c *ast.FuncCall) Evaluated {
	args := make([]Evaluated, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, ev.Expression(a))
	}
	if c.Path != nil {
		if _, err := ev.table.Resolve(symbols.PathOf(c.Path), ev.scope); err != nil {
			return unknown
		}
	}
	out := combine(args...)
	if out.Kind != Fixed {
		return out
	}
	if c.Sys != nil && c.Sys.Text == "$clog2" && len(args) == 1 {
		return fixed(clog2(args[0].Value), 32)
	}
	return unknownStatic
}

func clog2(x *big.Int) *big.Int {
	if x.Sign() <= 0 {
		return new(big.Int)
	}
	n := new(big.Int).Sub(x, big.NewInt(1))
	return big.NewInt(int64(n.BitLen()))
}

func boolInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return new(big.Int)
}

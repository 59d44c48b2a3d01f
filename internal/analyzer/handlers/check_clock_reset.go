package handlers

import (
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/evaluator"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// CheckClockReset checks the clock and reset usage of always_ff blocks.
type CheckClockReset struct {
	base
	ctx   *Context
	scope scopeTracker
	eval  *evaluator.Evaluator

	inAlwaysFF   bool
	inIfReset    bool
	ifResetBrace int
	ifResetExist bool

	inEvent   bool
	identDeep int // вложенность HierIdent внутри события
	nOfSelect int

	defaultClockExists bool
	defaultResetExists bool
}

func NewCheckClockReset(ctx *Context) *CheckClockReset {
	return &CheckClockReset{
		base:  newBase(),
		ctx:   ctx,
		scope: newScopeTracker(ctx.Table),
		eval:  evaluator.New(ctx.Table, ctx.Table.Root()),
	}
}

func (h *CheckClockReset) Handle(p walker.Point, n ast.Node) {
	if h.scope.track(p, n) {
		h.enterComponent(p)
		return
	}
	if !h.scope.active() {
		return
	}
	switch n := n.(type) {
	case *ast.Brace:
		h.brace(p, n)
	case *ast.IfResetStmt:
		if p == walker.Before {
			h.ifResetExist = true
			h.inIfReset = true
		}
	case *ast.AlwaysFFDecl:
		h.alwaysFF(p, n)
	case *ast.AlwaysFFClock:
		h.event(p, n.Ident, symbols.ValidClock, diag.SemaInvalidClock, "clock")
	case *ast.AlwaysFFReset:
		h.event(p, n.Ident, symbols.ValidReset, diag.SemaInvalidReset, "reset")
	case *ast.HierIdent:
		if h.inEvent {
			if p == walker.Before {
				h.identDeep++
			} else {
				h.identDeep--
			}
		}
	case *ast.Select:
		if h.inEvent && h.identDeep == 1 && p == walker.Before {
			h.nOfSelect++
		}
	case *ast.Dot:
		if h.inEvent && h.identDeep == 1 && p == walker.Before {
			h.nOfSelect = 0
		}
	case *ast.AssignStmt:
		if p == walker.Before && h.inAlwaysFF && h.inIfReset {
			h.resetValue(n.Value)
		}
	}
}

func (h *CheckClockReset) enterComponent(p walker.Point) {
	h.defaultClockExists, h.defaultResetExists = false, false
	if p == walker.Before {
		if m, ok := h.componentModule(); ok {
			h.defaultClockExists = m.DefaultClock.IsValid()
			h.defaultResetExists = m.DefaultReset.IsValid()
		}
		h.eval.SetScope(h.scope.scope)
	}
}

func (h *CheckClockReset) componentModule() (*symbols.ModuleProperty, bool) {
	if h.scope.component == nil {
		return nil, false
	}
	return h.scope.component.Module()
}

// brace closes the if_reset body at its matching '}'.
func (h *CheckClockReset) brace(p walker.Point, b *ast.Brace) {
	if p != walker.Before || !h.inIfReset {
		return
	}
	if b.Open {
		h.ifResetBrace++
		return
	}
	h.ifResetBrace--
	if h.ifResetBrace == 0 {
		h.inIfReset = false
	}
}

func (h *CheckClockReset) alwaysFF(p walker.Point, n *ast.AlwaysFFDecl) {
	hasReset := n.Event != nil && n.Event.Reset != nil
	if p == walker.Before {
		if !h.defaultClockExists && n.Event == nil {
			h.report(diag.SemaMissingClockSignal, n.Sp, "clock signal is required for always_ff statement").Emit()
		}
		if hasReset && !startsWithIfReset(n.Body) {
			h.report(diag.SemaMissingIfReset, n.Sp, "if_reset statement is required for always_ff with reset signal").Emit()
		}
		h.inAlwaysFF = true
		return
	}
	if h.ifResetExist && !h.defaultResetExists && !hasReset {
		h.report(diag.SemaMissingResetSignal, n.Sp, "reset signal is required for always_ff with if_reset statement").Emit()
	}
	h.inAlwaysFF = false
	h.ifResetExist = false
	h.inIfReset = false
	h.ifResetBrace = 0
}

func startsWithIfReset(body *ast.Block) bool {
	if body == nil || len(body.Stmts) == 0 {
		return false
	}
	_, ok := body.Stmts[0].(*ast.IfResetStmt)
	return ok
}

// event validates a clock or reset identifier once its selects are counted.
func (h *CheckClockReset) event(p walker.Point, id *ast.HierIdent, valid func(*symbols.Type, int) bool, code diag.Code, what string) {
	if p == walker.Before {
		h.inEvent, h.identDeep, h.nOfSelect = true, 0, 0
		return
	}
	h.inEvent = false
	if id == nil {
		return
	}
	res, err := h.ctx.Table.Resolve(symbols.PathOf(id), h.scope.scope)
	if err != nil {
		// неразрешённые имена сообщает CreateReference
		return
	}
	ty, ok := res.Found.SignalType()
	if ok && valid(ty, h.nOfSelect) {
		return
	}
	name := id.First().Text()
	h.report(code, id.Sp, "%s can't be used as a %s because it is not %s type nor a single bit signal", name, what, what).Emit()
}

func (h *CheckClockReset) resetValue(value ast.Expr) {
	if value == nil {
		return
	}
	if h.eval.Expression(value).IsElaborative() {
		return
	}
	h.report(diag.SemaInvalidResetNonElaborative, value.Span(), "reset value can't be used because it is not evaluable at elaboration time").Emit()
}

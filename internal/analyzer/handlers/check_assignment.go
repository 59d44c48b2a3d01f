package handlers

import (
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// CheckAssignment rejects assignments whose target is not a writable signal.
// Targets are looked up in the references recorded by pass 2.
type CheckAssignment struct {
	base
	ctx *Context
}

func NewCheckAssignment(ctx *Context) *CheckAssignment {
	return &CheckAssignment{base: newBase(), ctx: ctx}
}

func (h *CheckAssignment) Handle(p walker.Point, n ast.Node) {
	if p != walker.Before {
		return
	}
	switch n := n.(type) {
	case *ast.AssignStmt:
		h.check(n.Target)
	case *ast.AssignDecl:
		h.check(n.Target)
	}
}

func (h *CheckAssignment) check(target *ast.HierIdent) {
	if target == nil {
		return
	}
	last := target.Segments[len(target.Segments)-1].Name
	id, ok := h.ctx.Refs.Get(last.Location())
	if !ok {
		return
	}
	sym := h.ctx.Table.Get(id)
	name := target.String()
	switch {
	case sym.Kind == symbols.SymbolPort:
		if port := sym.Prop.(*symbols.PortProperty); port.Direction == ast.DirInput {
			h.report(diag.SemaInvalidAssignment, target.Sp, "%s is an input port and can't be assigned", name).Emit()
		}
	case sym.Kind == symbols.SymbolVariable && sym.Flags&symbols.FlagLet != 0:
		h.report(diag.SemaInvalidAssignment, target.Sp, "%s is declared by let and can't be assigned again", name).
			WithNote(sym.Span, "declared here").
			Emit()
	case sym.Kind != symbols.SymbolVariable:
		h.report(diag.SemaInvalidAssignment, target.Sp, "%s is a %s and can't be assigned", name, sym.Kind).Emit()
	}
}

package handlers

import (
	"veryl/internal/ast"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// CreateAssignList records every assignment site with its target symbol.
type CreateAssignList struct {
	base
	ctx   *Context
	scope scopeTracker
	kind  symbols.AssignKind
	inst  symbols.ScopeID // member scope of the instantiated component
}

func NewCreateAssignList(ctx *Context) *CreateAssignList {
	return &CreateAssignList{base: newBase(), ctx: ctx, scope: newScopeTracker(ctx.Table)}
}

func (h *CreateAssignList) Handle(p walker.Point, n ast.Node) {
	if h.scope.track(p, n) || !h.scope.active() {
		return
	}
	if p == walker.After {
		if _, ok := n.(*ast.InstDecl); ok {
			h.inst = symbols.NoScopeID
		}
		return
	}
	switch n := n.(type) {
	case *ast.AlwaysFFDecl:
		h.kind = symbols.AssignFF
	case *ast.AlwaysCombDecl:
		h.kind = symbols.AssignComb
	case *ast.AssignStmt:
		if n.Target != nil {
			h.add(n.Target, h.kind)
		}
	case *ast.AssignDecl:
		if n.Target != nil {
			h.add(n.Target, symbols.AssignContinuous)
		}
	case *ast.LetDecl:
		if n.Name == nil {
			return
		}
		if sym, ok := h.ctx.Table.SymbolAt(n.Name.Location()); ok {
			h.ctx.Assigns.Add(symbols.Assign{
				Target:   sym.ID,
				Path:     n.Name.Text(),
				Kind:     symbols.AssignLet,
				Location: n.Name.Location(),
				Span:     n.Name.Sp,
			})
		}
	case *ast.InstDecl:
		h.inst = symbols.NoScopeID
		if n.Component == nil {
			return
		}
		if res, err := h.ctx.Table.Resolve(symbols.PathOf(n.Component), h.scope.scope); err == nil {
			h.inst = res.Found.Members()
		}
	case *ast.InstArg:
		h.instArg(n)
	}
}

// instArg records output and inout connections as assignments to the
// connected signal.
func (h *CreateAssignList) instArg(arg *ast.InstArg) {
	if !h.inst.IsValid() || arg.Name == nil {
		return
	}
	pid, ok := h.ctx.Table.LookupLocal(h.inst, arg.Name.Text())
	if !ok {
		return
	}
	port, ok := h.ctx.Table.Get(pid).Prop.(*symbols.PortProperty)
	if !ok || port.Direction == ast.DirInput {
		return
	}
	switch v := arg.Value.(type) {
	case nil:
		h.addPath(symbols.SimplePath(arg.Name.Text()), arg.Name, symbols.AssignInstPort)
	case *ast.HierIdent:
		h.add(v, symbols.AssignInstPort)
	}
}

func (h *CreateAssignList) add(target *ast.HierIdent, kind symbols.AssignKind) {
	res, err := h.ctx.Table.Resolve(symbols.PathOf(target), h.scope.scope)
	if err != nil {
		return
	}
	last := target.Segments[len(target.Segments)-1].Name
	h.ctx.Assigns.Add(symbols.Assign{
		Target:   res.Found.ID,
		Path:     target.String(),
		Kind:     kind,
		Location: last.Location(),
		Span:     target.Sp,
	})
}

func (h *CreateAssignList) addPath(path symbols.Path, at *ast.Identifier, kind symbols.AssignKind) {
	res, err := h.ctx.Table.Resolve(path, h.scope.scope)
	if err != nil {
		return
	}
	h.ctx.Assigns.Add(symbols.Assign{
		Target:   res.Found.ID,
		Path:     path.String(),
		Kind:     kind,
		Location: at.Location(),
		Span:     at.Sp,
	})
}

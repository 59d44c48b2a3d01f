package handlers

import (
	"veryl/internal/ast"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// CreateTypeDag records which components each component depends on.
type CreateTypeDag struct {
	base
	ctx   *Context
	scope scopeTracker
	name  string
}

func NewCreateTypeDag(ctx *Context) *CreateTypeDag {
	return &CreateTypeDag{base: newBase(), ctx: ctx, scope: newScopeTracker(ctx.Table)}
}

func (h *CreateTypeDag) Handle(p walker.Point, n ast.Node) {
	if h.scope.track(p, n) {
		h.name = ""
		if c := h.scope.component; c != nil && p == walker.Before {
			h.name = c.QualifiedName(h.ctx.Table)
			h.ctx.Dag.AddNode(h.name, c.Span)
		}
		return
	}
	if p != walker.Before || h.name == "" {
		return
	}
	switch n := n.(type) {
	case *ast.InstDecl:
		if n.Component != nil {
			h.depend(n.Component)
		}
	case *ast.TypeExpr:
		if n.User != nil {
			h.depend(n.User)
		}
	case *ast.HierIdent:
		if len(n.Scope) > 0 {
			h.depend(n)
		}
	}
}

// depend adds an edge to the outermost component on the path.
func (h *CreateTypeDag) depend(id *ast.HierIdent) {
	res, err := h.ctx.Table.Resolve(symbols.PathOf(id), h.scope.scope)
	if err != nil {
		return
	}
	for _, sid := range res.FullPath {
		sym := h.ctx.Table.Get(sid)
		switch sym.Kind {
		case symbols.SymbolModule, symbols.SymbolInterface, symbols.SymbolPackage:
			h.ctx.Dag.AddEdge(h.name, sym.QualifiedName(h.ctx.Table), id.Sp)
			return
		}
	}
}

package handlers

import (
	"errors"
	"fmt"

	"veryl/internal/ast"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// CreateReference resolves every hierarchical identifier of a file and
// records which symbol each identifier segment refers to.
type CreateReference struct {
	base
	ctx   *Context
	scope scopeTracker
	calls map[*ast.HierIdent]bool
	inst  instTarget
}

// instTarget: компонент текущего inst и его соединения.
type instTarget struct {
	name    string
	members symbols.ScopeID
	params  map[*ast.InstArg]bool
}

func NewCreateReference(ctx *Context) *CreateReference {
	return &CreateReference{
		base:  newBase(),
		ctx:   ctx,
		scope: newScopeTracker(ctx.Table),
		calls: make(map[*ast.HierIdent]bool),
	}
}

func (h *CreateReference) Handle(p walker.Point, n ast.Node) {
	if h.scope.track(p, n) || !h.scope.active() {
		return
	}
	if p == walker.After {
		if _, ok := n.(*ast.InstDecl); ok {
			h.inst = instTarget{}
		}
		return
	}
	switch n := n.(type) {
	case *ast.InstDecl:
		h.enterInst(n)
	case *ast.FuncCall:
		if n.Path != nil {
			h.calls[n.Path] = true
		}
	case *ast.HierIdent:
		path := symbols.PathOf(n)
		if h.calls[n] {
			// функции пакетов не объявляются: проверяем только путь до них
			if len(path.Segments) < 2 {
				return
			}
			path.Segments = path.Segments[:len(path.Segments)-1]
		}
		h.resolve(path)
	case *ast.InstArg:
		h.connection(n)
		if n.Value == nil && n.Name != nil {
			path := symbols.SimplePath(n.Name.Text())
			path.Segments[0].Location = n.Name.Location()
			path.Segments[0].Span = n.Name.Sp
			path.Span = n.Name.Sp
			h.resolve(path)
		}
	}
}

func (h *CreateReference) resolve(path symbols.Path) {
	res, err := h.ctx.Table.Resolve(path, h.scope.scope)
	if err != nil {
		var unres *symbols.UnresolvedIdentifierError
		if errors.As(err, &unres) && unres.Opaque {
			return
		}
		if d, ok := FromError(err); ok {
			h.bag.Add(d)
		}
		return
	}
	for i, id := range res.FullPath {
		h.ctx.Refs.Add(path.Segments[i].Location, id)
	}
}

func (h *CreateReference) enterInst(n *ast.InstDecl) {
	h.inst = instTarget{}
	if n.Component == nil {
		return
	}
	// неразрешённый компонент сообщит HierIdent
	res, err := h.ctx.Table.Resolve(symbols.PathOf(n.Component), h.scope.scope)
	if err != nil {
		return
	}
	members := res.Found.Members()
	if !members.IsValid() {
		return
	}
	h.inst = instTarget{
		name:    n.Component.String(),
		members: members,
		params:  make(map[*ast.InstArg]bool, len(n.Params)),
	}
	for _, a := range n.Params {
		h.inst.params[a] = true
	}
}

// connection checks the name side of an instance argument against the
// ports (or parameters) of the instantiated component.
func (h *CreateReference) connection(n *ast.InstArg) {
	if !h.inst.members.IsValid() || n.Name == nil {
		return
	}
	param := h.inst.params[n]
	id, ok := h.ctx.Table.LookupLocal(h.inst.members, n.Name.Text())
	if ok {
		switch h.ctx.Table.Get(id).Kind {
		case symbols.SymbolPort:
			ok = !param
		case symbols.SymbolParameter, symbols.SymbolGeneric:
			ok = param
		default:
			ok = false
		}
	}
	if !ok {
		what := "port"
		if param {
			what = "parameter"
		}
		d, _ := FromError(&symbols.UnresolvedIdentifierError{
			Name:     n.Name.Text(),
			Location: n.Name.Location(),
			Span:     n.Name.Sp,
			Reason:   fmt.Sprintf("not a %s of %s", what, h.inst.name),
		})
		h.bag.Add(d)
		return
	}
	// короткая форма: location имени уже занят локальным сигналом
	if n.Value != nil {
		h.ctx.Refs.Add(n.Name.Location(), id)
	}
}

package handlers

import (
	"veryl/internal/ast"
	"veryl/internal/source"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// CreateSymbolTable stages the declarations of one file into a symbols.Unit.
// It never touches the table, so pass 1 can run for all files at once.
type CreateSymbolTable struct {
	base
	unit         *symbols.Unit
	current      *symbols.Decl
	typeGenerics map[string]bool
}

func NewCreateSymbolTable(file source.FileID) *CreateSymbolTable {
	return &CreateSymbolTable{base: newBase(), unit: symbols.NewUnit(file)}
}

// Unit returns the staged declarations.
func (h *CreateSymbolTable) Unit() *symbols.Unit { return h.unit }

func (h *CreateSymbolTable) Handle(p walker.Point, n ast.Node) {
	if p == walker.After {
		switch n.(type) {
		case *ast.ModuleDecl, *ast.InterfaceDecl, *ast.PackageDecl:
			h.current, h.typeGenerics = nil, nil
		}
		return
	}

	switch n := n.(type) {
	case *ast.ModuleDecl:
		h.open(n.Name, symbols.SymbolModule, &symbols.ModuleProperty{}, n.Generics)
	case *ast.InterfaceDecl:
		h.open(n.Name, symbols.SymbolInterface, &symbols.InterfaceProperty{}, n.Generics)
	case *ast.PackageDecl:
		h.open(n.Name, symbols.SymbolPackage, &symbols.PackageProperty{}, nil)
	case *ast.GenericParam:
		h.member(n.Name, symbols.SymbolGeneric, 0, &symbols.GenericProperty{IsType: n.IsType, Default: n.Default})
	case *ast.ParamDecl:
		h.member(n.Name, symbols.SymbolParameter, 0, &symbols.ParameterProperty{
			Type:  h.typeOf(n.Type),
			Value: n.Value,
			Local: n.Local,
		})
	case *ast.PortDecl:
		ty := h.typeOf(n.Type)
		h.member(n.Name, symbols.SymbolPort, attrFlags(n.Attrs), &symbols.PortProperty{Direction: n.Direction, Type: &ty})
	case *ast.VarDecl:
		h.member(n.Name, symbols.SymbolVariable, attrFlags(n.Attrs), &symbols.VariableProperty{Type: h.typeOf(n.Type)})
	case *ast.LetDecl:
		h.member(n.Name, symbols.SymbolVariable, attrFlags(n.Attrs)|symbols.FlagLet, &symbols.VariableProperty{Type: h.typeOf(n.Type)})
	case *ast.InstDecl:
		if n.Component != nil {
			h.member(n.Name, symbols.SymbolInstance, 0, &symbols.InstanceProperty{Component: symbols.PathOf(n.Component)})
		}
	}
}

func (h *CreateSymbolTable) open(name *ast.Identifier, kind symbols.SymbolKind, prop symbols.Property, generics []*ast.GenericParam) {
	h.current = nil
	if name == nil {
		return
	}
	h.current = declOf(name, kind, 0, prop)
	h.unit.Decls = append(h.unit.Decls, h.current)
	h.typeGenerics = make(map[string]bool, len(generics))
	for _, g := range generics {
		if g.IsType && g.Name != nil {
			h.typeGenerics[g.Name.Text()] = true
		}
	}
}

func (h *CreateSymbolTable) member(name *ast.Identifier, kind symbols.SymbolKind, flags symbols.SymbolFlags, prop symbols.Property) {
	if h.current == nil || name == nil {
		return
	}
	h.current.Children = append(h.current.Children, declOf(name, kind, flags, prop))
}

func (h *CreateSymbolTable) typeOf(te *ast.TypeExpr) symbols.Type {
	if te == nil {
		return symbols.Type{Kind: symbols.TypeLogic}
	}
	return symbols.TypeFromAST(te, func(name string) bool { return h.typeGenerics[name] })
}

func declOf(name *ast.Identifier, kind symbols.SymbolKind, flags symbols.SymbolFlags, prop symbols.Property) *symbols.Decl {
	return &symbols.Decl{
		Name:     name.Text(),
		Kind:     kind,
		Flags:    flags,
		Location: name.Location(),
		Span:     name.Sp,
		Prop:     prop,
	}
}

func attrFlags(attrs []*ast.Attribute) symbols.SymbolFlags {
	var f symbols.SymbolFlags
	if ast.HasAttr(attrs, "default_clock") {
		f |= symbols.FlagDefaultClock
	}
	if ast.HasAttr(attrs, "default_reset") {
		f |= symbols.FlagDefaultReset
	}
	return f
}

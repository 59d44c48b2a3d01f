package ast

import "veryl/internal/source"

// File is the root of one parsed source file.
type File struct {
	Pos
	ID    source.FileID
	Path  string
	Items []Item
}

// ModuleDecl: module Name::<T, W> #( params ) ( ports ) { items }
type ModuleDecl struct {
	Pos
	Attrs    []*Attribute
	Name     *Identifier
	Generics []*GenericParam
	Params   []*ParamDecl
	Ports    []*PortDecl
	LBrace   *Brace
	Items    []Item
	RBrace   *Brace
}

// InterfaceDecl: interface Name::<T> #( params ) { items }
type InterfaceDecl struct {
	Pos
	Attrs    []*Attribute
	Name     *Identifier
	Generics []*GenericParam
	Params   []*ParamDecl
	LBrace   *Brace
	Items    []Item
	RBrace   *Brace
}

// PackageDecl: package Name { items }
type PackageDecl struct {
	Pos
	Attrs  []*Attribute
	Name   *Identifier
	LBrace *Brace
	Items  []Item
	RBrace *Brace
}

func (*ModuleDecl) itemNode()    {}
func (*InterfaceDecl) itemNode() {}
func (*PackageDecl) itemNode()   {}

package symbols

import (
	"slices"

	"veryl/internal/source"
	"veryl/internal/token"
)

// Unit stages the declarations of one file. Pass 1 fills units in parallel;
// the driver commits them to the table in file order after the barrier.
type Unit struct {
	File  source.FileID
	Decls []*Decl
}

// Decl is a staged declaration; Children are the members of containers.
type Decl struct {
	Name     string
	Kind     SymbolKind
	Flags    SymbolFlags
	Location token.Location
	Span     source.Span
	Prop     Property
	Children []*Decl
}

func NewUnit(file source.FileID) *Unit {
	return &Unit{File: file}
}

// Commit declares every staged symbol of u. Duplicates are returned as
// *DuplicateDeclarationError and the duplicate (with its members) is skipped.
func (t *Table) Commit(u *Unit) []error {
	var errs []error
	ns := []string(nil)
	if t.project != "" {
		ns = []string{t.project}
	}
	for _, d := range u.Decls {
		t.commitDecl(d, t.root, ns, &errs)
	}
	return errs
}

func (t *Table) commitDecl(d *Decl, scope ScopeID, ns []string, errs *[]error) SymbolID {
	sym := &Symbol{
		Kind:      d.Kind,
		Flags:     d.Flags,
		Location:  d.Location,
		Span:      d.Span,
		Namespace: ns,
		Prop:      d.Prop,
	}
	id, err := t.Declare(d.Name, scope, sym)
	if err != nil {
		*errs = append(*errs, err)
		return NoSymbolID
	}

	kind, container := memberScopeKind(d.Kind)
	if !container {
		return id
	}
	members := t.Scopes.New(kind, scope, id, d.Name)
	childNS := append(slices.Clone(ns), d.Name)
	children := make([]SymbolID, 0, len(d.Children))
	for _, c := range d.Children {
		if cid := t.commitDecl(c, members, childNS, errs); cid.IsValid() {
			children = append(children, cid)
		}
	}

	switch p := d.Prop.(type) {
	case *ModuleProperty:
		p.Members = members
		p.Generics = t.filterKind(children, SymbolGeneric)
		p.Params = t.filterKind(children, SymbolParameter)
		p.Ports = t.filterKind(children, SymbolPort)
		p.DefaultClock = t.defaultSignal(children, FlagDefaultClock, (*Type).IsClock)
		p.DefaultReset = t.defaultSignal(children, FlagDefaultReset, (*Type).IsReset)
	case *InterfaceProperty:
		p.Members = members
		p.Generics = t.filterKind(children, SymbolGeneric)
		p.Params = t.filterKind(children, SymbolParameter)
	case *PackageProperty:
		p.Members = members
	}
	return id
}

func memberScopeKind(k SymbolKind) (ScopeKind, bool) {
	switch k {
	case SymbolModule:
		return ScopeModule, true
	case SymbolInterface:
		return ScopeInterface, true
	case SymbolPackage:
		return ScopePackage, true
	}
	return ScopeInvalid, false
}

func (t *Table) filterKind(ids []SymbolID, kind SymbolKind) []SymbolID {
	var out []SymbolID
	for _, id := range ids {
		if t.Get(id).Kind == kind {
			out = append(out, id)
		}
	}
	return out
}

// defaultSignal picks the module default clock or reset: an explicitly
// attributed port or variable first, otherwise the only scalar port of the
// matching kind.
func (t *Table) defaultSignal(ids []SymbolID, flag SymbolFlags, match func(*Type) bool) SymbolID {
	unique, count := NoSymbolID, 0
	for _, id := range ids {
		s := t.Get(id)
		ty, ok := s.SignalType()
		if !ok || !match(ty) {
			continue
		}
		if s.Flags&flag != 0 {
			return id
		}
		if s.Kind == SymbolPort && ty.SelectorCount() == 0 {
			unique = id
			count++
		}
	}
	if count == 1 {
		return unique
	}
	return NoSymbolID
}

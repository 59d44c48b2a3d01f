package symbols

// ResolvedSymbol is the result of a successful resolution.
type ResolvedSymbol struct {
	Found    *Symbol
	FullPath []SymbolID // one symbol per path segment
	Selects  int        // selects applied to Found
}

const maxMemberDepth = 16

// Resolve looks up path starting from scope. The first segment is searched
// in scope, its ancestors and the project root; each following segment is
// searched in the member namespace of the previous symbol. Resolve never
// mutates the table.
func (t *Table) Resolve(path Path, scope ScopeID) (ResolvedSymbol, error) {
	return t.resolve(path, scope, 0)
}

func (t *Table) resolve(path Path, scope ScopeID, depth int) (ResolvedSymbol, error) {
	if len(path.Segments) == 0 {
		return ResolvedSymbol{}, &UnresolvedIdentifierError{Reason: "empty path", Span: path.Span}
	}
	first := path.Segments[0]
	id, ok := t.Lookup(scope, first.Name)
	if !ok {
		return ResolvedSymbol{}, unresolved(path, first, "")
	}
	res := ResolvedSymbol{FullPath: []SymbolID{id}, Selects: first.Selects}
	for _, seg := range path.Segments[1:] {
		members, err := t.memberScope(t.Get(id), depth)
		if err != nil {
			return ResolvedSymbol{}, err
		}
		if !members.IsValid() {
			err := unresolved(path, seg, t.Name(id)+" has no members")
			err.Opaque = t.isGeneric(t.Get(id), depth)
			return ResolvedSymbol{}, err
		}
		if id, ok = t.LookupLocal(members, seg.Name); !ok {
			return ResolvedSymbol{}, unresolved(path, seg, "")
		}
		res.FullPath = append(res.FullPath, id)
		res.Selects = seg.Selects
	}
	res.Found = t.Get(id)
	return res, nil
}

// memberScope returns the namespace reachable through sym with '.' or '::'.
func (t *Table) memberScope(sym *Symbol, depth int) (ScopeID, error) {
	if m := sym.Members(); m.IsValid() {
		return m, nil
	}
	if depth >= maxMemberDepth {
		return NoScopeID, nil
	}
	var via *Path
	switch p := sym.Prop.(type) {
	case *InstanceProperty:
		via = &p.Component
	case *PortProperty:
		if p.Type != nil && p.Type.Kind == TypeUserDefined {
			via = p.Type.User
		}
	case *VariableProperty:
		if p.Type.Kind == TypeUserDefined {
			via = p.Type.User
		}
	}
	if via == nil {
		return NoScopeID, nil
	}
	target, err := t.resolve(*via, sym.Scope, depth+1)
	if err != nil {
		return NoScopeID, err
	}
	return t.memberScope(target.Found, depth+1)
}

// isGeneric reports whether sym is a generic parameter or is typed or
// instantiated through one.
func (t *Table) isGeneric(sym *Symbol, depth int) bool {
	switch p := sym.Prop.(type) {
	case *GenericProperty:
		return true
	case *InstanceProperty:
		if depth >= maxMemberDepth {
			return false
		}
		target, err := t.resolve(p.Component, sym.Scope, depth+1)
		return err == nil && t.isGeneric(target.Found, depth+1)
	}
	ty, ok := sym.SignalType()
	return ok && ty.Kind == TypeGeneric
}

func unresolved(path Path, seg PathSegment, reason string) *UnresolvedIdentifierError {
	return &UnresolvedIdentifierError{
		Name:     seg.Name,
		Path:     path.String(),
		Location: seg.Location,
		Span:     seg.Span,
		Reason:   reason,
	}
}

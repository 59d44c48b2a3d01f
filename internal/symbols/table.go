package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"veryl/internal/source"
	"veryl/internal/token"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table is the project-wide symbol table.
//
// It is written only by Declare/Commit, which the driver calls from a single
// goroutine between passes; afterwards Resolve and the getters are safe for
// concurrent readers.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	hints   Hints
	project string
	root    ScopeID
}

// NewTable builds a fresh table. If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner, project string) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{Strings: strings, hints: h, project: project}
	t.Reset()
	return t
}

// Reset drops every scope and symbol, starting a new session.
func (t *Table) Reset() {
	scopeCap, err := safecast.Conv[uint32](t.hints.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](t.hints.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t.Scopes = NewScopes(scopeCap)
	t.Symbols = NewSymbols(symCap)
	t.root = t.Scopes.New(ScopeProject, NoScopeID, NoSymbolID, t.project)
}

// Root returns the project-global scope.
func (t *Table) Root() ScopeID { return t.root }

// Project returns the project name used as the outermost namespace.
func (t *Table) Project() string { return t.project }

// Get returns the symbol for id, or nil.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Name returns the text of a symbol name.
func (t *Table) Name(id SymbolID) string {
	if s := t.Get(id); s != nil {
		return t.Strings.MustLookup(s.Name)
	}
	return ""
}

// SymbolAt returns the symbol declared by the identifier at loc.
func (t *Table) SymbolAt(loc token.Location) (*Symbol, bool) {
	id, ok := t.Symbols.At(loc)
	if !ok {
		return nil, false
	}
	return t.Get(id), true
}

// Declare binds name in scope. A name already bound in the same scope is
// rejected with *DuplicateDeclarationError; outer bindings are shadowed.
func (t *Table) Declare(name string, scope ScopeID, sym *Symbol) (SymbolID, error) {
	if t.Scopes.Get(scope) == nil {
		return NoSymbolID, fmt.Errorf("declare %s: invalid scope %d", name, scope)
	}
	nameID := t.Strings.Intern(name)
	if prev, ok := t.Scopes.local(scope, nameID); ok {
		return NoSymbolID, &DuplicateDeclarationError{
			Name:         name,
			Location:     sym.Location,
			Span:         sym.Span,
			Previous:     prev,
			PreviousSpan: t.Get(prev).Span,
		}
	}
	sym.Name = nameID
	sym.Scope = scope
	id := t.Symbols.New(sym)
	t.Scopes.bind(scope, nameID, id)
	return id, nil
}

// LookupLocal finds name in scope only.
func (t *Table) LookupLocal(scope ScopeID, name string) (SymbolID, bool) {
	nameID, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	return t.Scopes.local(scope, nameID)
}

// Lookup finds name in scope and its ancestors up to the project root.
func (t *Table) Lookup(scope ScopeID, name string) (SymbolID, bool) {
	for cur := scope; cur.IsValid(); {
		if id, ok := t.LookupLocal(cur, name); ok {
			return id, true
		}
		sc := t.Scopes.Get(cur)
		if sc == nil {
			break
		}
		cur = sc.Parent
	}
	return NoSymbolID, false
}

// Validate checks internal consistency of scopes and symbols.
func (t *Table) Validate() error {
	var errs []error
	for i := range t.Symbols.Data() {
		sym := &t.Symbols.Data()[i]
		sc := t.Scopes.Get(sym.Scope)
		if sc == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", sym.ID, sym.Scope))
			continue
		}
		if sc.NameIndex[sym.Name] != sym.ID {
			errs = append(errs, fmt.Errorf("symbol %d (%s) missing from scope %d index", sym.ID, t.Strings.MustLookup(sym.Name), sym.Scope))
		}
		if m := sym.Members(); m.IsValid() {
			if ms := t.Scopes.Get(m); ms == nil || ms.Owner != sym.ID {
				errs = append(errs, fmt.Errorf("symbol %d has foreign member scope %d", sym.ID, m))
			}
		}
	}
	return errors.Join(errs...)
}

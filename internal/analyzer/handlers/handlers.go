// Package handlers holds the walker handlers of the three analysis passes.
//
// Pass 1 handlers only read the syntax tree and stage declarations. Pass 2
// and pass 3 handlers read the committed symbol table and write to their own
// structures or to their diagnostic list.
package handlers

import (
	"errors"
	"fmt"

	"veryl/internal/ast"
	"veryl/internal/dag"
	"veryl/internal/diag"
	"veryl/internal/source"
	"veryl/internal/symbols"
	"veryl/internal/walker"
)

// Context is the shared, project-wide state handed to pass 2 and pass 3
// handlers. Every field is safe for concurrent use by per-file handlers.
type Context struct {
	Table   *symbols.Table
	Refs    *symbols.References
	Assigns *symbols.AssignList
	Dag     *dag.TypeDag
}

func NewContext(table *symbols.Table) *Context {
	return &Context{
		Table:   table,
		Refs:    symbols.NewReferences(),
		Assigns: symbols.NewAssignList(),
		Dag:     dag.NewTypeDag(),
	}
}

type base struct {
	bag *diag.Bag
}

func newBase() base { return base{bag: diag.NewBag(0)} }

func (b *base) Diagnostics() []diag.Diagnostic { return b.bag.Items() }

func (b *base) report(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(diag.BagReporter{Bag: b.bag}, code, sp, fmt.Sprintf(format, args...))
}

// scopeTracker follows the member scope of the component being walked.
type scopeTracker struct {
	table     *symbols.Table
	scope     symbols.ScopeID
	component *symbols.Symbol
}

func newScopeTracker(t *symbols.Table) scopeTracker {
	return scopeTracker{table: t, scope: t.Root()}
}

// track returns true when n opened or closed a component.
func (s *scopeTracker) track(p walker.Point, n ast.Node) bool {
	var name *ast.Identifier
	switch n := n.(type) {
	case *ast.ModuleDecl:
		name = n.Name
	case *ast.InterfaceDecl:
		name = n.Name
	case *ast.PackageDecl:
		name = n.Name
	default:
		return false
	}
	if p == walker.After {
		s.scope, s.component = s.table.Root(), nil
		return true
	}
	// повторно объявленный компонент не попал в таблицу: внутрь не заходим
	s.scope, s.component = symbols.NoScopeID, nil
	if name == nil {
		return true
	}
	if sym, ok := s.table.SymbolAt(name.Location()); ok {
		s.scope, s.component = sym.Members(), sym
	}
	return true
}

func (s *scopeTracker) active() bool { return s.scope.IsValid() }

// FromError converts a symbol table error into a diagnostic.
func FromError(err error) (diag.Diagnostic, bool) {
	var unres *symbols.UnresolvedIdentifierError
	if errors.As(err, &unres) {
		return diag.NewError(diag.SemaUnresolvedIdentifier, unres.Span, unres.Error()), true
	}
	var dup *symbols.DuplicateDeclarationError
	if errors.As(err, &dup) {
		d := diag.NewError(diag.SemaDuplicateDeclaration, dup.Span, dup.Error())
		if dup.PreviousSpan != (source.Span{}) {
			d = d.WithNote(dup.PreviousSpan, "previously declared here")
		}
		return d, true
	}
	return diag.Diagnostic{}, false
}

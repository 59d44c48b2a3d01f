package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"veryl/internal/source"
	"veryl/internal/token"
)

// arena is a slice with slot 0 reserved for the invalid id.
type arena[T any] struct {
	what string
	data []T
}

func newArena[T any](what string, capacity, fallback uint32) arena[T] {
	if capacity == 0 {
		capacity = fallback
	}
	return arena[T]{what: what, data: make([]T, 1, capacity+1)}
}

// next returns the index the following append will occupy.
func (a *arena[T]) next() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", a.what, err))
	}
	return n
}

func (a *arena[T]) at(i uint32) *T {
	if i == 0 || int(i) >= len(a.data) {
		return nil
	}
	return &a.data[i]
}

func (a *arena[T]) items() []T {
	if len(a.data) <= 1 {
		return nil
	}
	return a.data[1:]
}

// Scopes holds every namespace of the project: the root, then one member
// scope per module, interface and package in commit order.
type Scopes struct {
	arena[Scope]
}

func NewScopes(capacity uint32) *Scopes {
	return &Scopes{newArena[Scope]("scopes", capacity, 32)}
}

// New opens a scope owned by owner inside parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner SymbolID, name string) ScopeID {
	id := ScopeID(s.next())
	s.data = append(s.data, Scope{
		ID:        id,
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Name:      name,
		NameIndex: make(map[source.StringID]SymbolID),
	})
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

func (s *Scopes) Get(id ScopeID) *Scope { return s.at(uint32(id)) }

// Len excludes the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// local finds name bound directly in scope.
func (s *Scopes) local(scope ScopeID, name source.StringID) (SymbolID, bool) {
	sc := s.Get(scope)
	if sc == nil {
		return NoSymbolID, false
	}
	id, ok := sc.NameIndex[name]
	return id, ok
}

// bind records id under name in scope. The caller has checked for duplicates.
func (s *Scopes) bind(scope ScopeID, name source.StringID, id SymbolID) {
	sc := s.Get(scope)
	sc.NameIndex[name] = id
	sc.Symbols = append(sc.Symbols, id)
}

// Symbols stores committed symbols. Besides the arena it indexes every
// symbol by the location of its declaring identifier and keeps, per source
// file, the ids in commit order.
type Symbols struct {
	arena[Symbol]
	byLocation map[token.Location]SymbolID
	byFile     map[source.FileID][]SymbolID
}

func NewSymbols(capacity uint32) *Symbols {
	return &Symbols{
		arena:      newArena[Symbol]("symbols", capacity, 64),
		byLocation: make(map[token.Location]SymbolID),
		byFile:     make(map[source.FileID][]SymbolID),
	}
}

// New stores sym, assigns its ID and indexes it.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	id := SymbolID(s.next())
	sym.ID = id
	s.data = append(s.data, *sym)
	s.byLocation[sym.Location] = id
	s.byFile[sym.Location.File] = append(s.byFile[sym.Location.File], id)
	return id
}

func (s *Symbols) Get(id SymbolID) *Symbol { return s.at(uint32(id)) }

// At returns the symbol declared by the identifier at loc.
func (s *Symbols) At(loc token.Location) (SymbolID, bool) {
	id, ok := s.byLocation[loc]
	return id, ok
}

// InFile lists the symbols declared in file, in commit order.
func (s *Symbols) InFile(file source.FileID) []SymbolID {
	return s.byFile[file]
}

// Len excludes the sentinel.
func (s *Symbols) Len() int { return len(s.data) - 1 }

// Data is the arena storage without the sentinel, in commit order.
func (s *Symbols) Data() []Symbol { return s.items() }

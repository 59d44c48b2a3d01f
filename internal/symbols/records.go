package symbols

import (
	"cmp"
	"slices"
	"sync"

	"veryl/internal/source"
	"veryl/internal/token"
)

// References maps identifier occurrences to the symbols they resolve to.
// Filled concurrently by pass 2, one writer per file.
type References struct {
	mu   sync.RWMutex
	byAt map[token.Location]SymbolID
}

func NewReferences() *References {
	return &References{byAt: make(map[token.Location]SymbolID)}
}

func (r *References) Add(loc token.Location, id SymbolID) {
	r.mu.Lock()
	r.byAt[loc] = id
	r.mu.Unlock()
}

func (r *References) Get(loc token.Location) (SymbolID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byAt[loc]
	return id, ok
}

func (r *References) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byAt)
}

// AssignKind names the construct an assignment appears in.
type AssignKind uint8

const (
	AssignContinuous AssignKind = iota // assign
	AssignLet
	AssignFF
	AssignComb
	AssignInstPort // output connection of an instance
)

func (k AssignKind) String() string {
	switch k {
	case AssignContinuous:
		return "assign"
	case AssignLet:
		return "let"
	case AssignFF:
		return "always_ff"
	case AssignComb:
		return "always_comb"
	case AssignInstPort:
		return "inst"
	}
	return "invalid"
}

// Assign is one assignment site.
type Assign struct {
	Target   SymbolID
	Path     string
	Kind     AssignKind
	Location token.Location
	Span     source.Span
}

// AssignList collects assignment sites of the whole project.
type AssignList struct {
	mu    sync.Mutex
	items []Assign
}

func NewAssignList() *AssignList { return &AssignList{} }

func (l *AssignList) Add(a Assign) {
	l.mu.Lock()
	l.items = append(l.items, a)
	l.mu.Unlock()
}

// Items returns a copy sorted by file, line and column.
func (l *AssignList) Items() []Assign {
	l.mu.Lock()
	out := slices.Clone(l.items)
	l.mu.Unlock()
	slices.SortStableFunc(out, func(a, b Assign) int {
		return cmp.Or(
			cmp.Compare(a.Location.File, b.Location.File),
			cmp.Compare(a.Location.Line, b.Location.Line),
			cmp.Compare(a.Location.Column, b.Location.Column),
		)
	})
	return out
}

func (l *AssignList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

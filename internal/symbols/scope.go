package symbols

import "veryl/internal/source"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid   ScopeKind = iota
	ScopeProject             // project-global root
	ScopeModule              // members of a module
	ScopeInterface           // members of an interface
	ScopePackage             // members of a package
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProject:
		return "project"
	case ScopeModule:
		return "module"
	case ScopeInterface:
		return "interface"
	case ScopePackage:
		return "package"
	default:
		return "invalid"
	}
}

// Scope is a namespace with a parent chain. Names are unique inside one
// scope; inner scopes may shadow outer names.
type Scope struct {
	ID        ScopeID
	Kind      ScopeKind
	Parent    ScopeID
	Owner     SymbolID // declaring symbol; NoSymbolID for the project root
	Name      string
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID // declaration order
	Children  []ScopeID
}

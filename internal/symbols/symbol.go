package symbols

import (
	"strings"

	"veryl/internal/ast"
	"veryl/internal/source"
	"veryl/internal/token"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolModule
	SymbolInterface
	SymbolPackage
	SymbolPort
	SymbolVariable
	SymbolParameter
	SymbolInstance
	SymbolGeneric
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolInterface:
		return "interface"
	case SymbolPackage:
		return "package"
	case SymbolPort:
		return "port"
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolInstance:
		return "instance"
	case SymbolGeneric:
		return "generic"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	FlagDefaultClock SymbolFlags = 1 << iota // #[default_clock]
	FlagDefaultReset                         // #[default_reset]
	FlagLet                                  // variable introduced by let
)

// Symbol is a named declaration. Symbols are created by Table.Commit and
// never removed during a session.
type Symbol struct {
	ID        SymbolID
	Name      source.StringID
	Kind      SymbolKind
	Flags     SymbolFlags
	Scope     ScopeID // declaring scope
	Location  token.Location
	Span      source.Span
	Namespace []string
	Prop      Property
}

// Property is the kind-specific payload of a symbol.
type Property interface {
	property()
}

type ModuleProperty struct {
	Generics     []SymbolID
	Params       []SymbolID
	Ports        []SymbolID
	DefaultClock SymbolID
	DefaultReset SymbolID
	Members      ScopeID
}

type InterfaceProperty struct {
	Generics []SymbolID
	Params   []SymbolID
	Members  ScopeID
}

type PackageProperty struct {
	Members ScopeID
}

type PortProperty struct {
	Direction ast.Direction
	Type      *Type
}

type VariableProperty struct {
	Type Type
}

type ParameterProperty struct {
	Type  Type
	Value ast.Expr
	Local bool
}

type GenericProperty struct {
	IsType  bool
	Default ast.Expr
}

type InstanceProperty struct {
	Component Path
}

func (*ModuleProperty) property()    {}
func (*InterfaceProperty) property() {}
func (*PackageProperty) property()   {}
func (*PortProperty) property()      {}
func (*VariableProperty) property()  {}
func (*ParameterProperty) property() {}
func (*GenericProperty) property()   {}
func (*InstanceProperty) property()  {}

// Module returns the module payload, if s is a module.
func (s *Symbol) Module() (*ModuleProperty, bool) {
	p, ok := s.Prop.(*ModuleProperty)
	return p, ok
}

// Members returns the member scope of modules, interfaces and packages.
func (s *Symbol) Members() ScopeID {
	switch p := s.Prop.(type) {
	case *ModuleProperty:
		return p.Members
	case *InterfaceProperty:
		return p.Members
	case *PackageProperty:
		return p.Members
	}
	return NoScopeID
}

// SignalType returns the type of ports and variables.
func (s *Symbol) SignalType() (*Type, bool) {
	switch p := s.Prop.(type) {
	case *PortProperty:
		return p.Type, p.Type != nil
	case *VariableProperty:
		return &p.Type, true
	}
	return nil, false
}

// IsSignal reports whether s is a port or a variable.
func (s *Symbol) IsSignal() bool {
	return s.Kind == SymbolPort || s.Kind == SymbolVariable
}

// QualifiedName joins the namespace and the symbol name with '.'.
func (s *Symbol) QualifiedName(t *Table) string {
	name := t.Strings.MustLookup(s.Name)
	if len(s.Namespace) == 0 {
		return name
	}
	return strings.Join(s.Namespace, ".") + "." + name
}

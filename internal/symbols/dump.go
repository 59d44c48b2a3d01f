package symbols

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Entry is one row of a symbol table dump.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Location string `json:"location" yaml:"location"`
}

// Entries lists every symbol sorted by qualified name.
func (t *Table) Entries() []Entry {
	syms := t.Symbols.Data()
	out := make([]Entry, 0, len(syms))
	for i := range syms {
		s := &syms[i]
		e := Entry{
			Name:     s.QualifiedName(t),
			Kind:     s.Kind.String(),
			Location: s.Location.String(),
		}
		if ty, ok := s.SignalType(); ok {
			e.Type = ty.String()
		}
		e.Detail = t.detail(s)
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b Entry) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func (t *Table) detail(s *Symbol) string {
	switch p := s.Prop.(type) {
	case *ModuleProperty:
		var parts []string
		if p.DefaultClock.IsValid() {
			parts = append(parts, "default_clock="+t.Name(p.DefaultClock))
		}
		if p.DefaultReset.IsValid() {
			parts = append(parts, "default_reset="+t.Name(p.DefaultReset))
		}
		return strings.Join(parts, " ")
	case *PortProperty:
		return p.Direction.String()
	case *ParameterProperty:
		if p.Local {
			return "local " + p.Type.String()
		}
		return p.Type.String()
	case *InstanceProperty:
		return p.Component.String()
	case *GenericProperty:
		if p.IsType {
			return "type"
		}
	}
	return ""
}

// Dump renders the table as aligned text, one symbol per line.
func (t *Table) Dump() string {
	entries := t.Entries()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-*s : %-9s", width, e.Name, e.Kind)
		if e.Type != "" {
			fmt.Fprintf(&b, " %s", e.Type)
		}
		if e.Detail != "" {
			fmt.Fprintf(&b, " (%s)", e.Detail)
		}
		fmt.Fprintf(&b, " @ %s\n", e.Location)
	}
	return b.String()
}

// Namespaces lists every scope as its dotted path with member count.
func (t *Table) Namespaces() []string {
	var out []string
	var walk func(id ScopeID, prefix string)
	walk = func(id ScopeID, prefix string) {
		sc := t.Scopes.Get(id)
		if sc == nil {
			return
		}
		name := sc.Name
		if prefix != "" {
			name = prefix + "." + sc.Name
		}
		if name == "" {
			name = "<root>"
		}
		out = append(out, fmt.Sprintf("%s (%s, %d)", name, sc.Kind, len(sc.Symbols)))
		for _, ch := range sc.Children {
			walk(ch, strings.TrimPrefix(name, "<root>"))
		}
	}
	walk(t.root, "")
	return out
}

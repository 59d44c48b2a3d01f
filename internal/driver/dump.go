package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"veryl/internal/symbols"
)

// DumpFormat selects the dump encoding.
type DumpFormat string

const (
	DumpText DumpFormat = "text"
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
	// DumpMsgpack is a binary snapshot with the JSON key names.
	DumpMsgpack DumpFormat = "msgpack"
)

// ParseDumpFormat converts a flag value to a DumpFormat.
func ParseDumpFormat(s string) (DumpFormat, error) {
	switch f := DumpFormat(strings.ToLower(s)); f {
	case DumpText, DumpJSON, DumpYAML, DumpMsgpack:
		return f, nil
	case "":
		return DumpText, nil
	}
	return "", fmt.Errorf("unknown dump format %q (expected: text|json|yaml|msgpack)", s)
}

// DumpOptions selects the tables to dump.
type DumpOptions struct {
	SymbolTable    bool
	AssignList     bool
	NamespaceTable bool
	TypeDag        bool
	Format         DumpFormat
}

// AssignEntry is one row of the assign list dump.
type AssignEntry struct {
	Target   string `json:"target" yaml:"target"`
	Path     string `json:"path" yaml:"path"`
	Kind     string `json:"kind" yaml:"kind"`
	Location string `json:"location" yaml:"location"`
}

// DagEntry is one component of the type dependency graph.
type DagEntry struct {
	Name string   `json:"name" yaml:"name"`
	Deps []string `json:"deps,omitempty" yaml:"deps,omitempty"`
}

// Dump is the serialisable view of an analysis result.
type Dump struct {
	Project        string          `json:"project" yaml:"project"`
	Session        string          `json:"session" yaml:"session"`
	Fingerprint    string          `json:"fingerprint" yaml:"fingerprint"`
	ClockType      string          `json:"clock_type,omitempty" yaml:"clock_type,omitempty"`
	ResetType      string          `json:"reset_type,omitempty" yaml:"reset_type,omitempty"`
	SymbolTable    []symbols.Entry `json:"symbol_table,omitempty" yaml:"symbol_table,omitempty"`
	AssignList     []AssignEntry   `json:"assign_list,omitempty" yaml:"assign_list,omitempty"`
	NamespaceTable []string        `json:"namespace_table,omitempty" yaml:"namespace_table,omitempty"`
	TypeDag        []DagEntry      `json:"type_dag,omitempty" yaml:"type_dag,omitempty"`
}

// BuildDump collects the selected tables of res.
func BuildDump(res *Result, opts DumpOptions) Dump {
	a := res.Analyzer
	table := a.Table()
	d := Dump{
		Project:     table.Project(),
		Session:     a.Session().ID.String(),
		Fingerprint: res.Fingerprint.String(),
	}
	if md := res.Metadata; md != nil {
		d.ClockType = string(md.ClockType)
		d.ResetType = string(md.ResetType)
	}
	if opts.SymbolTable {
		d.SymbolTable = table.Entries()
	}
	if opts.AssignList {
		for _, as := range a.Context().Assigns.Items() {
			d.AssignList = append(d.AssignList, AssignEntry{
				Target:   qualified(table, as.Target),
				Path:     as.Path,
				Kind:     as.Kind.String(),
				Location: as.Location.String(),
			})
		}
	}
	if opts.NamespaceTable {
		d.NamespaceTable = table.Namespaces()
	}
	if opts.TypeDag {
		for _, n := range a.Context().Dag.Nodes() {
			e := DagEntry{Name: n.Name}
			for _, dep := range n.Deps {
				if !slices.Contains(e.Deps, dep.Name) {
					e.Deps = append(e.Deps, dep.Name)
				}
			}
			d.TypeDag = append(d.TypeDag, e)
		}
	}
	return d
}

func qualified(t *symbols.Table, id symbols.SymbolID) string {
	if s := t.Get(id); s != nil {
		return s.QualifiedName(t)
	}
	return "<unknown>"
}

// WriteDump renders the selected tables of res to w.
func WriteDump(w io.Writer, res *Result, opts DumpOptions) error {
	switch opts.Format {
	case DumpJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(BuildDump(res, opts))
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(BuildDump(res, opts)); err != nil {
			return err
		}
		return enc.Close()
	case DumpMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(BuildDump(res, opts))
	}

	a := res.Analyzer
	var sb strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&sb, "%s [\n", title)
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			if line != "" {
				sb.WriteString("    " + line + "\n")
			}
		}
		sb.WriteString("]\n")
	}
	if opts.SymbolTable {
		section("SymbolTable", a.Table().Dump())
	}
	if opts.AssignList {
		var b strings.Builder
		for _, e := range BuildDump(res, DumpOptions{AssignList: true}).AssignList {
			fmt.Fprintf(&b, "%s -> %s (%s) @ %s\n", e.Path, e.Target, e.Kind, e.Location)
		}
		section("AssignList", b.String())
	}
	if opts.NamespaceTable {
		section("NamespaceTable", strings.Join(a.Table().Namespaces(), "\n"))
	}
	if opts.TypeDag {
		section("TypeDag", a.Context().Dag.Dump())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

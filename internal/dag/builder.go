package dag

import (
	"slices"
	"strings"
	"sync"

	"veryl/internal/diag"
	"veryl/internal/source"
)

// TypeDag collects component dependencies while files are analysed in
// parallel, then sorts them once every file is done.
type TypeDag struct {
	mu    sync.Mutex
	nodes map[string]*Node
}

func NewTypeDag() *TypeDag {
	return &TypeDag{nodes: make(map[string]*Node)}
}

// AddNode registers a declared component.
func (d *TypeDag) AddNode(name string, sp source.Span) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.nodes[name]; ok {
		if n.Span == (source.Span{}) {
			n.Span = sp
		}
		return
	}
	d.nodes[name] = &Node{Name: name, Span: sp}
}

// AddEdge records that from depends on to.
func (d *TypeDag) AddEdge(from, to string, sp source.Span) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.nodes[from]
	if !ok {
		n = &Node{Name: from}
		d.nodes[from] = n
	}
	n.Deps = append(n.Deps, Dep{Name: to, Span: sp})
}

// Nodes returns a snapshot sorted by name.
func (d *TypeDag) Nodes() []Node {
	d.mu.Lock()
	out := make([]Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		cp := *n
		cp.Deps = slices.Clone(n.Deps)
		out = append(out, cp)
	}
	d.mu.Unlock()
	slices.SortFunc(out, func(a, b Node) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Sort builds the graph, orders it and reports cycles to r.
func (d *TypeDag) Sort(r diag.Reporter) (Index, *Topo) {
	nodes := d.Nodes()
	idx := BuildIndex(nodes)
	g, slots := BuildGraph(idx, nodes, r)
	topo := ToposortKahn(g)
	ReportCycles(idx, slots, topo, r)
	return idx, topo
}

// Dump renders "name -> dep, dep" lines in dependency order.
func (d *TypeDag) Dump() string {
	nodes := d.Nodes()
	var b strings.Builder
	for _, n := range nodes {
		deps := make([]string, 0, len(n.Deps))
		for _, dep := range n.Deps {
			if !slices.Contains(deps, dep.Name) {
				deps = append(deps, dep.Name)
			}
		}
		slices.Sort(deps)
		b.WriteString(n.Name)
		if len(deps) > 0 {
			b.WriteString(" -> ")
			b.WriteString(strings.Join(deps, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

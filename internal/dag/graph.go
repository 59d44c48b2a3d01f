package dag

import (
	"fmt"
	"slices"
	"strings"

	"veryl/internal/diag"
	"veryl/internal/source"
)

// Node is a component (module, interface or package) with the components
// it depends on: instantiated components, user-defined types and packages.
type Node struct {
	Name string
	Span source.Span
	Deps []Dep
}

type Dep struct {
	Name string
	Span source.Span
}

type Graph struct {
	Edges   [][]NodeID // Edges[from] = []to
	Indeg   []int      // входящие степени для Kahn (учитывает только присутствующие узлы)
	Present []bool     // узел объявлен в проекте, а не только упомянут
}

type Slot struct {
	Node    Node
	Present bool
}

// BuildGraph links nodes by name. Dependencies on names that are not nodes
// are dropped; resolution reports those. A self dependency is reported
// right away since Kahn never sees it as a cycle.
func BuildGraph(idx Index, nodes []Node, r diag.Reporter) (Graph, []Slot) {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]NodeID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]Slot, nodeCount)

	for _, n := range nodes {
		id, ok := idx.NameToID[n.Name]
		if !ok {
			continue
		}
		slot := &slots[int(id)]
		if slot.Present {
			// тот же компонент из другого прохода: объединяем зависимости
			slot.Node.Deps = append(slot.Node.Deps, n.Deps...)
			continue
		}
		slot.Node = n
		slot.Present = true
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present || len(slot.Node.Deps) == 0 {
			continue
		}
		seen := make(map[NodeID]struct{}, len(slot.Node.Deps))
		for _, dep := range slot.Node.Deps {
			toID, ok := idx.NameToID[dep.Name]
			if !ok || !g.Present[int(toID)] {
				continue
			}
			if NodeID(from) == toID { // #nosec G115 -- from indexes IDToName
				if r != nil {
					r.Report(diag.SemaCyclicTypeDependency, diag.SevError, dep.Span,
						fmt.Sprintf("%s depends on itself", slot.Node.Name), nil)
				}
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}
			g.Edges[from] = append(g.Edges[from], toID)
			g.Indeg[int(toID)]++
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, slots
}

// ReportCycles emits one diagnostic per node left in a cycle.
func ReportCycles(idx Index, slots []Slot, topo *Topo, r diag.Reporter) {
	if r == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		names = append(names, idx.IDToName[int(id)])
	}
	summary := strings.Join(names, " -> ")

	for _, id := range topo.Cycles {
		slot := slots[int(id)]
		if !slot.Present {
			continue
		}
		msg := fmt.Sprintf("%s participates in a dependency cycle: %s", slot.Node.Name, summary)
		r.Report(diag.SemaCyclicTypeDependency, diag.SevError, slot.Node.Span, msg, nil)
	}
}

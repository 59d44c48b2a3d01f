package dag

import (
	"sort"
)

type NodeID uint32

type Index struct {
	NameToID map[string]NodeID
	IDToName []string
}

// собрать уникальные имена (узлы и их зависимости), sort.Strings, раздать ID по порядку
func BuildIndex(nodes []Node) Index {
	uniq := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Name != "" {
			uniq[n.Name] = struct{}{}
		}
		for _, dep := range n.Deps {
			if dep.Name == "" {
				continue
			}
			uniq[dep.Name] = struct{}{}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]NodeID, len(names))
	for i, name := range names {
		nameToID[name] = NodeID(i) // #nosec G115 -- components count fits uint32
	}

	return Index{
		NameToID: nameToID,
		IDToName: names,
	}
}

// Name returns the node name for id, or "" when id is out of range.
func (idx Index) Name(id NodeID) string {
	if int(id) >= len(idx.IDToName) {
		return ""
	}
	return idx.IDToName[id]
}

// Package testkit holds checks shared by parser and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"veryl/internal/ast"
	"veryl/internal/source"
	"veryl/internal/walker"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every node span belongs to sf and lies within its content
// 2) every item span is non-empty and fully contained in file.Span
// 3) file.Span covers the union of item spans (if any items exist)
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) все узлы дерева
	var bad error
	walker.Walk(f, walker.HandlerFunc(func(p walker.Point, n ast.Node) {
		if bad != nil || p != walker.Before {
			return
		}
		sp := n.Span()
		switch {
		case sp.File != sf.ID:
			bad = fmt.Errorf("%T span points to different file id: got=%d want=%d", n, sp.File, sf.ID)
		case sp.End < sp.Start:
			bad = fmt.Errorf("%T span is inverted: %v", n, sp)
		case sp.End > lenContent:
			bad = fmt.Errorf("%T span end beyond content: %d > %d", n, sp.End, lenContent)
		}
	}))
	if bad != nil {
		return bad
	}

	// 2) item spans within file span; 3) file covers union
	var union source.Span
	var haveItem bool
	for _, it := range f.Items {
		if it == nil {
			return fmt.Errorf("nil item in %s", f.Path)
		}
		sp := it.Span()
		if sp.Empty() {
			return fmt.Errorf("empty %T span: %v", it, sp)
		}
		if sp.Start < f.Sp.Start || sp.End > f.Sp.End {
			return fmt.Errorf("%T span %v is outside file span %v", it, sp, f.Sp)
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveItem {
		if union.Start < f.Sp.Start || union.End > f.Sp.End {
			return fmt.Errorf("file span %v does not cover union of items %v", f.Sp, union)
		}
	}
	return nil
}

package symbols

import (
	"strings"

	"veryl/internal/ast"
	"veryl/internal/source"
	"veryl/internal/token"
)

// Path is the resolution input extracted from a hierarchical identifier.
// Scoped segments come first ("pkg::"), then '.'-separated members.
type Path struct {
	Segments []PathSegment
	Span     source.Span
}

type PathSegment struct {
	Name     string
	Scoped   bool // followed by '::'
	Selects  int
	Location token.Location
	Span     source.Span
}

// PathOf flattens h into a Path.
func PathOf(h *ast.HierIdent) Path {
	p := Path{Span: h.Sp, Segments: make([]PathSegment, 0, len(h.Scope)+len(h.Segments))}
	for _, id := range h.Scope {
		p.Segments = append(p.Segments, PathSegment{
			Name: id.Text(), Scoped: true, Location: id.Location(), Span: id.Sp,
		})
	}
	for _, seg := range h.Segments {
		p.Segments = append(p.Segments, PathSegment{
			Name: seg.Name.Text(), Selects: len(seg.Selects), Location: seg.Name.Location(), Span: seg.Name.Sp,
		})
	}
	return p
}

// SimplePath builds a Path from plain names, used for lookups by name.
func SimplePath(names ...string) Path {
	p := Path{Segments: make([]PathSegment, len(names))}
	for i, n := range names {
		p.Segments[i] = PathSegment{Name: n}
	}
	return p
}

func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			if p.Segments[i-1].Scoped {
				b.WriteString("::")
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString(seg.Name)
	}
	return b.String()
}

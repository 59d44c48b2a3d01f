package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"veryl/internal/diag"
	"veryl/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(fs, d.Primary, opts.PathMode),
			sev.Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		snippet(w, fs, d.Primary, opts, p, sev)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
			snippet(w, fs, n.Span, PrettyOpts{Width: opts.Width}, p, p.note)
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.mode(), fs.BaseDir()), start.Line, start.Col)
}

// snippet prints the source lines around sp with a caret underline.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette, caret *color.Color) {
	if int(sp.File) >= fs.Len() {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutter, ln), text)
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	lastCol := len(line)
	if end.Line == start.Line {
		lastCol = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := max(runewidth.StringWidth(expandTabs(line[col:lastCol])), 1)
	mark := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", pad), caret.Sprint(mark))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Package analyzer sequences the three analysis passes.
//
// Each pass is one walk of a file with the handlers of that pass. Pass 1
// stages declarations per file and may run for many files concurrently.
// Commit then publishes the staged units into the symbol table in file
// order. Pass 2 and pass 3 read the committed table; the caller must not
// start pass 2 for any file before Commit, nor pass 3 before every pass 2
// has returned.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"veryl/internal/analyzer/handlers"
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/symbols"
	"veryl/internal/trace"
	"veryl/internal/walker"
)

// Options configure an Analyzer. The zero value is usable.
type Options struct {
	Logger   *slog.Logger // nil disables logging
	Progress ProgressSink
	Hints    symbols.Hints
}

type Analyzer struct {
	project  string
	opts     Options
	log      *slog.Logger
	progress ProgressSink
	session  Session
	table    *symbols.Table
	ctx      *handlers.Context
}

// New creates an analyzer for the project namespace project (may be empty).
func New(project string, opts Options) *Analyzer {
	a := &Analyzer{project: project, opts: opts}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a.log = logger.With(slog.String("component", "analyzer"))
	a.progress = opts.Progress
	if a.progress == nil {
		a.progress = nopSink{}
	}
	a.Reset()
	return a
}

// Reset drops every symbol and every pass result and starts a new session.
func (a *Analyzer) Reset() {
	a.session = newSession(a.project)
	a.table = symbols.NewTable(a.opts.Hints, nil, a.project)
	a.ctx = handlers.NewContext(a.table)
	a.log.LogAttrs(context.Background(), slog.LevelDebug, "session started",
		slog.Any("session", a.session))
}

func (a *Analyzer) Table() *symbols.Table      { return a.table }
func (a *Analyzer) Context() *handlers.Context { return a.ctx }
func (a *Analyzer) Session() Session           { return a.session }

// Pass1 discovers the declarations of f without touching the symbol table.
func (a *Analyzer) Pass1(ctx context.Context, f *ast.File) (*symbols.Unit, []diag.Diagnostic) {
	cst := handlers.NewCreateSymbolTable(f.ID)
	diags := a.walk(ctx, StagePass1, f, cst, handlers.NewCheckNumber())
	return cst.Unit(), diags
}

// Commit publishes pass 1 results into the symbol table, in the given order.
// A declaration that collides with one committed earlier is reported against
// the later unit.
func (a *Analyzer) Commit(units []*symbols.Unit) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, u := range units {
		if u == nil {
			continue
		}
		for _, err := range a.table.Commit(u) {
			if d, ok := handlers.FromError(err); ok {
				out = append(out, d)
				continue
			}
			a.log.LogAttrs(context.Background(), slog.LevelWarn, "commit failed",
				slog.String("error", err.Error()))
		}
		a.log.LogAttrs(context.Background(), slog.LevelDebug, "unit committed",
			slog.Int("file", int(u.File)),
			slog.Int("symbols", len(a.table.Symbols.InFile(u.File))))
	}
	a.log.LogAttrs(context.Background(), slog.LevelInfo, "symbol table committed",
		slog.Int("units", len(units)),
		slog.Int("symbols", a.table.Symbols.Len()),
		slog.Int("duplicates", len(out)))
	return out
}

// Pass2 resolves references of f and records type dependencies and
// assignment sites.
func (a *Analyzer) Pass2(ctx context.Context, f *ast.File) []diag.Diagnostic {
	return a.walk(ctx, StagePass2, f,
		handlers.NewCreateReference(a.ctx),
		handlers.NewCreateTypeDag(a.ctx),
		handlers.NewCreateAssignList(a.ctx),
	)
}

// SortTypes orders the type dependency graph collected by pass 2, users
// before the components they use, and reports dependency cycles. Run it
// after the pass 2 barrier.
func (a *Analyzer) SortTypes() ([]string, []diag.Diagnostic) {
	bag := diag.NewBag(0)
	// один цикл виден из каждого своего узла
	r := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	idx, topo := a.ctx.Dag.Sort(r)
	order := make([]string, 0, len(topo.Order))
	for _, id := range topo.Order {
		order = append(order, idx.Name(id))
	}
	return order, bag.Items()
}

// Pass3 runs the rule handlers over f.
func (a *Analyzer) Pass3(ctx context.Context, f *ast.File) []diag.Diagnostic {
	return a.walk(ctx, StagePass3, f,
		handlers.NewCheckClockReset(a.ctx),
		handlers.NewCheckAssignment(a.ctx),
	)
}

func (a *Analyzer) walk(ctx context.Context, stage Stage, f *ast.File, hs ...walker.Handler) []diag.Diagnostic {
	name := f.Path
	a.progress.OnEvent(Event{File: name, Stage: stage, Status: StatusWorking})
	_, span := trace.Start(ctx, trace.ScopeFile, fmt.Sprintf("%s:%s", stage, name))
	start := time.Now()

	walker.Walk(f, hs...)

	var diags []diag.Diagnostic
	for _, h := range hs {
		r, ok := h.(walker.Reporting)
		if !ok {
			continue
		}
		ds := r.Diagnostics()
		span.Point(fmt.Sprintf("%T", h), fmt.Sprintf("%d diagnostics", len(ds)))
		diags = append(diags, ds...)
	}

	elapsed := time.Since(start)
	span.WithExtra("diagnostics", fmt.Sprint(len(diags))).End("")
	status := StatusDone
	for _, d := range diags {
		if d.Severity >= diag.SevError {
			status = StatusError
			break
		}
	}
	a.progress.OnEvent(Event{File: name, Stage: stage, Status: status, Diagnostics: len(diags), Elapsed: elapsed})
	a.log.LogAttrs(ctx, slog.LevelDebug, "pass finished",
		slog.String("stage", string(stage)),
		slog.String("file", name),
		slog.Int("diagnostics", len(diags)),
		slog.Duration("elapsed", elapsed))
	return diags
}

// Package driver runs the analyzer over a project: it loads metadata and
// sources, parses files, and sequences the three passes with barriers
// between them.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"veryl/internal/analyzer"
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/observ"
	"veryl/internal/parser"
	"veryl/internal/project"
	"veryl/internal/source"
	"veryl/internal/symbols"
	"veryl/internal/trace"
)

// Check analyzes the project described by req.
func Check(ctx context.Context, req Request) (*Result, error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "driver"))
	timer := req.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	progress := req.Progress
	if progress == nil {
		progress = analyzer.SinkFunc(func(analyzer.Event) {})
	}

	ctx, run := trace.Start(ctx, trace.ScopeDriver, "check")
	defer run.End("")

	idx := timer.Begin("load")
	md, paths, err := ResolveInputs(req)
	if err != nil {
		timer.End(idx, "failed")
		return nil, err
	}
	name := req.Project
	base := req.Dir
	if md != nil {
		if name == "" {
			name = md.Name
		}
		base = md.Root
		if len(md.Unknown) > 0 {
			logger.LogAttrs(ctx, slog.LevelDebug, "unused manifest keys", slog.Any("keys", md.Unknown))
		}
	}
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}

	res := &Result{
		FileSet:  source.NewFileSetWithBase(base),
		Metadata: md,
		Files:    make([]FileResult, len(paths)),
		Analyzer: analyzer.New(name, analyzer.Options{Logger: req.Logger, Progress: progress}),
	}
	loaded := make([]*source.File, 0, len(paths))
	for i, path := range paths {
		fr := &res.Files[i]
		fr.Path = path
		id, err := res.FileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было куда указывать
			fr.FileID = res.FileSet.AddVirtual(path, nil)
			fr.Skipped = true
			fr.Diagnostics = append(fr.Diagnostics, diag.NewError(diag.IOReadFileError,
				source.Span{File: fr.FileID}, fmt.Sprintf("failed to read %s: %v", path, err)))
			continue
		}
		fr.FileID = id
		loaded = append(loaded, res.FileSet.Get(id))
		progress.OnEvent(analyzer.Event{File: path, Stage: analyzer.StageParse, Status: analyzer.StatusQueued})
	}
	res.Fingerprint = project.Fingerprint(name, loaded)
	timer.End(idx, fmt.Sprintf("%d files", len(loaded)))

	logger.LogAttrs(ctx, slog.LevelInfo, "analysis started",
		slog.Any("session", res.Analyzer.Session()),
		slog.Int("files", len(paths)),
		slog.String("fingerprint", res.Fingerprint.Short()))

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	a := res.Analyzer

	// parse + pass 1
	units := make([]*symbols.Unit, len(res.Files))
	err = stage(ctx, timer, "parse+pass1", res.Files, jobs, func(ctx context.Context, fr *FileResult, i int) {
		if fr.Skipped {
			return
		}
		start := time.Now()
		logger.LogAttrs(ctx, slog.LevelDebug, "processing file", slog.String("file", fr.Path))
		fr.AST, fr.Diagnostics = parse(res.FileSet.Get(fr.FileID), progress)
		timer.Add("parse/files", time.Since(start))
		if hasErrors(fr.Diagnostics) {
			fr.Skipped = true
			logger.LogAttrs(ctx, slog.LevelWarn, "file skipped", slog.String("file", fr.Path),
				slog.Int("syntax_errors", len(fr.Diagnostics)))
			return
		}
		unit, ds := a.Pass1(ctx, fr.AST)
		units[i] = unit
		fr.Diagnostics = append(fr.Diagnostics, ds...)
		fr.Elapsed += time.Since(start)
	})
	if err != nil {
		return nil, err
	}

	// barrier: the table is complete only after every unit is committed
	idx = timer.Begin("commit")
	_, span := trace.Start(ctx, trace.ScopePass, "commit")
	committed := a.Commit(units)
	res.attach(committed)
	span.End(fmt.Sprintf("%d symbols", a.Table().Symbols.Len()))
	timer.End(idx, fmt.Sprintf("%d symbols", a.Table().Symbols.Len()))

	err = stage(ctx, timer, "pass2", res.Files, jobs, func(ctx context.Context, fr *FileResult, _ int) {
		if fr.Skipped {
			return
		}
		start := time.Now()
		fr.Diagnostics = append(fr.Diagnostics, a.Pass2(ctx, fr.AST)...)
		fr.Elapsed += time.Since(start)
	})
	if err != nil {
		return nil, err
	}

	idx = timer.Begin("type-sort")
	order, cycles := a.SortTypes()
	res.TypeOrder = order
	res.attach(cycles)
	timer.End(idx, fmt.Sprintf("%d components", len(order)))

	err = stage(ctx, timer, "pass3", res.Files, jobs, func(ctx context.Context, fr *FileResult, _ int) {
		if fr.Skipped {
			return
		}
		start := time.Now()
		fr.Diagnostics = append(fr.Diagnostics, a.Pass3(ctx, fr.AST)...)
		fr.Elapsed += time.Since(start)
	})
	if err != nil {
		return nil, err
	}

	res.Bag = diag.NewBag(req.MaxDiagnostics)
	for _, fr := range res.Files {
		res.Bag.AddAll(fr.Diagnostics)
	}
	res.Bag.Sort()

	logger.LogAttrs(ctx, slog.LevelInfo, "analysis complete",
		slog.Int("files", len(res.Files)),
		slog.Int("symbols", a.Table().Symbols.Len()),
		slog.Int("diagnostics", res.Bag.Len()))
	logger.LogAttrs(ctx, slog.LevelDebug, "elapsed", slog.Float64("ms", timer.Report().TotalMS))
	return res, nil
}

// ResolveInputs finds the metadata and the list of files req analyzes.
func ResolveInputs(req Request) (*project.Metadata, []string, error) {
	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	md, ok, err := project.Discover(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(req.Files) > 0 {
		paths := make([]string, len(req.Files))
		for i, f := range req.Files {
			abs, err := filepath.Abs(f)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve %q: %w", f, err)
			}
			paths[i] = abs
		}
		return md, paths, nil
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w in %s or any parent directory", ErrNoManifest, dir)
	}
	paths, err := md.Sources()
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", md.Root, ErrNoSources)
	}
	return md, paths, nil
}

func parse(file *source.File, progress analyzer.ProgressSink) (*ast.File, []diag.Diagnostic) {
	progress.OnEvent(analyzer.Event{File: file.Path, Stage: analyzer.StageParse, Status: analyzer.StatusWorking})
	start := time.Now()
	bag := diag.NewBag(0)
	res := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	status := analyzer.StatusDone
	if bag.HasErrors() {
		status = analyzer.StatusError
	}
	progress.OnEvent(analyzer.Event{File: file.Path, Stage: analyzer.StageParse, Status: status,
		Diagnostics: bag.Len(), Elapsed: time.Since(start)})
	return res.File, bag.Items()
}

// attach appends project-level diagnostics to the file of their primary span.
func (r *Result) attach(ds []diag.Diagnostic) {
	for _, d := range ds {
		for i := range r.Files {
			fr := &r.Files[i]
			if fr.AST != nil && fr.FileID == d.Primary.File {
				fr.Diagnostics = append(fr.Diagnostics, d)
				break
			}
		}
	}
}

func hasErrors(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// stage runs fn for every file with at most jobs goroutines and returns once
// all of them are done. Each fn owns its FileResult; nothing else is shared.
func stage(ctx context.Context, timer *observ.Timer, name string, files []FileResult, jobs int, fn func(context.Context, *FileResult, int)) error {
	idx := timer.Begin(name)
	ctx, span := trace.Start(ctx, trace.ScopePass, name)
	defer span.End("")

	if len(files) == 0 {
		timer.End(idx, "no files")
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fn(gctx, &files[i], i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		timer.End(idx, "cancelled")
		return err
	}
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	return nil
}

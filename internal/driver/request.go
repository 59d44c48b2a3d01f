package driver

import (
	"errors"
	"log/slog"
	"time"

	"veryl/internal/analyzer"
	"veryl/internal/ast"
	"veryl/internal/diag"
	"veryl/internal/observ"
	"veryl/internal/project"
	"veryl/internal/source"
)

var (
	// ErrNoManifest is returned when no Veryl.toml is found and no files were given.
	ErrNoManifest = errors.New("Veryl.toml not found")
	// ErrNoSources is returned when the project has no source files.
	ErrNoSources = errors.New("no source files")
)

// Request describes one analysis run.
type Request struct {
	Dir            string   // where to look for Veryl.toml; "" = current directory
	Files          []string // explicit files; empty = project sources
	Project        string   // namespace override
	MaxDiagnostics int      // 0 = unbounded
	Jobs           int      // 0 = GOMAXPROCS

	Logger   *slog.Logger
	Progress analyzer.ProgressSink
	Timer    *observ.Timer // optional
}

// FileResult is the outcome of one file. Diagnostics are in discovery
// order: parse, pass 1, commit, pass 2, type sort, pass 3.
type FileResult struct {
	Path        string
	FileID      source.FileID
	AST         *ast.File // nil when the file could not be read
	Skipped     bool      // syntax errors; the file took no part in the passes
	Diagnostics []diag.Diagnostic
	Elapsed     time.Duration
}

// Result of Check.
type Result struct {
	FileSet     *source.FileSet
	Metadata    *project.Metadata // nil without Veryl.toml
	Files       []FileResult
	Analyzer    *analyzer.Analyzer
	TypeOrder   []string
	Fingerprint project.Digest
	Bag         *diag.Bag // every diagnostic, sorted, bounded by MaxDiagnostics
}

// HasErrors reports whether any error diagnostic was produced.
func (r *Result) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Package diag defines the diagnostic model shared by the lexer, parser and
// analyzer passes.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string ID (LEX/SYN/SEM/IO/PRJ prefixes), a short Message, the Primary span
// and optional Notes. Codes also map to a Category (resolution, type,
// structural, evaluation) used by the CLI summary.
//
// Producers emit through a Reporter (BagReporter, DedupReporter) or build
// values directly with New/NewError and append them to a Bag. None of the
// analyzer diagnostics is fatal: a pass records the finding and keeps going.
//
// Rendering lives in internal/diagfmt; the only formatter here is the stable
// one-line form used by tests and --format=short.
package diag

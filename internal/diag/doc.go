// Package diag defines the diagnostic model shared by all pipeline phases.
//
// A Diagnostic carries a Severity, a Code grouped by phase (parse 1xxx,
// build 2xxx, resolve 3xxx, render 4xxx, project 5xxx), a short message, the
// primary source.Span and optional notes. Phases emit through a Reporter;
// BagReporter collects into a Bag, which supports sorting, deduplication and
// filtering. The flat single-line form produced by Diagnostic.Format is what
// project results expose as their diagnostic list.
//
// Resolution problems are diagnostics. Structural failures (unhandled
// constructs, unimplemented back-end operations, ordering mismatches) are
// Go errors returned to the caller; they may additionally be recorded here.
//
// Rendering of bags into coloured text or JSON lives in internal/diagfmt.
package diag

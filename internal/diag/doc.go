// Package diag defines the diagnostic model shared by the scanner, the
// directive driver and the CLI.
//
// A Diagnostic carries a Severity, a stable Code (rendered as DIRnnnn,
// SCHnnnn or IOnnnn), a short message, the primary source.Span and optional
// notes. Producers either add diagnostics to a Bag directly or go through a
// Reporter / ReportBuilder when they should not know where diagnostics end up.
//
// The directive core does not use this package for its own warnings; it
// returns plain directive.Warning values with a line number, and the driver
// lifts them into Diagnostics once the document position is known.
//
// Package diag does no IO and no rendering. Pretty and JSON output live in
// internal/diagfmt; FormatShortDiagnostics is kept here because tests compare
// against it.
package diag

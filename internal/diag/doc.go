// Package diag defines the diagnostic model shared by every stage of a sketch
// build.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – user-facing text, already rewritten by the classifier.
//   - Unit/Line/Column – 0-based location inside a sketch unit; Line and Column
//     are -1 when unknown. An unresolved diagnostic points at unit 0, line -1.
//   - StackTraceVisible – always false for diagnostics about user code.
//   - Notes – optional hints such as a suggested import.
//
// A build produces at most one Diagnostic. It travels to the caller wrapped in
// *Error so that the usual errors.As plumbing works; AsDiagnostic unwraps it.
//
// # Emitting diagnostics
//
// Tools that report every record of a compiler log (the explain command) use a
// Reporter. BagReporter collects into a Bag, DedupReporter drops repeats.
//
// Package diag performs no IO; rendering lives in internal/diagfmt.
package diag

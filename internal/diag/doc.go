// Package diag defines the diagnostic model shared by the lexer and the
// compiler.
//
// Diagnostic is the central record: Severity, a compact Code with a stable
// string form (LEX1001, SYN2001, IO4001), a short Message, the Primary span
// and the 1-based Line reported by the scanner. Producers emit through a
// Reporter (usually BagReporter) or build Diagnostic values directly and add
// them to a Bag.
//
// Package diag does not perform formatting beyond the single-line golden form;
// rendering for terminals and JSON lives in internal/diagfmt.
package diag

// Package trace records where the interpreter spends its time.
//
// Enable it from the command line:
//
//	lox run --trace=- --trace-level=phase main.lox
//	lox check --trace=check.ndjson --trace-level=detail src/
//
// Levels select scopes: phase shows driver and pass spans (lex, compile,
// run, cache), detail adds per-file spans of a parallel check, and debug
// adds one point event per VM step.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "compile", parentID)
//	defer span.End("")
package trace

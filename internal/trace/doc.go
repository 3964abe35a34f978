// Package trace records what a sketch build is doing and how long each step
// takes.
//
// A build opens one ScopeDriver span; every stage (assemble, preprocess,
// write, imports, copy, compile, translate) nests a ScopePass span under it.
// Per-tab work such as loading or brace scanning uses ScopeUnit, and each
// compiler-log record seen while translating is a ScopeRecord point.
//
// # Usage
//
//	sketchc build --trace=- --trace-level=phase ./Particles
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "compile")
//	defer span.End("")
package trace

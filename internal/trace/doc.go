// Package trace is the structured event log of covannot.
//
// Enable it via command-line flags:
//
//	covannot annotate --trace=- --trace-level=detail coverage/coverage-final.json
//
// Events are scoped (command, stage, report, file) and filtered by Level.
// A StreamTracer writes text or NDJSON to stderr or a file; Nop is used when
// tracing is off.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeStage, "load")
//	defer span.End("")
package trace

// Package trace records analyzer phase boundaries as span events.
//
// Enable tracing via command-line flags:
//
//	veryl check --trace=- --trace-level=pass
//
// Levels select how deep events go: pass boundaries, per-file work inside a
// pass, or single handler walks. Tracers travel through the driver in a
// context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "pass2", parentID)
//	defer span.End("")
package trace

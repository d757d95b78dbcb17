// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware starts a server span per request and exposes the trace
// ID through the X-Trace-Id response header. Use Start for spans around
// summary generation and other long operations.
//
// Example usage:
//
//	shutdown := tracing.InitProvider(1.0)
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.Start(ctx, "summary.generate", attribute.Int64("summary.id", id))
//	defer span.End()
package tracing

// Package observability groups the logging, metrics and tracing support of
// the summarizer.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus business metrics
//   - tracing: OpenTelemetry spans and HTTP middleware
package observability

// Package metrics provides the Prometheus business metrics of the summarizer.
//
// It covers:
//   - Summary lifecycle (requests, dedup hits, generations, pending backlog)
//   - Extractive strategy usage and chunking
//   - Content fetch and database metrics
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint. HTTP request metrics live with the HTTP middleware.
//
// Example usage:
//
//	start := time.Now()
//	err := svc.Generate(ctx, id, url)
//	metrics.RecordSummaryGenerated(err == nil, time.Since(start))
package metrics

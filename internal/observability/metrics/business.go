package metrics

import (
	"time"
)

// Summary sources.
const (
	SourceURL  = "url"
	SourceText = "text"
)

// RecordSummaryCreated records an accepted summary request.
// Source should be SourceURL or SourceText.
func RecordSummaryCreated(source string) {
	SummariesCreatedTotal.WithLabelValues(source).Inc()
}

// RecordDedupHit records a URL submission served from a recent record.
func RecordDedupHit() {
	SummaryDedupHitsTotal.Inc()
}

// RecordSummaryGenerated records the result and duration of a generation.
func RecordSummaryGenerated(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SummaryGenerationTotal.WithLabelValues(status).Inc()
	SummaryGenerationDuration.Observe(duration.Seconds())
}

// RecordExtractiveStrategy records which strategy produced an extractive summary.
func RecordExtractiveStrategy(strategy string) {
	if strategy == "" {
		strategy = "none"
	}
	ExtractiveStrategyTotal.WithLabelValues(strategy).Inc()
}

// RecordDocumentChunks records how many chunks a document produced.
func RecordDocumentChunks(count int) {
	DocumentChunks.Observe(float64(count))
}

// UpdateSummaryCounts refreshes the stored and pending summary gauges.
func UpdateSummaryCounts(total, pending int64) {
	SummariesTotal.Set(float64(total))
	SummariesPending.Set(float64(pending))
}

// RecordContentFetchSuccess records a successful content fetch operation.
// Size is the length of the extracted text.
//
// Example:
//
//	start := time.Now()
//	content, err := fetcher.FetchContent(ctx, url)
//	if err == nil {
//	    RecordContentFetchSuccess(time.Since(start), len(content))
//	}
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_summaries", "insert_summary").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

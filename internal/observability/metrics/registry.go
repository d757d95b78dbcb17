// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summary metrics track the summary lifecycle.
var (
	// SummariesCreatedTotal counts accepted summary requests by input source (url, text).
	SummariesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_created_total",
			Help: "Total number of summary requests accepted",
		},
		[]string{"source"},
	)

	// SummaryDedupHitsTotal counts URL submissions answered by an existing recent record.
	SummaryDedupHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summary_dedup_hits_total",
			Help: "Total number of URL submissions served from a recent summary",
		},
	)

	// SummaryGenerationTotal counts background generations by status.
	SummaryGenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_generation_total",
			Help: "Total number of summary generations",
		},
		[]string{"status"},
	)

	// SummaryGenerationDuration measures the end-to-end generation time.
	SummaryGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summary_generation_duration_seconds",
			Help:    "Time taken to fetch, summarize and classify a document",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// ExtractiveStrategyTotal counts which extractive strategy produced the summary.
	ExtractiveStrategyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractive_strategy_total",
			Help: "Total number of extractive summaries by producing strategy",
		},
		[]string{"strategy"},
	)

	// DocumentChunks observes how many chunks a document was split into.
	DocumentChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "document_chunks",
			Help:    "Number of token-bounded chunks per document",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
	)

	// SummariesTotal tracks the number of stored summaries.
	SummariesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "summaries_total",
			Help: "Total number of summaries in the database",
		},
	)

	// SummariesPending tracks stored summaries still waiting for generation.
	SummariesPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "summaries_pending",
			Help: "Number of summaries without generated text",
		},
	)
)

// Content fetch metrics track page retrieval.
var (
	// ContentFetchAttemptsTotal counts fetch attempts by result (success, failure).
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"},
	)

	// ContentFetchDuration measures fetch latency.
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Duration of content fetch operations",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
	)

	// ContentFetchSize measures the extracted text size in characters.
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "content_fetch_size_bytes",
			Help: "Size of extracted content",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800, 409600, 819200,
			},
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

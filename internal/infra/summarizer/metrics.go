package summarizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records per-call summarization metrics. Tests inject a fake
// instead of the Prometheus implementation.
type MetricsRecorder interface {
	// RecordLength records the length of a generated summary in runes.
	RecordLength(length int)

	// RecordLimitExceeded counts summaries longer than the configured character limit.
	RecordLimitExceeded()

	// RecordDuration records the time taken by one successful API call.
	RecordDuration(duration time.Duration)

	// RecordFailure counts failed calls after retries.
	RecordFailure()
}

var (
	summaryLength = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "abstractive_summary_length_characters",
		Help:    "Distribution of abstractive chunk summary lengths in characters (Unicode runes)",
		Buckets: []float64{50, 100, 200, 300, 500, 700, 900, 1500, 2500},
	}, []string{"provider"})

	summaryLimitExceeded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "abstractive_summary_limit_exceeded_total",
		Help: "Total number of chunk summaries exceeding the configured character limit",
	}, []string{"provider"})

	summarizationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "abstractive_summarization_duration_seconds",
		Help:    "Time taken to summarize one chunk via a hosted model",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"provider"})

	summarizationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "abstractive_summarization_failures_total",
		Help: "Total number of chunk summarizations that failed after retries",
	}, []string{"provider"})
)

// PrometheusMetrics implements MetricsRecorder for one provider.
type PrometheusMetrics struct {
	length   prometheus.Observer
	exceeded prometheus.Counter
	duration prometheus.Observer
	failures prometheus.Counter
}

// NewPrometheusMetrics binds the shared collectors to provider.
func NewPrometheusMetrics(provider Provider) *PrometheusMetrics {
	p := string(provider)
	return &PrometheusMetrics{
		length:   summaryLength.WithLabelValues(p),
		exceeded: summaryLimitExceeded.WithLabelValues(p),
		duration: summarizationDuration.WithLabelValues(p),
		failures: summarizationFailures.WithLabelValues(p),
	}
}

func (m *PrometheusMetrics) RecordLength(length int) { m.length.Observe(float64(length)) }

func (m *PrometheusMetrics) RecordLimitExceeded() { m.exceeded.Inc() }

func (m *PrometheusMetrics) RecordDuration(d time.Duration) { m.duration.Observe(d.Seconds()) }

func (m *PrometheusMetrics) RecordFailure() { m.failures.Inc() }

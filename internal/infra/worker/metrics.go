package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configLoadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worker_config_load_timestamp",
		Help: "Unix timestamp of the last configuration load",
	})

	configFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_config_fallbacks_total",
		Help: "Total configuration values replaced by their default, by field",
	}, []string{"field"})

	configFallbackActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "worker_config_fallback_active",
		Help: "1 if the field is running on its default after a rejected value",
	}, []string{"field"})

	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_cron_job_runs_total",
		Help: "Total number of cron job runs by status (started/success/failure)",
	}, []string{"status"})

	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "worker_cron_job_duration_seconds",
		Help:    "Duration of cron job execution in seconds",
		Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
	})

	summariesRegenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_summaries_regenerated_total",
		Help: "Pending summaries retried by the worker, by result",
	}, []string{"result"})

	lastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worker_cron_job_last_success_timestamp",
		Help: "Unix timestamp of the last successful cron job run",
	})
)

// Metrics records worker metrics. The zero value is ready to use and a nil
// *Metrics records nothing.
type Metrics struct{}

// NewMetrics returns the worker metrics recorder.
func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) RecordLoadTimestamp() {
	if m == nil {
		return
	}
	configLoadTimestamp.SetToCurrentTime()
}

// RecordFallback counts a fallback for field and sets its active gauge.
func (m *Metrics) RecordFallback(field string, applied bool) {
	if m == nil {
		return
	}
	if applied {
		configFallbacks.WithLabelValues(field).Inc()
		configFallbackActive.WithLabelValues(field).Set(1)
		return
	}
	configFallbackActive.WithLabelValues(field).Set(0)
}

func (m *Metrics) RecordJobRun(status string) {
	if m == nil {
		return
	}
	jobRuns.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordJobDuration(seconds float64) {
	if m == nil {
		return
	}
	jobDuration.Observe(seconds)
}

// RecordRegenerated adds one run's succeeded and failed counts.
func (m *Metrics) RecordRegenerated(succeeded, failed int) {
	if m == nil {
		return
	}
	summariesRegenerated.WithLabelValues("success").Add(float64(succeeded))
	summariesRegenerated.WithLabelValues("failure").Add(float64(failed))
}

func (m *Metrics) RecordLastSuccess() {
	if m == nil {
		return
	}
	lastSuccess.SetToCurrentTime()
}

// Package worker holds the configuration, metrics, health server and job of
// the background regeneration worker.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// WorkerConfig controls the regeneration worker.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression.
	CronSchedule string
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string
	// MaxConcurrent bounds concurrent regenerations within one run (1-100).
	MaxConcurrent int
	// BatchLimit is the most pending summaries picked up per run.
	BatchLimit int
	// GracePeriod skips summaries younger than this; the API server is
	// probably still generating them.
	GracePeriod time.Duration
	// RunTimeout bounds a single run.
	RunTimeout time.Duration
	// HealthPort serves /health, /health/ready and /metrics (1024-65535).
	HealthPort int
}

// DefaultConfig returns the production defaults: every ten minutes in UTC,
// four at a time, up to 100 summaries older than 15 minutes.
func DefaultConfig() *WorkerConfig {
	return &WorkerConfig{
		CronSchedule:  "*/10 * * * *",
		Timezone:      "UTC",
		MaxConcurrent: 4,
		BatchLimit:    100,
		GracePeriod:   15 * time.Minute,
		RunTimeout:    30 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate checks every field.
func (c *WorkerConfig) Validate() error {
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		return err
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		return err
	}
	if err := validateMaxConcurrent(c.MaxConcurrent); err != nil {
		return fmt.Errorf("max concurrent: %w", err)
	}
	if err := validateBatchLimit(c.BatchLimit); err != nil {
		return fmt.Errorf("batch limit: %w", err)
	}
	if err := validateGracePeriod(c.GracePeriod); err != nil {
		return fmt.Errorf("grace period: %w", err)
	}
	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		return fmt.Errorf("run timeout: %w", err)
	}
	if err := validatePort(c.HealthPort); err != nil {
		return fmt.Errorf("health port: %w", err)
	}
	return nil
}

func validateMaxConcurrent(v int) error { return config.ValidateIntRange(v, 1, 100) }
func validateBatchLimit(v int) error    { return config.ValidateIntRange(v, 1, 10000) }
func validatePort(v int) error          { return config.ValidateIntRange(v, 1024, 65535) }

func validateGracePeriod(d time.Duration) error {
	return config.ValidateDurationRange(d, 0, 24*time.Hour)
}

// LoadConfigFromEnv reads WORKER_CRON_SCHEDULE, WORKER_TIMEZONE,
// WORKER_MAX_CONCURRENT, WORKER_BATCH_LIMIT, WORKER_GRACE_PERIOD,
// WORKER_RUN_TIMEOUT and WORKER_HEALTH_PORT.
//
// Loading is fail-open: an invalid value is logged, counted in m and
// replaced by its default, so the worker always starts.
func LoadConfigFromEnv(logger *slog.Logger, m *Metrics) *WorkerConfig {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	cfg := &WorkerConfig{}
	var fallbacks int

	note := func(field string, applied bool, warning string) {
		m.RecordFallback(field, applied)
		if !applied {
			return
		}
		fallbacks++
		logger.Warn("worker configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	schedule := config.LoadWithFallback("WORKER_CRON_SCHEDULE", def.CronSchedule, config.ParseString, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	note("cron_schedule", schedule.FallbackApplied(), schedule.Warning)

	tz := config.LoadWithFallback("WORKER_TIMEZONE", def.Timezone, config.ParseString, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	note("timezone", tz.FallbackApplied(), tz.Warning)

	maxConc := config.LoadWithFallback("WORKER_MAX_CONCURRENT", def.MaxConcurrent, config.ParseInt, validateMaxConcurrent)
	cfg.MaxConcurrent = maxConc.Value
	note("max_concurrent", maxConc.FallbackApplied(), maxConc.Warning)

	batch := config.LoadWithFallback("WORKER_BATCH_LIMIT", def.BatchLimit, config.ParseInt, validateBatchLimit)
	cfg.BatchLimit = batch.Value
	note("batch_limit", batch.FallbackApplied(), batch.Warning)

	grace := config.LoadWithFallback("WORKER_GRACE_PERIOD", def.GracePeriod, config.ParseDuration, validateGracePeriod)
	cfg.GracePeriod = grace.Value
	note("grace_period", grace.FallbackApplied(), grace.Warning)

	timeout := config.LoadWithFallback("WORKER_RUN_TIMEOUT", def.RunTimeout, config.ParseDuration, config.ValidatePositiveDuration)
	cfg.RunTimeout = timeout.Value
	note("run_timeout", timeout.FallbackApplied(), timeout.Warning)

	port := config.LoadWithFallback("WORKER_HEALTH_PORT", def.HealthPort, config.ParseInt, validatePort)
	cfg.HealthPort = port.Value
	note("health_port", port.FallbackApplied(), port.Warning)

	m.RecordLoadTimestamp()
	if fallbacks > 0 {
		logger.Warn("worker configuration loaded with fallbacks", slog.Int("fallback_count", fallbacks))
	}
	return cfg
}

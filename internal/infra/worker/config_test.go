package worker

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "*/10 * * * *", cfg.CronSchedule)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 4, cfg.MaxConcurrent)
	assert.Equal(t, 100, cfg.BatchLimit)
	assert.Equal(t, 15*time.Minute, cfg.GracePeriod)
	assert.Equal(t, 30*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 9091, cfg.HealthPort)
	require.NoError(t, cfg.Validate())

	// Each call returns a fresh instance.
	cfg.CronSchedule = "0 6 * * *"
	assert.Equal(t, "*/10 * * * *", DefaultConfig().CronSchedule)
}

func TestWorkerConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkerConfig)
	}{
		{"cron", func(c *WorkerConfig) { c.CronSchedule = "often" }},
		{"timezone", func(c *WorkerConfig) { c.Timezone = "Nowhere/Land" }},
		{"max concurrent", func(c *WorkerConfig) { c.MaxConcurrent = 0 }},
		{"batch limit", func(c *WorkerConfig) { c.BatchLimit = 20000 }},
		{"grace period", func(c *WorkerConfig) { c.GracePeriod = -time.Second }},
		{"run timeout", func(c *WorkerConfig) { c.RunTimeout = 0 }},
		{"health port", func(c *WorkerConfig) { c.HealthPort = 80 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnv_Valid(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "0 * * * *")
	t.Setenv("WORKER_TIMEZONE", "Europe/Rome")
	t.Setenv("WORKER_MAX_CONCURRENT", "8")
	t.Setenv("WORKER_BATCH_LIMIT", "25")
	t.Setenv("WORKER_GRACE_PERIOD", "1h")
	t.Setenv("WORKER_RUN_TIMEOUT", "10m")
	t.Setenv("WORKER_HEALTH_PORT", "9191")

	cfg := LoadConfigFromEnv(nil, NewMetrics())

	assert.Equal(t, &WorkerConfig{
		CronSchedule:  "0 * * * *",
		Timezone:      "Europe/Rome",
		MaxConcurrent: 8,
		BatchLimit:    25,
		GracePeriod:   time.Hour,
		RunTimeout:    10 * time.Minute,
		HealthPort:    9191,
	}, cfg)
	assert.Equal(t, 0.0, testutil.ToFloat64(configFallbackActive.WithLabelValues("timezone")))
}

func TestLoadConfigFromEnv_FailOpen(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "every minute")
	t.Setenv("WORKER_MAX_CONCURRENT", "lots")
	t.Setenv("WORKER_HEALTH_PORT", "22")

	before := testutil.ToFloat64(configFallbacks.WithLabelValues("cron_schedule"))
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := LoadConfigFromEnv(logger, NewMetrics())

	def := DefaultConfig()
	assert.Equal(t, def.CronSchedule, cfg.CronSchedule)
	assert.Equal(t, def.MaxConcurrent, cfg.MaxConcurrent)
	assert.Equal(t, def.HealthPort, cfg.HealthPort)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, before+1, testutil.ToFloat64(configFallbacks.WithLabelValues("cron_schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(configFallbackActive.WithLabelValues("health_port")))
	assert.Contains(t, buf.String(), "worker configuration fallback applied")
	assert.Contains(t, buf.String(), `"fallback_count":3`)
}

func TestLoadConfigFromEnv_NilMetrics(t *testing.T) {
	t.Setenv("WORKER_TIMEZONE", "Bad/Zone")
	assert.NotPanics(t, func() {
		cfg := LoadConfigFromEnv(nil, nil)
		assert.Equal(t, "UTC", cfg.Timezone)
	})
}

func TestLoadConfigFromEnv_GracePeriodRange(t *testing.T) {
	t.Setenv("WORKER_GRACE_PERIOD", "48h")

	cfg := LoadConfigFromEnv(nil, NewMetrics())

	assert.Equal(t, DefaultConfig().GracePeriod, cfg.GracePeriod)
	assert.Equal(t, 1.0, testutil.ToFloat64(configFallbackActive.WithLabelValues("grace_period")))
}

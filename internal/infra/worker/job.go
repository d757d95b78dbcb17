package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gianpd/summarizerAI/internal/usecase/summary"
)

// Regenerator is the part of the summary service the job drives.
type Regenerator interface {
	RegeneratePending(ctx context.Context, olderThan time.Time, limit, concurrency int) (summary.RegenerateStats, error)
	RefreshGauges(ctx context.Context) error
}

// RegenerateJob retries summaries whose background generation never
// completed, for example because the API server restarted mid-fetch.
type RegenerateJob struct {
	Svc     Regenerator
	Config  *WorkerConfig
	Metrics *Metrics
	Logger  *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Run executes one pass bounded by Config.RunTimeout.
func (j *RegenerateJob) Run(ctx context.Context) (summary.RegenerateStats, error) {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}

	start := time.Now()
	j.Metrics.RecordJobRun("started")
	logger.Info("regeneration started")

	ctx, cancel := context.WithTimeout(ctx, j.Config.RunTimeout)
	defer cancel()

	olderThan := now().Add(-j.Config.GracePeriod)
	stats, err := j.Svc.RegeneratePending(ctx, olderThan, j.Config.BatchLimit, j.Config.MaxConcurrent)
	j.Metrics.RecordJobDuration(time.Since(start).Seconds())
	if err != nil {
		j.Metrics.RecordJobRun("failure")
		logger.Error("regeneration failed", slog.Any("error", err))
		return stats, fmt.Errorf("regenerate pending: %w", err)
	}

	j.Metrics.RecordJobRun("success")
	j.Metrics.RecordRegenerated(stats.Succeeded, stats.Failed)
	j.Metrics.RecordLastSuccess()

	if err := j.Svc.RefreshGauges(ctx); err != nil {
		logger.Warn("failed to refresh summary gauges", slog.Any("error", err))
	}

	logger.Info("regeneration completed",
		slog.Int("found", stats.Found),
		slog.Int("succeeded", stats.Succeeded),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", time.Since(start)))
	return stats, nil
}

// NewScheduler registers job on cfg.CronSchedule in cfg.Timezone. A run that
// is still going when the next tick fires causes that tick to be skipped.
func NewScheduler(ctx context.Context, cfg *WorkerConfig, job *RegenerateJob, logger *slog.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	cl := cronLogger{logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { _, _ = job.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	return c, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}

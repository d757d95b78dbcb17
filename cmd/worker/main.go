package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gianpd/summarizerAI/internal/bootstrap"
	workerPkg "github.com/gianpd/summarizerAI/internal/infra/worker"
	"github.com/gianpd/summarizerAI/internal/observability/logging"
	"github.com/gianpd/summarizerAI/internal/observability/tracing"
	"github.com/gianpd/summarizerAI/pkg/config"
)

func main() {
	logger := initLogger()

	shutdownTracer := tracing.InitProvider(config.GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0))
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewMetrics()
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("max_concurrent", workerConfig.MaxConcurrent),
		slog.Int("batch_limit", workerConfig.BatchLimit),
		slog.Duration("grace_period", workerConfig.GracePeriod),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	app := initApp(ctx, logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, app.DB.PingContext, logger)
	healthDone := make(chan struct{})
	go func() {
		defer close(healthDone)
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	job := &workerPkg.RegenerateJob{
		Svc:     app.Service,
		Config:  workerConfig,
		Metrics: workerMetrics,
		Logger:  logger,
	}
	runCronWorker(ctx, logger, app, job, workerConfig, healthServer)
	<-healthDone
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger().With(slog.String("component", "worker"))
	slog.SetDefault(logger)
	return logger
}

// initApp opens the database and wires the summary service.
func initApp(ctx context.Context, logger *slog.Logger) *bootstrap.App {
	initCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	app, err := bootstrap.New(initCtx, logger)
	if err != nil {
		logger.Error("failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}
	return app
}

// runCronWorker schedules the regeneration job and blocks until ctx is
// cancelled, then waits for a running job to finish.
func runCronWorker(ctx context.Context, logger *slog.Logger, app *bootstrap.App, job *workerPkg.RegenerateJob, cfg *workerPkg.WorkerConfig, healthServer *workerPkg.HealthServer) {
	c, err := workerPkg.NewScheduler(ctx, cfg, job, logger)
	if err != nil {
		logger.Error("failed to schedule regeneration job", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := c.AddFunc("@every 1m", app.RecordPoolStats); err != nil {
		logger.Warn("failed to schedule pool stats", slog.Any("error", err))
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	<-c.Stop().Done()
	app.Service.Wait()
	logger.Info("worker stopped")
}

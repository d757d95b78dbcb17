package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gianpd/summarizerAI/internal/bootstrap"
	"github.com/gianpd/summarizerAI/internal/common/pagination"
	"github.com/gianpd/summarizerAI/internal/observability/logging"
	"github.com/gianpd/summarizerAI/internal/observability/tracing"
	"github.com/gianpd/summarizerAI/pkg/config"

	hhttp "github.com/gianpd/summarizerAI/internal/handler/http"
	"github.com/gianpd/summarizerAI/internal/handler/http/middleware"
	"github.com/gianpd/summarizerAI/internal/handler/http/requestid"
	hsummary "github.com/gianpd/summarizerAI/internal/handler/http/summary"
)

func main() {
	logger := initLogger()

	shutdownTracer := tracing.InitProvider(config.GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0))
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	app := initApp(logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, app, version)

	runServer(logger, handler, app, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initApp opens the database and wires the summary service.
func initApp(logger *slog.Logger) *bootstrap.App {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	app, err := bootstrap.New(ctx, logger)
	if err != nil {
		logger.Error("failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}
	return app
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, app *bootstrap.App, version string) http.Handler {
	mux := setupRoutes(logger, app, version)
	return applyMiddleware(logger, mux)
}

// setupRoutes registers the probes, metrics and the summary API.
func setupRoutes(logger *slog.Logger, app *bootstrap.App, version string) *http.ServeMux {
	breakers := make([]hhttp.Breaker, 0, len(app.Breakers))
	for _, b := range app.Breakers {
		breakers = append(breakers, b)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: app.DB, Version: version, Breakers: breakers, Logger: logger})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: app.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.HandleFunc("GET /api/v1/ping", hhttp.Ping)
	mux.HandleFunc("GET /api/v1/ping/{$}", hhttp.Ping)

	hsummary.Register(mux, hsummary.Deps{
		Svc:           app.Service,
		PaginationCfg: pagination.LoadFromEnv(),
		Counter:       app.Counter,
		ChunkBudget:   app.ChunkBudget,
		Logger:        logger,
	})
	return mux
}

// applyMiddleware wraps the handler with middleware chain.
// Middleware order: CORS → Request ID → Recovery → Tracing → Logging → Body Limit → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Any("allowed_headers", corsConfig.AllowedHeaders),
		slog.Int("max_age", corsConfig.MaxAge))

	requestTimeout := config.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second)

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsConfig)(chain)
	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
// Background summary generations are drained after the listener closes.
func runServer(logger *slog.Logger, handler http.Handler, app *bootstrap.App, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go reportPoolStats(ctx, app, 15*time.Second)

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	cancel()
	app.Service.Wait()
	logger.Info("server stopped")
}

// reportPoolStats publishes connection pool gauges until ctx is done.
func reportPoolStats(ctx context.Context, app *bootstrap.App, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.RecordPoolStats()
		}
	}
}

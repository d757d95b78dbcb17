// Package bootstrap assembles the summary service and its collaborators from
// the environment. The API server and the worker share it.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gianpd/summarizerAI/internal/chunk"
	"github.com/gianpd/summarizerAI/internal/extractive"
	"github.com/gianpd/summarizerAI/internal/infra/adapter/persistence/postgres"
	"github.com/gianpd/summarizerAI/internal/infra/adapter/persistence/sqlite"
	"github.com/gianpd/summarizerAI/internal/infra/classifier"
	"github.com/gianpd/summarizerAI/internal/infra/db"
	"github.com/gianpd/summarizerAI/internal/infra/fetcher"
	"github.com/gianpd/summarizerAI/internal/infra/huggingface"
	"github.com/gianpd/summarizerAI/internal/infra/summarizer"
	"github.com/gianpd/summarizerAI/internal/observability/metrics"
	"github.com/gianpd/summarizerAI/internal/repository"
	"github.com/gianpd/summarizerAI/internal/resilience/circuitbreaker"
	"github.com/gianpd/summarizerAI/internal/resilience/retry"
	"github.com/gianpd/summarizerAI/internal/usecase/summary"
	"github.com/gianpd/summarizerAI/pkg/config"
)

// App is the wired summary service plus what the entrypoints need to serve
// and shut it down.
type App struct {
	DB      *sql.DB
	Driver  db.Driver
	Service *summary.Service
	// Counter is the tokenizer used for chunking.
	Counter     chunk.TokenCounter
	ChunkBudget int
	// Breakers are the circuit breakers of every outbound dependency.
	Breakers []*circuitbreaker.CircuitBreaker
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// RecordPoolStats publishes the connection pool gauges.
func (a *App) RecordPoolStats() {
	if a.DB == nil {
		return
	}
	stats := a.DB.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
}

// OpenDatabase connects with retry and applies the schema.
func OpenDatabase(ctx context.Context, cfg db.Config, logger *slog.Logger) (*sql.DB, error) {
	var conn *sql.DB
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		var err error
		conn, err = db.Open(ctx, cfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.MigrateUp(ctx, conn, cfg.Driver); err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.Info("database ready", slog.String("driver", string(cfg.Driver)))
	return conn, nil
}

// NewRepository returns the summary repository for driver.
func NewRepository(conn *sql.DB, driver db.Driver) repository.SummaryRepository {
	if driver == db.SQLite {
		return sqlite.NewSummaryRepo(conn)
	}
	return postgres.NewSummaryRepo(conn)
}

// New opens the database and builds the summary service.
//
// The keyword classifier is on unless CLASSIFIER_ENABLED=false. The
// abstractive stage follows ABSTRACTIVE_PROVIDER (default none).
func New(ctx context.Context, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbCfg := db.LoadConfig()
	conn, err := OpenDatabase(ctx, dbCfg, logger)
	if err != nil {
		return nil, err
	}

	app, err := build(conn, dbCfg.Driver, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return app, nil
}

func build(conn *sql.DB, driver db.Driver, logger *slog.Logger) (*App, error) {
	app := &App{DB: conn, Driver: driver}

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("fetcher config: %w", err)
	}
	contentFetcher := fetcher.NewReadabilityFetcher(fetchCfg)
	app.Breakers = append(app.Breakers, contentFetcher.Breaker())

	hfCfg, err := huggingface.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	sumCfg, err := summary.LoadConfig()
	if err != nil {
		return nil, err
	}

	svc := &summary.Service{
		Repo:      NewRepository(conn, driver),
		Fetcher:   contentFetcher,
		Extractor: extractive.NewDefault(logger),
		Config:    sumCfg,
		Logger:    logger,
	}

	if config.GetEnvBool("CLASSIFIER_ENABLED", true) {
		clsCfg, err := classifier.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("classifier config: %w", err)
		}
		client := huggingface.NewClient("classifier", hfCfg, logger)
		svc.Classifier = classifier.NewZeroShot(client, clsCfg, logger)
		app.Breakers = append(app.Breakers, client.Breaker())
	}

	app.Counter = chunk.Shared(config.GetEnvString("TOKENIZER_ENCODING", chunk.DefaultEncoding), logger)
	app.ChunkBudget = config.GetEnvInt("CHUNK_TOKEN_BUDGET", chunk.DefaultBudget)
	if app.ChunkBudget <= 0 {
		return nil, fmt.Errorf("%w: CHUNK_TOKEN_BUDGET must be positive, got %d", chunk.ErrInvalidArgument, app.ChunkBudget)
	}

	provider, err := summarizer.ParseProvider(config.GetEnvString("ABSTRACTIVE_PROVIDER", string(summarizer.ProviderNone)))
	if err != nil {
		return nil, err
	}
	var hf *huggingface.Client
	if provider == summarizer.ProviderHuggingFace {
		hf = huggingface.NewClient("summarizer", hfCfg, logger)
		app.Breakers = append(app.Breakers, hf.Breaker())
	}
	abstractor, err := summarizer.FromEnv(provider, hf, logger)
	if err != nil {
		return nil, fmt.Errorf("abstractive summarizer: %w", err)
	}
	if abstractor != nil {
		if b, ok := abstractor.(interface {
			Breaker() *circuitbreaker.CircuitBreaker
		}); ok && b.Breaker() != nil {
			app.Breakers = append(app.Breakers, b.Breaker())
		}
		svc.Abstractor = &summary.ChunkedAbstractor{
			Chunker:    chunk.New(app.Counter, app.ChunkBudget),
			Summarizer: abstractor,
		}
	}

	logger.Info("summary service configured",
		slog.String("abstractive_provider", string(provider)),
		slog.Bool("classifier", svc.Classifier != nil),
		slog.Int("sentences", sumCfg.SentenceCount),
		slog.Int("chunk_token_budget", app.ChunkBudget))

	app.Service = svc
	return app, nil
}

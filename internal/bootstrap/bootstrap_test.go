package bootstrap

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianpd/summarizerAI/internal/chunk"
	"github.com/gianpd/summarizerAI/internal/infra/db"
	"github.com/gianpd/summarizerAI/internal/usecase/summary"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := db.DefaultConfig()
	cfg.Driver = db.SQLite
	cfg.DSN = "file::memory:"
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1

	conn, err := OpenDatabase(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBuild_ExtractiveOnly(t *testing.T) {
	t.Setenv("ABSTRACTIVE_PROVIDER", "none")
	t.Setenv("CLASSIFIER_ENABLED", "false")

	app, err := build(memoryDB(t), db.SQLite, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, app.Service.Abstractor)
	assert.Nil(t, app.Service.Classifier)
	assert.Equal(t, chunk.DefaultBudget, app.ChunkBudget)
	assert.Len(t, app.Breakers, 1, "content fetcher only")
	assert.Equal(t, summary.DefaultConfig().SentenceCount, app.Service.Config.SentenceCount)
}

func TestBuild_HuggingFaceWithClassifier(t *testing.T) {
	t.Setenv("ABSTRACTIVE_PROVIDER", "huggingface")
	t.Setenv("CLASSIFIER_ENABLED", "true")
	t.Setenv("CHUNK_TOKEN_BUDGET", "512")

	app, err := build(memoryDB(t), db.SQLite, discardLogger())
	require.NoError(t, err)

	require.IsType(t, &summary.ChunkedAbstractor{}, app.Service.Abstractor)
	assert.NotNil(t, app.Service.Classifier)
	assert.Equal(t, 512, app.ChunkBudget)
	assert.Len(t, app.Breakers, 3)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"ABSTRACTIVE_PROVIDER": "gpt2"}},
		{"claude without key", map[string]string{"ABSTRACTIVE_PROVIDER": "claude", "ANTHROPIC_API_KEY": ""}},
		{"bad budget", map[string]string{"CHUNK_TOKEN_BUDGET": "-1"}},
		{"bad sentences", map[string]string{"SUMMARY_SENTENCES": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLASSIFIER_ENABLED", "false")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := build(memoryDB(t), db.SQLite, discardLogger())
			assert.Error(t, err)
		})
	}
}

func TestNewRepository(t *testing.T) {
	conn := memoryDB(t)
	repo := NewRepository(conn, db.SQLite)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordPoolStats(t *testing.T) {
	app := &App{DB: memoryDB(t)}
	assert.NotPanics(t, app.RecordPoolStats)
	assert.NotPanics(t, (&App{}).RecordPoolStats)
	assert.NoError(t, (&App{}).Close())
}

package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = map[Driver][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS summaries (
    id         BIGSERIAL PRIMARY KEY,
    url        TEXT NOT NULL,
    summary    TEXT NOT NULL DEFAULT '',
    key_top    TEXT NOT NULL DEFAULT '',
    keywords   TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ
)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_url_created ON summaries(url, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_pending ON summaries(created_at) WHERE summary = ''`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS summaries (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    url        TEXT NOT NULL,
    summary    TEXT NOT NULL DEFAULT '',
    key_top    TEXT NOT NULL DEFAULT '',
    keywords   TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME
)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_url_created ON summaries(url, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_pending ON summaries(created_at) WHERE summary = ''`,
	},
}

// optional statements may fail (missing extension or privileges) without
// aborting the migration.
var optional = map[Driver][]string{
	Postgres: {
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_keywords_gin ON summaries USING gin(keywords gin_trgm_ops)`,
	},
}

// MigrateUp creates the summaries table and its indexes. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, driver Driver) error {
	stmts, ok := schema[driver]
	if !ok {
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	for _, stmt := range optional[driver] {
		_, _ = db.ExecContext(ctx, stmt)
	}
	return nil
}

// MigrateDown drops the summaries table. All stored summaries are lost.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS summaries`); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

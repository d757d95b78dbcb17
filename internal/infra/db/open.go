// Package db opens the SQL database and applies the schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// Driver names the SQL dialect in use.
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

// driverName maps a dialect to the database/sql driver registered for it.
func (d Driver) driverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// Config holds how to reach the database and how to size the pool.
type Config struct {
	Driver          Driver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DefaultConfig returns pool defaults for Postgres.
func DefaultConfig() Config {
	return Config{
		Driver:          Postgres,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// LoadConfig reads DB_DRIVER, DATABASE_URL (or SQLITE_PATH) and the
// DB_* pool variables.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.Driver = Driver(config.GetEnvString("DB_DRIVER", string(Postgres)))
	if cfg.Driver == SQLite {
		cfg.DSN = config.GetEnvString("SQLITE_PATH", "file:summaries.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
		// SQLite serializes writers; one connection avoids SQLITE_BUSY.
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	} else {
		cfg.DSN = config.GetEnvString("DATABASE_URL", "")
		cfg.MaxOpenConns = positive(config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns), cfg.MaxOpenConns)
		cfg.MaxIdleConns = positive(config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns), cfg.MaxIdleConns)
	}
	cfg.ConnMaxLifetime = positive(config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime), cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = positive(config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime), cfg.ConnMaxIdleTime)
	return cfg
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	if c.Driver != Postgres && c.Driver != SQLite {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	return nil
}

func positive[T int | time.Duration](v, fallback T) T {
	if v <= 0 {
		return fallback
	}
	return v
}

// Open creates the pool described by cfg and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open(cfg.Driver.driverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", string(cfg.Driver)),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

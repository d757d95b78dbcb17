// Package pagination parses skip/limit query parameters and builds paginated
// list responses.
package pagination

import "github.com/gianpd/summarizerAI/pkg/config"

// Config holds pagination limits.
type Config struct {
	DefaultLimit int // Items returned when the client sends no limit
	MaxLimit     int // Largest limit a client may request
}

// DefaultConfig returns a default limit of 100 and a maximum of 1000.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 100,
		MaxLimit:     1000,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT.
// A default above the maximum is clamped to it.
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.MaxLimit < 1 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.DefaultLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(def.DefaultLimit, cfg.MaxLimit)
	}
	return cfg
}

package summary

import (
	"fmt"
	"time"

	"github.com/gianpd/summarizerAI/internal/extractive"
	"github.com/gianpd/summarizerAI/pkg/config"
)

// Config controls summary generation.
type Config struct {
	// SentenceCount is the extractive summary length.
	SentenceCount int
	// DedupWindow is how long a URL's summary is reused instead of regenerated.
	DedupWindow time.Duration
	// GenerationTimeout bounds one background generation.
	GenerationTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		SentenceCount:     extractive.DefaultSentenceCount,
		DedupWindow:       time.Hour,
		GenerationTimeout: 5 * time.Minute,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := config.ValidateIntRange(c.SentenceCount, 1, 100); err != nil {
		return fmt.Errorf("sentence count: %w", err)
	}
	if c.DedupWindow < 0 {
		return fmt.Errorf("dedup window must not be negative, got %v", c.DedupWindow)
	}
	if err := config.ValidatePositiveDuration(c.GenerationTimeout); err != nil {
		return fmt.Errorf("generation timeout: %w", err)
	}
	return nil
}

// LoadConfig reads SUMMARY_SENTENCES, SUMMARY_DEDUP_WINDOW and
// SUMMARY_GENERATION_TIMEOUT over the defaults.
func LoadConfig() (Config, error) {
	d := DefaultConfig()
	cfg := Config{
		SentenceCount:     config.GetEnvInt("SUMMARY_SENTENCES", d.SentenceCount),
		DedupWindow:       config.GetEnvDuration("SUMMARY_DEDUP_WINDOW", d.DedupWindow),
		GenerationTimeout: config.GetEnvDuration("SUMMARY_GENERATION_TIMEOUT", d.GenerationTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("summary config: %w", err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SentenceCount <= 0 {
		c.SentenceCount = d.SentenceCount
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = d.GenerationTimeout
	}
	return c
}

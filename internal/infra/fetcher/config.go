package fetcher

import (
	"fmt"
	"time"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// ContentFetchConfig holds the configuration for article downloads.
type ContentFetchConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 15s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes, enforced while
	// reading rather than from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow. Each
	// redirect target is validated with the same SSRF rules as the original URL.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to loopback, private or link-local
	// addresses. Should always be true in production.
	// Default: true
	DenyPrivateIPs bool

	// MinContentLength is the readability text length (in characters) below which
	// the paragraph extractor is tried as well; the longer of the two wins.
	// Default: 200
	MinContentLength int

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the default configuration for article downloads.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Timeout:          15 * time.Second,
		MaxBodySize:      10 * 1024 * 1024, // 10MB
		MaxRedirects:     5,
		DenyPrivateIPs:   true,
		MinContentLength: 200,
		UserAgent:        "SummarizerBot/1.0",
	}
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
//   - MinContentLength: >= 0
func (c *ContentFetchConfig) Validate() error {
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if err := config.ValidateIntRange(c.MaxRedirects, 0, 10); err != nil {
		return fmt.Errorf("max redirects: %w", err)
	}

	if c.MinContentLength < 0 {
		return fmt.Errorf("min content length must be non-negative, got %d", c.MinContentLength)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables, falling back
// to defaults for unset or malformed values, and validates the result.
//
// Environment variables:
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g. "15s"
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer in bytes
//   - CONTENT_FETCH_MAX_REDIRECTS: integer
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false"
//   - CONTENT_FETCH_MIN_LENGTH: integer
//   - CONTENT_FETCH_USER_AGENT: string
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	def := DefaultConfig()
	cfg := ContentFetchConfig{
		Timeout:          config.GetEnvDuration("CONTENT_FETCH_TIMEOUT", def.Timeout),
		MaxBodySize:      int64(config.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:     config.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs:   config.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		MinContentLength: config.GetEnvInt("CONTENT_FETCH_MIN_LENGTH", def.MinContentLength),
		UserAgent:        config.GetEnvString("CONTENT_FETCH_USER_AGENT", def.UserAgent),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Package retry retries transient failures with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var attemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "retry_attempts_total",
		Help: "Attempts made by retried operations, by outcome (success, retry, gave_up, fatal)",
	},
	[]string{"op", "outcome"},
)

// Config holds the configuration for retry logic.
type Config struct {
	// Op names the operation in logs and metrics. Empty means "unnamed".
	Op string

	// MaxAttempts counts the first call too.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps both the computed backoff and server Retry-After hints.
	MaxDelay time.Duration

	// Multiplier grows the delay between attempts.
	Multiplier float64

	// JitterFraction adds up to this fraction of the delay at random (0.0 to 1.0).
	JitterFraction float64
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		Op:             "default",
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// InferenceConfig returns configuration for hosted model calls (summarization,
// classification). Hugging Face answers 503 while a model is loading, so the
// delays are longer than for plain HTTP.
func InferenceConfig() Config {
	cfg := DefaultConfig()
	cfg.Op = "inference"
	cfg.InitialDelay = 2 * time.Second
	cfg.MaxDelay = 20 * time.Second
	return cfg
}

// DBConfig returns configuration for reaching the database at startup.
func DBConfig() Config {
	cfg := DefaultConfig()
	cfg.Op = "db-connect"
	cfg.MaxAttempts = 5
	cfg.InitialDelay = 500 * time.Millisecond
	cfg.MaxDelay = 5 * time.Second
	return cfg
}

// backoff is the un-jittered delay after the given failed attempt (1-based).
func (c Config) backoff(attempt int) time.Duration {
	mult := c.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(c.InitialDelay) * math.Pow(mult, float64(attempt-1))
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

func (c Config) op() string {
	if c.Op == "" {
		return "unnamed"
	}
	return c.Op
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error, or
// MaxAttempts is spent. Waiting between attempts stops early when ctx ends.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	op := cfg.op()
	var err error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			attemptsTotal.WithLabelValues(op, "success").Inc()
			if attempt > 1 {
				slog.InfoContext(ctx, "operation succeeded after retry",
					slog.String("op", op),
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(err) {
			attemptsTotal.WithLabelValues(op, "fatal").Inc()
			slog.WarnContext(ctx, "non-retryable error, aborting",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		attemptsTotal.WithLabelValues(op, "retry").Inc()

		wait := max(addJitter(cfg.backoff(attempt), cfg.JitterFraction), retryAfter(err, cfg.MaxDelay))
		slog.WarnContext(ctx, "operation failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	attemptsTotal.WithLabelValues(op, "gave_up").Inc()
	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, err)
}

// IsRetryable reports whether err is transient: network timeouts, refused or
// reset connections, and HTTP 408, 429 and 5xx responses. Context errors never are.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	code := httpErr.StatusCode
	return code >= 500 && code < 600 ||
		code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout
}

// HTTPError is an upstream answer with a non-success status.
type HTTPError struct {
	StatusCode int
	Message    string

	// RetryAfter is the server's hint (Retry-After header, or a model's
	// estimated load time). Zero means no hint.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// retryAfter returns the server hint carried by err, capped at limit.
func retryAfter(err error, limit time.Duration) time.Duration {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.RetryAfter <= 0 {
		return 0
	}
	return min(httpErr.RetryAfter, limit)
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- backoff jitter does not need crypto randomness.
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}

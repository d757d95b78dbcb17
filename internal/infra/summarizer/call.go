package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gianpd/summarizerAI/internal/resilience/circuitbreaker"
	"github.com/gianpd/summarizerAI/internal/resilience/retry"
	"github.com/gianpd/summarizerAI/internal/utils/text"
)

// ErrEmptyResponse is returned when a provider answers without any summary text.
var ErrEmptyResponse = errors.New("provider returned empty summary")

// guard holds what every provider needs around its raw API call. A nil
// circuit breaker or a single-attempt retry config skips that layer.
type guard struct {
	provider       Provider
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	timeout        time.Duration
	charLimit      int
	metrics        MetricsRecorder
	logger         *slog.Logger
}

// run applies the timeout, retry and circuit breaker to call, then logs and
// records the result.
func (g *guard) run(ctx context.Context, input string, call func(ctx context.Context) (string, error)) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var (
		summary string
		elapsed time.Duration
	)
	attempt := func() error {
		start := time.Now()
		out, err := g.execute(ctx, call)
		if err != nil {
			return err
		}
		summary, elapsed = out, time.Since(start)
		return nil
	}

	var err error
	if g.retryConfig.MaxAttempts > 1 {
		err = retry.WithBackoff(ctx, g.retryConfig, attempt)
	} else {
		err = attempt()
	}
	if err != nil {
		g.metrics.RecordFailure()
		g.logger.ErrorContext(ctx, "summarization failed",
			slog.String("provider", string(g.provider)),
			slog.Int("input_length", text.CountRunes(input)),
			slog.Any("error", err))
		return "", fmt.Errorf("%s summarize: %w", g.provider, err)
	}

	length := text.CountRunes(summary)
	withinLimit := g.charLimit <= 0 || length <= g.charLimit
	g.logger.InfoContext(ctx, "summarization completed",
		slog.String("provider", string(g.provider)),
		slog.Int("input_length", text.CountRunes(input)),
		slog.Int("summary_length", length),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", elapsed))

	g.metrics.RecordLength(length)
	g.metrics.RecordDuration(elapsed)
	if !withinLimit {
		g.metrics.RecordLimitExceeded()
	}
	return summary, nil
}

// execute passes call through the circuit breaker when one is configured.
func (g *guard) execute(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	out, err := circuitbreaker.Do(g.circuitBreaker, func() (string, error) {
		return call(ctx)
	})
	if err != nil {
		if circuitbreaker.IsRejected(err) {
			g.logger.WarnContext(ctx, "circuit breaker open, request rejected",
				slog.String("provider", string(g.provider)),
				slog.String("state", g.circuitBreaker.State().String()))
			return "", fmt.Errorf("%s unavailable: circuit breaker open", g.provider)
		}
		return "", err
	}
	return out, nil
}

// clampInput cuts text sent to chat models to maxInputRunes.
func clampInput(logger *slog.Logger, provider Provider, s string) string {
	if text.CountRunes(s) <= maxInputRunes {
		return s
	}
	logger.Warn("text truncated before summarization",
		slog.String("provider", string(provider)),
		slog.Int("original_length", text.CountRunes(s)),
		slog.Int("truncated_length", maxInputRunes))
	return text.TruncateRunes(s, maxInputRunes)
}

// statusError lets retry.IsRetryable classify SDK errors by HTTP status.
func statusError(status int, err error) error {
	if status == 0 {
		return err
	}
	return fmt.Errorf("%w: %w", &retry.HTTPError{StatusCode: status, Message: err.Error()}, err)
}

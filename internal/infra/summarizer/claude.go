package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gianpd/summarizerAI/internal/resilience/circuitbreaker"
	"github.com/gianpd/summarizerAI/internal/resilience/retry"
)

// LoadClaudeConfig reads CLAUDE_MODEL and CLAUDE_BASE_URL on top of the shared settings.
func LoadClaudeConfig() (LLMConfig, error) {
	return loadLLMConfig("CLAUDE", string(anthropic.ModelClaudeSonnet4_5_20250929))
}

// Claude summarizes chunks with Anthropic's Messages API.
type Claude struct {
	client anthropic.Client
	config LLMConfig
	guard  guard
}

// NewClaude creates a Claude summarizer. SDK retries are disabled; the guard retries instead.
func NewClaude(apiKey string, cfg LLMConfig, logger *slog.Logger) *Claude {
	if logger == nil {
		logger = slog.Default()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger.Info("initialized claude summarizer",
		slog.Int("character_limit", cfg.CharacterLimit),
		slog.String("model", cfg.Model))

	return &Claude{
		client: anthropic.NewClient(opts...),
		config: cfg,
		guard: guard{
			provider:       ProviderClaude,
			circuitBreaker: circuitbreaker.New(circuitbreaker.ConfigFor(circuitbreaker.KindChatAPI, "claude-api")),
			retryConfig:    retry.InferenceConfig(),
			timeout:        cfg.Timeout,
			charLimit:      cfg.CharacterLimit,
			metrics:        NewPrometheusMetrics(ProviderClaude),
			logger:         logger,
		},
	}
}

// Breaker exposes the API circuit breaker for health reporting.
func (c *Claude) Breaker() *circuitbreaker.CircuitBreaker { return c.guard.circuitBreaker }

func (c *Claude) Summarize(ctx context.Context, input string) (string, error) {
	return c.guard.run(ctx, input, func(ctx context.Context) (string, error) {
		return c.doSummarize(ctx, input)
	})
}

func (c *Claude) doSummarize(ctx context.Context, input string) (string, error) {
	prompt := buildPrompt(c.config.CharacterLimit, clampInput(c.guard.logger, ProviderClaude, input))

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", statusError(apiErr.StatusCode, fmt.Errorf("claude api error: %w", err))
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}

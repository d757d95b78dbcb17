package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gianpd/summarizerAI/internal/resilience/circuitbreaker"
	"github.com/gianpd/summarizerAI/internal/resilience/retry"
)

// LoadOpenAIConfig reads OPENAI_MODEL and OPENAI_BASE_URL on top of the shared settings.
func LoadOpenAIConfig() (LLMConfig, error) {
	return loadLLMConfig("OPENAI", openai.GPT4oMini)
}

// OpenAI summarizes chunks with the Chat Completions API.
type OpenAI struct {
	client *openai.Client
	config LLMConfig
	guard  guard
}

// NewOpenAI creates an OpenAI summarizer.
func NewOpenAI(apiKey string, cfg LLMConfig, logger *slog.Logger) *OpenAI {
	if logger == nil {
		logger = slog.Default()
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger.Info("initialized openai summarizer",
		slog.Int("character_limit", cfg.CharacterLimit),
		slog.String("model", cfg.Model))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		config: cfg,
		guard: guard{
			provider:       ProviderOpenAI,
			circuitBreaker: circuitbreaker.New(circuitbreaker.ConfigFor(circuitbreaker.KindChatAPI, "openai-api")),
			retryConfig:    retry.InferenceConfig(),
			timeout:        cfg.Timeout,
			charLimit:      cfg.CharacterLimit,
			metrics:        NewPrometheusMetrics(ProviderOpenAI),
			logger:         logger,
		},
	}
}

// Breaker exposes the API circuit breaker for health reporting.
func (o *OpenAI) Breaker() *circuitbreaker.CircuitBreaker { return o.guard.circuitBreaker }

func (o *OpenAI) Summarize(ctx context.Context, input string) (string, error) {
	return o.guard.run(ctx, input, func(ctx context.Context) (string, error) {
		return o.doSummarize(ctx, input)
	})
}

func (o *OpenAI) doSummarize(ctx context.Context, input string) (string, error) {
	prompt := buildPrompt(o.config.CharacterLimit, clampInput(o.guard.logger, ProviderOpenAI, input))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", statusError(apiErr.HTTPStatusCode, fmt.Errorf("openai api error: %w", err))
		}
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}

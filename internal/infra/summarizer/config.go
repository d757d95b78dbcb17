// Package summarizer provides abstractive summarizers for text chunks: hosted
// Hugging Face models, Claude and OpenAI, each with retry, circuit breaking and
// Prometheus metrics.
package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// Summarizer condenses one chunk of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Provider selects the abstractive backend.
type Provider string

const (
	ProviderNone        Provider = "none"
	ProviderHuggingFace Provider = "huggingface"
	ProviderClaude      Provider = "claude"
	ProviderOpenAI      Provider = "openai"
	ProviderNoOp        Provider = "noop"
)

// ParseProvider maps ABSTRACTIVE_PROVIDER values to a Provider; empty means none.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProviderNone, nil
	case ProviderNone, ProviderHuggingFace, ProviderClaude, ProviderOpenAI, ProviderNoOp:
		return p, nil
	default:
		return "", fmt.Errorf("unknown abstractive provider %q", s)
	}
}

const (
	minCharLimit     = 100
	maxCharLimit     = 5000
	defaultCharLimit = 900

	// maxInputRunes caps what is sent to chat models; chunks are normally far below it.
	maxInputRunes = 10000
)

// ValidateCharacterLimit checks 100 <= limit <= 5000.
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}

// LLMConfig configures the chat-model summarizers (Claude, OpenAI).
type LLMConfig struct {
	// CharacterLimit is a soft limit stated in the prompt; longer answers are
	// kept but counted in metrics. Valid range: 100-5000. Default: 900.
	CharacterLimit int

	// Model is the provider's model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout bounds a single summarization call, retries included.
	Timeout time.Duration

	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

// Validate checks the configuration.
func (c LLMConfig) Validate() error {
	if err := ValidateCharacterLimit(c.CharacterLimit); err != nil {
		return fmt.Errorf("invalid character limit: %w", err)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	return nil
}

// loadLLMConfig reads SUMMARIZER_CHAR_LIMIT, SUMMARIZER_MAX_TOKENS,
// SUMMARIZER_TIMEOUT and the provider specific <prefix>_MODEL / <prefix>_BASE_URL.
func loadLLMConfig(prefix, defaultModel string) (LLMConfig, error) {
	cfg := LLMConfig{
		CharacterLimit: config.GetEnvInt("SUMMARIZER_CHAR_LIMIT", defaultCharLimit),
		Model:          config.GetEnvString(prefix+"_MODEL", defaultModel),
		MaxTokens:      config.GetEnvInt("SUMMARIZER_MAX_TOKENS", 1024),
		Timeout:        config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		BaseURL:        config.GetEnvString(prefix+"_BASE_URL", ""),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s configuration: %w", strings.ToLower(prefix), err)
	}
	return cfg, nil
}

// buildPrompt is shared by the chat-model summarizers.
func buildPrompt(limit int, text string) string {
	return fmt.Sprintf("Summarize the following text in at most %d characters. "+
		"Answer with the summary only, in the language of the text.\n\n%s", limit, text)
}

package summarizer

import (
	"fmt"
	"log/slog"

	"github.com/gianpd/summarizerAI/internal/infra/huggingface"
	"github.com/gianpd/summarizerAI/pkg/config"
)

// FromEnv builds the summarizer selected by ABSTRACTIVE_PROVIDER. It returns
// (nil, nil) for ProviderNone; hf is only used for ProviderHuggingFace.
func FromEnv(provider Provider, hf *huggingface.Client, logger *slog.Logger) (Summarizer, error) {
	switch provider {
	case ProviderNone:
		return nil, nil
	case ProviderHuggingFace:
		if hf == nil {
			return nil, fmt.Errorf("huggingface provider requires an inference client")
		}
		cfg, err := LoadHuggingFaceConfig()
		if err != nil {
			return nil, err
		}
		return NewHuggingFace(hf, cfg, logger), nil
	case ProviderClaude:
		apiKey := config.GetEnvString("ANTHROPIC_API_KEY", "")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the claude provider")
		}
		cfg, err := LoadClaudeConfig()
		if err != nil {
			return nil, err
		}
		return NewClaude(apiKey, cfg, logger), nil
	case ProviderOpenAI:
		apiKey := config.GetEnvString("OPENAI_API_KEY", "")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		cfg, err := LoadOpenAIConfig()
		if err != nil {
			return nil, err
		}
		return NewOpenAI(apiKey, cfg, logger), nil
	case ProviderNoOp:
		return NewNoOp(config.GetEnvInt("NOOP_SUMMARY_LIMIT", defaultCharLimit)), nil
	default:
		return nil, fmt.Errorf("unknown abstractive provider %q", provider)
	}
}

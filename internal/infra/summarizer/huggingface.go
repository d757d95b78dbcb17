package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gianpd/summarizerAI/internal/infra/huggingface"
	"github.com/gianpd/summarizerAI/pkg/config"
)

// DefaultHuggingFaceModel is a BART model fine-tuned on CNN/DailyMail; its
// 1024-token input window is why chunks default to that budget.
const DefaultHuggingFaceModel = "facebook/bart-large-cnn"

// HuggingFaceConfig configures the hosted summarization model.
type HuggingFaceConfig struct {
	Model     string
	MinLength int
	MaxLength int
}

// LoadHuggingFaceConfig reads HF_SUMMARY_MODEL, HF_SUMMARY_MIN_LENGTH and HF_SUMMARY_MAX_LENGTH.
func LoadHuggingFaceConfig() (HuggingFaceConfig, error) {
	cfg := HuggingFaceConfig{
		Model:     config.GetEnvString("HF_SUMMARY_MODEL", DefaultHuggingFaceModel),
		MinLength: config.GetEnvInt("HF_SUMMARY_MIN_LENGTH", 30),
		MaxLength: config.GetEnvInt("HF_SUMMARY_MAX_LENGTH", 142),
	}
	if cfg.MinLength < 0 || cfg.MaxLength <= cfg.MinLength {
		return cfg, fmt.Errorf("invalid summary length bounds [%d, %d]", cfg.MinLength, cfg.MaxLength)
	}
	return cfg, nil
}

type summarizationParameters struct {
	DoSample  bool `json:"do_sample"`
	MinLength int  `json:"min_length,omitempty"`
	MaxLength int  `json:"max_length,omitempty"`
}

type summarizationOutput []struct {
	SummaryText string `json:"summary_text"`
}

// HuggingFace summarizes chunks with a hosted summarization pipeline.
type HuggingFace struct {
	client *huggingface.Client
	config HuggingFaceConfig
	guard  guard
}

// NewHuggingFace creates a summarizer on top of client. Retries and circuit
// breaking happen inside the client, so the guard only logs and records metrics.
func NewHuggingFace(client *huggingface.Client, cfg HuggingFaceConfig, logger *slog.Logger) *HuggingFace {
	if logger == nil {
		logger = slog.Default()
	}
	return &HuggingFace{
		client: client,
		config: cfg,
		guard: guard{
			provider: ProviderHuggingFace,
			metrics:  NewPrometheusMetrics(ProviderHuggingFace),
			logger:   logger,
		},
	}
}

func (h *HuggingFace) Summarize(ctx context.Context, input string) (string, error) {
	return h.guard.run(ctx, input, func(ctx context.Context) (string, error) {
		return h.doSummarize(ctx, input)
	})
}

func (h *HuggingFace) doSummarize(ctx context.Context, input string) (string, error) {
	req := h.client.NewRequest(input, summarizationParameters{
		DoSample:  false,
		MinLength: h.config.MinLength,
		MaxLength: h.config.MaxLength,
	})

	var out summarizationOutput
	if err := h.client.Infer(ctx, h.config.Model, req, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", ErrEmptyResponse
	}
	summary := strings.TrimSpace(out[0].SummaryText)
	if summary == "" {
		return "", ErrEmptyResponse
	}
	return summary, nil
}

// Package classifier tags summaries with topic keywords using a hosted
// zero-shot classification model.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gianpd/summarizerAI/internal/infra/huggingface"
)

var classifierCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "keyword_classifier_calls_total",
	Help: "Total number of zero-shot classification calls by result (success, failure, skipped)",
}, []string{"result"})

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type zeroShotOutput struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// ZeroShot classifies text against candidate labels, each label scored
// independently (multi-label).
type ZeroShot struct {
	client *huggingface.Client
	config Config
	logger *slog.Logger
}

// NewZeroShot creates a classifier on top of client.
func NewZeroShot(client *huggingface.Client, cfg Config, logger *slog.Logger) *ZeroShot {
	if logger == nil {
		logger = slog.Default()
	}
	return &ZeroShot{client: client, config: cfg, logger: logger}
}

// Keywords returns the labels that pass the threshold among the top K, best
// first. Blank text yields no keywords without calling the model.
func (z *ZeroShot) Keywords(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		classifierCalls.WithLabelValues("skipped").Inc()
		return nil, nil
	}

	req := z.client.NewRequest(text, zeroShotParameters{
		CandidateLabels: z.config.Labels,
		MultiLabel:      true,
	})

	var out zeroShotOutput
	if err := z.client.Infer(ctx, z.config.Model, req, &out); err != nil {
		classifierCalls.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("zero-shot classify: %w", err)
	}
	if len(out.Labels) != len(out.Scores) {
		classifierCalls.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("zero-shot classify: %d labels but %d scores", len(out.Labels), len(out.Scores))
	}
	classifierCalls.WithLabelValues("success").Inc()

	keywords := SelectKeywords(out.Labels, out.Scores, z.config.Threshold, z.config.TopK)
	z.logger.DebugContext(ctx, "keywords predicted",
		slog.Any("labels", out.Labels),
		slog.Float64("threshold", z.config.Threshold),
		slog.Any("keywords", keywords))
	return keywords, nil
}

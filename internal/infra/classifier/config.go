package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// DefaultModel is the NLI model used for zero-shot classification.
const DefaultModel = "facebook/bart-large-mnli"

// DefaultLabels are the candidate topics a summary is classified against.
var DefaultLabels = []string{
	"literature", "history", "cinema", "cooking", "dancing", "holidays",
	"finance", "technology", "science", "politics", "economy", "society",
}

// Config controls keyword selection.
type Config struct {
	Model     string   `yaml:"model"`
	Labels    []string `yaml:"labels"`
	Threshold float64  `yaml:"threshold"`
	TopK      int      `yaml:"top_k"`
}

// DefaultConfig returns the stock label set with threshold 0.55 over the top 5 labels.
func DefaultConfig() Config {
	return Config{
		Model:     DefaultModel,
		Labels:    append([]string(nil), DefaultLabels...),
		Threshold: 0.55,
		TopK:      5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if len(c.Labels) == 0 {
		return fmt.Errorf("at least one candidate label is required")
	}
	if err := config.ValidateProbability(c.Threshold); err != nil {
		return fmt.Errorf("threshold: %w", err)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}
	return nil
}

// LoadConfig starts from DefaultConfig, overlays the YAML file named by
// CLASSIFIER_LABELS_FILE (fields left out keep their defaults), then the
// CLASSIFIER_MODEL, CLASSIFIER_THRESHOLD and CLASSIFIER_TOP_K variables.
//
//	model: facebook/bart-large-mnli
//	labels: [sport, music, travel]
//	threshold: 0.6
//	top_k: 3
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := config.GetEnvString("CLASSIFIER_LABELS_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read labels file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse labels file %s: %w", path, err)
		}
	}

	cfg.Model = config.GetEnvString("CLASSIFIER_MODEL", cfg.Model)
	cfg.Threshold = config.GetEnvFloat("CLASSIFIER_THRESHOLD", cfg.Threshold)
	cfg.TopK = config.GetEnvInt("CLASSIFIER_TOP_K", cfg.TopK)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("classifier config: %w", err)
	}
	return cfg, nil
}

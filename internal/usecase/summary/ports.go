package summary

import (
	"context"

	"github.com/gianpd/summarizerAI/internal/extractive"
)

// Extractor produces an extractive summary of n sentences.
type Extractor interface {
	Run(text string, n int) (extractive.Outcome, error)
}

// AbstractiveSummarizer rewrites text into a shorter abstract.
type AbstractiveSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// KeywordClassifier assigns topic keywords to a summary, best first.
type KeywordClassifier interface {
	Keywords(ctx context.Context, text string) ([]string, error)
}

// Chunker splits text into token-bounded chunks.
type Chunker interface {
	Chunk(text string) ([]string, error)
}

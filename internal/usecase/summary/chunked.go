package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gianpd/summarizerAI/internal/observability/metrics"
)

// DefaultParallelism bounds concurrent chunk summarization.
const DefaultParallelism = 4

// ChunkedAbstractor summarizes documents longer than a model's context by
// splitting them into token-bounded chunks, summarizing each chunk and joining
// the partial summaries in chunk order with a single space.
type ChunkedAbstractor struct {
	Chunker     Chunker
	Summarizer  AbstractiveSummarizer
	Parallelism int
}

// Summarize implements AbstractiveSummarizer. Any chunk failure fails the
// whole document.
func (c *ChunkedAbstractor) Summarize(ctx context.Context, text string) (string, error) {
	if c.Chunker == nil || c.Summarizer == nil {
		return "", errors.New("chunked abstractor: chunker and summarizer are required")
	}

	chunks, err := c.Chunker.Chunk(text)
	if err != nil {
		return "", fmt.Errorf("chunk text: %w", err)
	}
	metrics.RecordDocumentChunks(len(chunks))
	if len(chunks) == 0 {
		return "", nil
	}

	parts := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism())
	for i, chunk := range chunks {
		g.Go(func() error {
			out, err := c.Summarizer.Summarize(gctx, chunk)
			if err != nil {
				return fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
			}
			parts[i] = strings.TrimSpace(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " "), nil
}

func (c *ChunkedAbstractor) parallelism() int {
	if c.Parallelism <= 0 {
		return DefaultParallelism
	}
	return c.Parallelism
}

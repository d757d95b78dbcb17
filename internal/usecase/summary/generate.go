package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/gianpd/summarizerAI/internal/observability/logging"
	"github.com/gianpd/summarizerAI/internal/observability/metrics"
	"github.com/gianpd/summarizerAI/internal/observability/tracing"
)

// Generate fetches the article at url, summarizes it, classifies the summary
// and stores the result on summary id.
//
// Keyword classification and abstractive summarization are best effort:
// their failures are logged and generation continues with what is available.
func (s *Service) Generate(ctx context.Context, id int64, url string) (err error) {
	ctx, span := tracing.Start(ctx, "summary.generate",
		attribute.Int64("summary.id", id),
		attribute.String("summary.url", url))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.RecordSummaryGenerated(err == nil, time.Since(start))
		tracing.RecordError(span, err)
	}()

	log := logging.WithTrace(ctx, s.logger()).With(slog.Int64("summary_id", id))

	fetchStart := time.Now()
	content, err := s.Fetcher.FetchContent(ctx, url)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(fetchStart))
		return fmt.Errorf("fetch content: %w", err)
	}
	metrics.RecordContentFetchSuccess(time.Since(fetchStart), len(content))
	log.Debug("content fetched", slog.Int("length", len(content)))

	text, err := s.summarize(ctx, log, content)
	if err != nil {
		return err
	}

	keywords := s.keywords(ctx, log, text)

	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}
	if rec == nil {
		// Deleted while generating.
		return ErrSummaryNotFound
	}

	rec.Summary = text
	rec.SetKeywords(keywords)
	if err := s.Repo.Update(ctx, rec); err != nil {
		return s.mapNotFound("update summary", err)
	}

	log.Info("summary generated",
		slog.Int("summary_length", len(text)),
		slog.Any("keywords", rec.KeywordList()),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (s *Service) summarize(ctx context.Context, log *slog.Logger, content string) (string, error) {
	outcome, err := s.Extractor.Run(content, s.Config.withDefaults().SentenceCount)
	if err != nil {
		return "", fmt.Errorf("extractive summary: %w", err)
	}
	metrics.RecordExtractiveStrategy(outcome.Strategy)

	result := outcome.Summary
	if s.Abstractor != nil {
		abstract, err := s.Abstractor.Summarize(ctx, content)
		switch {
		case err != nil:
			log.Warn("abstractive summary failed, keeping extractive summary", slog.Any("error", err))
		case strings.TrimSpace(abstract) == "":
			log.Warn("abstractive summary empty, keeping extractive summary")
		default:
			result = strings.TrimSpace(abstract)
		}
	}

	if strings.TrimSpace(result) == "" {
		return "", fmt.Errorf("summarize: %w", ErrEmptyText)
	}
	return result, nil
}

func (s *Service) keywords(ctx context.Context, log *slog.Logger, text string) []string {
	if s.Classifier == nil {
		return nil
	}
	keywords, err := s.Classifier.Keywords(ctx, text)
	if err != nil {
		log.Warn("keyword classification failed", slog.Any("error", err))
		return nil
	}
	return keywords
}

// RegenerateStats reports the outcome of a RegeneratePending run.
type RegenerateStats struct {
	Found     int
	Succeeded int
	Failed    int
}

// RegeneratePending retries generation for up to limit summaries still
// pending and created before olderThan, running at most concurrency
// generations at once. Individual failures are counted, not returned.
func (s *Service) RegeneratePending(ctx context.Context, olderThan time.Time, limit, concurrency int) (RegenerateStats, error) {
	pending, err := s.Repo.ListPending(ctx, olderThan, limit)
	if err != nil {
		return RegenerateStats{}, fmt.Errorf("list pending summaries: %w", err)
	}
	if len(pending) == 0 {
		return RegenerateStats{}, nil
	}

	var succeeded, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(max(concurrency, 1))
	timeout := s.Config.withDefaults().GenerationTimeout

	for _, rec := range pending {
		g.Go(func() error {
			genCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := s.Generate(genCtx, rec.ID, rec.URL); err != nil {
				failed.Add(1)
				s.logger().Warn("pending summary regeneration failed",
					slog.Int64("summary_id", rec.ID),
					slog.String("url", rec.URL),
					slog.Any("error", err))
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return RegenerateStats{
		Found:     len(pending),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}, ctx.Err()
}

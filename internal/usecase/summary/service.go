package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gianpd/summarizerAI/internal/common/pagination"
	"github.com/gianpd/summarizerAI/internal/domain/entity"
	"github.com/gianpd/summarizerAI/internal/observability/metrics"
	"github.com/gianpd/summarizerAI/internal/repository"
	"github.com/gianpd/summarizerAI/internal/usecase/fetch"
)

// UpdateInput represents the input parameters for updating a summary.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID       int64
	URL      *string
	Summary  *string
	KeyTop   *string
	Keywords *string
}

// TextSummary is the result of summarizing submitted text. It is not stored.
type TextSummary struct {
	Text    string
	Summary string
}

// PaginatedResult represents the result of a paginated query.
type PaginatedResult struct {
	Data       []*entity.Summary
	Pagination pagination.Metadata
}

// Service provides summary use cases.
//
// Abstractor and Classifier are optional: without an Abstractor the stored
// summary is the extractive one, and without a Classifier no keywords are set.
type Service struct {
	Repo       repository.SummaryRepository
	Fetcher    fetch.ContentFetcher
	Extractor  Extractor
	Abstractor AbstractiveSummarizer
	Classifier KeywordClassifier
	Config     Config
	Logger     *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time

	wg sync.WaitGroup
}

// CreateFromURL accepts a URL for summarization.
//
// A summary of the same URL created within the dedup window is returned as
// is. Otherwise a pending record is stored and returned immediately while
// the summary is generated in the background.
func (s *Service) CreateFromURL(ctx context.Context, rawURL string) (*entity.Summary, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := entity.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	now := s.now()
	existing, err := s.Repo.GetByURL(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("get summary by url: %w", err)
	}
	if existing != nil && now.Sub(existing.CreatedAt) < s.Config.DedupWindow {
		s.logger().Info("summary already present",
			slog.Int64("summary_id", existing.ID),
			slog.String("url", rawURL))
		metrics.RecordDedupHit()
		return existing, nil
	}

	rec := &entity.Summary{URL: rawURL, CreatedAt: now}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create summary: %w", err)
	}
	metrics.RecordSummaryCreated(metrics.SourceURL)
	s.logger().Info("summary accepted",
		slog.Int64("summary_id", rec.ID),
		slog.String("url", rawURL))

	s.generateAsync(ctx, rec.ID, rawURL)

	return rec, nil
}

// generateAsync runs Generate detached from the request context so the
// generation outlives the HTTP response, bounded by GenerationTimeout.
func (s *Service) generateAsync(parent context.Context, id int64, url string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				s.logger().Error("summary generation panicked",
					slog.Int64("summary_id", id),
					slog.Any("panic", rec))
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.Config.withDefaults().GenerationTimeout)
		defer cancel()

		if err := s.Generate(ctx, id, url); err != nil {
			s.logger().Error("summary generation failed",
				slog.Int64("summary_id", id),
				slog.String("url", url),
				slog.Any("error", err))
		}
	}()
}

// Wait blocks until all background generations have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// FromText summarizes text without storing it.
func (s *Service) FromText(ctx context.Context, text string) (*TextSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := entity.ValidateText(text); err != nil {
		return nil, err
	}

	outcome, err := s.Extractor.Run(text, s.Config.withDefaults().SentenceCount)
	if err != nil {
		return nil, fmt.Errorf("summarize text: %w", err)
	}
	metrics.RecordSummaryCreated(metrics.SourceText)
	metrics.RecordExtractiveStrategy(outcome.Strategy)

	return &TextSummary{Text: text, Summary: outcome.Summary}, nil
}

// Get retrieves a single summary by its ID.
// Returns ErrInvalidSummaryID if the ID is not positive.
// Returns ErrSummaryNotFound if the summary does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Summary, error) {
	if id <= 0 {
		return nil, ErrInvalidSummaryID
	}

	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	if rec == nil {
		return nil, ErrSummaryNotFound
	}
	return rec, nil
}

// List retrieves one page of summaries together with pagination metadata.
func (s *Service) List(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count summaries: %w", err)
	}

	items, err := s.Repo.List(ctx, params.Skip, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	return &PaginatedResult{
		Data:       items,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// SearchByKeyword finds summaries tagged with keyword.
// Returns ErrSummaryNotFound when nothing matches.
func (s *Service) SearchByKeyword(ctx context.Context, keyword string) ([]*entity.Summary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &entity.ValidationError{Field: "keyword", Message: "keyword is required"}
	}

	items, err := s.Repo.SearchByKeyword(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search summaries: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrSummaryNotFound
	}
	return items, nil
}

// Update applies the non-nil fields of in to an existing summary.
// Returns ErrInvalidSummaryID if the ID is not positive.
// Returns ErrSummaryNotFound if the summary does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Summary, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidSummaryID
	}

	rec, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	if rec == nil {
		return nil, ErrSummaryNotFound
	}

	if in.URL != nil {
		rec.URL = strings.TrimSpace(*in.URL)
	}
	if in.Summary != nil {
		rec.Summary = *in.Summary
	}
	if in.KeyTop != nil {
		rec.KeyTop = *in.KeyTop
	}
	if in.Keywords != nil {
		rec.Keywords = *in.Keywords
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, s.mapNotFound("update summary", err)
	}
	return rec, nil
}

// Delete removes a summary and returns the deleted record.
// Returns ErrInvalidSummaryID if the ID is not positive.
// Returns ErrSummaryNotFound if the summary does not exist.
func (s *Service) Delete(ctx context.Context, id int64) (*entity.Summary, error) {
	if id <= 0 {
		return nil, ErrInvalidSummaryID
	}

	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	if rec == nil {
		return nil, ErrSummaryNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, s.mapNotFound("delete summary", err)
	}
	return rec, nil
}

// RefreshGauges publishes the stored and pending summary counts.
func (s *Service) RefreshGauges(ctx context.Context) error {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count summaries: %w", err)
	}
	pending, err := s.Repo.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("count pending summaries: %w", err)
	}
	metrics.UpdateSummaryCounts(total, pending)
	return nil
}

func (s *Service) mapNotFound(op string, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return ErrSummaryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

package repository

import (
	"context"
	"time"

	"github.com/gianpd/summarizerAI/internal/domain/entity"
)

// SummaryRepository persists summaries.
//
// Lookups that find nothing return (nil, nil); Update and Delete on a missing
// row return an error wrapping entity.ErrNotFound.
type SummaryRepository interface {
	Get(ctx context.Context, id int64) (*entity.Summary, error)
	// GetByURL returns the most recently created summary for url.
	GetByURL(ctx context.Context, url string) (*entity.Summary, error)
	// List returns summaries ordered by id, skipping offset rows.
	List(ctx context.Context, offset, limit int) ([]*entity.Summary, error)
	Count(ctx context.Context) (int64, error)
	// CountPending counts summaries with no generated text.
	CountPending(ctx context.Context) (int64, error)
	// SearchByKeyword matches keyword case-insensitively as a substring of
	// key_top or keywords.
	SearchByKeyword(ctx context.Context, keyword string) ([]*entity.Summary, error)
	// ListPending returns summaries with no generated text created before
	// olderThan, oldest first.
	ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Summary, error)
	// Create inserts s and sets s.ID.
	Create(ctx context.Context, s *entity.Summary) error
	// Update writes every mutable column of s and sets s.UpdatedAt.
	Update(ctx context.Context, s *entity.Summary) error
	Delete(ctx context.Context, id int64) error
}

// Package sqlite implements the repository interfaces on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gianpd/summarizerAI/internal/domain/entity"
	"github.com/gianpd/summarizerAI/internal/observability/metrics"
	"github.com/gianpd/summarizerAI/internal/repository"
)

const summaryColumns = `id, url, summary, key_top, keywords, created_at, updated_at`

type SummaryRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return &SummaryRepo{db: db, now: time.Now}
}

func observeQuery(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (*entity.Summary, error) {
	var (
		s       entity.Summary
		updated sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.URL, &s.Summary, &s.KeyTop, &s.Keywords, &s.CreatedAt, &updated); err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		s.UpdatedAt = &t
	}
	return &s, nil
}

func (repo *SummaryRepo) queryList(ctx context.Context, op, query string, args ...any) ([]*entity.Summary, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Summary, 0, 16)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return out, nil
}

func (repo *SummaryRepo) Get(ctx context.Context, id int64) (*entity.Summary, error) {
	defer observeQuery("get_summary", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE id = ?
LIMIT 1`
	s, err := scanSummary(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return s, nil
}

func (repo *SummaryRepo) GetByURL(ctx context.Context, url string) (*entity.Summary, error) {
	defer observeQuery("get_summary_by_url", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE url = ?
ORDER BY created_at DESC
LIMIT 1`
	s, err := scanSummary(repo.db.QueryRowContext(ctx, query, url))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByURL: %w", err)
	}
	return s, nil
}

func (repo *SummaryRepo) List(ctx context.Context, offset, limit int) ([]*entity.Summary, error) {
	defer observeQuery("list_summaries", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
ORDER BY id
LIMIT ? OFFSET ?`
	return repo.queryList(ctx, "List", query, limit, offset)
}

func (repo *SummaryRepo) Count(ctx context.Context) (int64, error) {
	defer observeQuery("count_summaries", time.Now())
	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *SummaryRepo) CountPending(ctx context.Context) (int64, error) {
	defer observeQuery("count_pending", time.Now())
	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries WHERE summary = ''`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountPending: %w", err)
	}
	return n, nil
}

func (repo *SummaryRepo) SearchByKeyword(ctx context.Context, keyword string) ([]*entity.Summary, error) {
	defer observeQuery("search_keyword", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE key_top LIKE ? ESCAPE '\' OR keywords LIKE ? ESCAPE '\'
ORDER BY id`
	pattern := "%" + escapeLike(keyword) + "%"
	return repo.queryList(ctx, "SearchByKeyword", query, pattern, pattern)
}

func (repo *SummaryRepo) ListPending(ctx context.Context, olderThan time.Time, limit int) ([]*entity.Summary, error) {
	defer observeQuery("list_pending", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE summary = '' AND created_at < ?
ORDER BY created_at
LIMIT ?`
	return repo.queryList(ctx, "ListPending", query, olderThan.UTC(), limit)
}

func (repo *SummaryRepo) Create(ctx context.Context, s *entity.Summary) error {
	defer observeQuery("insert_summary", time.Now())
	const query = `
INSERT INTO summaries
       (url, summary, key_top, keywords, created_at)
VALUES (?, ?, ?, ?, ?)`
	if s.CreatedAt.IsZero() {
		s.CreatedAt = repo.now().UTC()
	}
	res, err := repo.db.ExecContext(ctx, query,
		s.URL, s.Summary, s.KeyTop, s.Keywords, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	s.ID = id
	return nil
}

func (repo *SummaryRepo) Update(ctx context.Context, s *entity.Summary) error {
	defer observeQuery("update_summary", time.Now())
	const query = `
UPDATE summaries SET
       url        = ?,
       summary    = ?,
       key_top    = ?,
       keywords   = ?,
       updated_at = ?
WHERE id = ?`
	now := repo.now().UTC()
	res, err := repo.db.ExecContext(ctx, query,
		s.URL, s.Summary, s.KeyTop, s.Keywords, now, s.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	s.UpdatedAt = &now
	return nil
}

func (repo *SummaryRepo) Delete(ctx context.Context, id int64) error {
	defer observeQuery("delete_summary", time.Now())
	const query = `DELETE FROM summaries WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so keyword matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"github.com/gianpd/summarizerAI/internal/domain/entity"
	sq "github.com/gianpd/summarizerAI/internal/infra/adapter/persistence/sqlite"
)

var summaryCols = []string{"id", "url", "summary", "key_top", "keywords", "created_at", "updated_at"}

func sumRow(s *entity.Summary) *sqlmock.Rows {
	var updated any
	if s.UpdatedAt != nil {
		updated = *s.UpdatedAt
	}
	return sqlmock.NewRows(summaryCols).
		AddRow(s.ID, s.URL, s.Summary, s.KeyTop, s.Keywords, s.CreatedAt, updated)
}

func setup(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestSummaryRepo_Get(t *testing.T) {
	db, mock := setup(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	want := &entity.Summary{ID: 1, URL: "https://example.com", Summary: "s", KeyTop: "finance", CreatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sumRow(want))

	got, err := sq.NewSummaryRepo(db).Get(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryRepo_GetByURL_NotFound(t *testing.T) {
	db, mock := setup(t)
	mock.ExpectQuery("WHERE url = ?").WillReturnError(sql.ErrNoRows)

	got, err := sq.NewSummaryRepo(db).GetByURL(context.Background(), "https://nope.example")
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

func TestSummaryRepo_SearchByKeyword(t *testing.T) {
	db, mock := setup(t)
	mock.ExpectQuery(regexp.QuoteMeta("key_top LIKE ? ESCAPE")).
		WithArgs("%science%", "%science%").
		WillReturnRows(sumRow(&entity.Summary{ID: 2, URL: "u", KeyTop: "science", CreatedAt: time.Now()}))

	got, err := sq.NewSummaryRepo(db).SearchByKeyword(context.Background(), "science")
	if err != nil || len(got) != 1 {
		t.Fatalf("SearchByKeyword err=%v len=%d", err, len(got))
	}
}

func TestSummaryRepo_ListPending_UsesUTC(t *testing.T) {
	db, mock := setup(t)
	loc := time.FixedZone("JST", 9*60*60)
	cutoff := time.Date(2025, 1, 1, 9, 0, 0, 0, loc)

	mock.ExpectQuery("summary = ''").
		WithArgs(cutoff.UTC(), 10).
		WillReturnRows(sqlmock.NewRows(summaryCols))

	if _, err := sq.NewSummaryRepo(db).ListPending(context.Background(), cutoff, 10); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_Create(t *testing.T) {
	db, mock := setup(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO summaries")).
		WithArgs("https://example.com", "", "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(17, 1))

	s := &entity.Summary{URL: "https://example.com"}
	if err := sq.NewSummaryRepo(db).Create(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if s.ID != 17 {
		t.Fatalf("ID = %d, want 17", s.ID)
	}
}

func TestSummaryRepo_UpdateDelete_NotFound(t *testing.T) {
	db, mock := setup(t)
	mock.ExpectExec("UPDATE summaries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM summaries").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := sq.NewSummaryRepo(db)
	if err := repo.Update(context.Background(), &entity.Summary{ID: 1}); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Update: want ErrNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), 1); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Delete: want ErrNotFound, got %v", err)
	}
}

func TestSummaryRepo_Update(t *testing.T) {
	db, mock := setup(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE summaries SET")).
		WithArgs("u", "done", "", "", sqlmock.AnyArg(), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &entity.Summary{ID: 8, URL: "u", Summary: "done"}
	if err := sq.NewSummaryRepo(db).Update(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if s.UpdatedAt == nil {
		t.Fatal("UpdatedAt not set")
	}
}

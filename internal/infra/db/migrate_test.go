package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUp_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS summaries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_summaries_url_created").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_summaries_pending").WillReturnResult(sqlmock.NewResult(0, 0))
	// Optional statements: failures are tolerated.
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").WillReturnError(errors.New("permission denied"))
	mock.ExpectExec("idx_summaries_keywords_gin").WillReturnError(errors.New("operator class does not exist"))

	require.NoError(t, MigrateUp(context.Background(), db, Postgres))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_SQLite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("AUTOINCREMENT").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_summaries_url_created").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("idx_summaries_pending").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, MigrateUp(context.Background(), db, SQLite))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("disk full"))

	err = MigrateUp(context.Background(), db, Postgres)
	assert.ErrorContains(t, err, "disk full")
}

func TestMigrateUp_UnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Error(t, MigrateUp(context.Background(), db, Driver("mysql")))
}

func TestMigrateDown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DROP TABLE IF EXISTS summaries").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, MigrateDown(context.Background(), db))
}

package db

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestRunMigrations_AppliesPendingInOrder(t *testing.T) {
	conn, mock := setupMockDB(t)
	fsys := fstest.MapFS{
		"002_index.sql": {Data: []byte("CREATE INDEX idx ON t (a);")},
		"001_init.sql":  {Data: []byte("CREATE TABLE t (a INT);")},
		"README.md":     {Data: []byte("docs")},
	}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations WHERE name = \$1`).
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schema_migrations WHERE name = \$1`).
		WithArgs("002_index.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE INDEX idx ON t`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("002_index.sql").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, RunMigrations(context.Background(), conn, fsys))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_RollsBackOnFailure(t *testing.T) {
	conn, mock := setupMockDB(t)
	fsys := fstest.MapFS{"001_init.sql": {Data: []byte("CREATE TABLE broken (")}}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT`).WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE broken`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := RunMigrations(context.Background(), conn, fsys)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	addr := mr.Addr()
	client, err := NewRedis(context.Background(), RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewRedis(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}

package db

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PoolConfig параметры пула соединений.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig пул для одного экземпляра сервиса.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string, pool PoolConfig) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	conn.SetMaxOpenConns(pool.MaxOpenConns)
	conn.SetMaxIdleConns(pool.MaxIdleConns)
	conn.SetConnMaxLifetime(pool.ConnMaxLifetime)

	return conn, nil
}

// RunMigrations выполняет *.sql из fsys по порядку имён.
// Выполненные миграции отмечаются в schema_migrations и повторно не запускаются.
func RunMigrations(ctx context.Context, conn *sqlx.DB, fsys fs.FS) error {
	if err := initMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("postgres: не удалось инициализировать таблицу миграций: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("postgres: не удалось прочитать список миграций: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isMigrationApplied(ctx, conn, name)
		if err != nil {
			return fmt.Errorf("postgres: не удалось проверить статус миграции %s: %w", name, err)
		}
		if applied {
			continue
		}
		if err := applyMigration(ctx, conn, fsys, name); err != nil {
			return err
		}
	}

	return nil
}

func initMigrationsTable(ctx context.Context, conn *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := conn.ExecContext(ctx, query)
	return err
}

func isMigrationApplied(ctx context.Context, conn *sqlx.DB, name string) (bool, error) {
	var count int
	if err := conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM schema_migrations WHERE name = $1`, name); err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyMigration выполняет один файл в транзакции вместе с отметкой о выполнении.
func applyMigration(ctx context.Context, conn *sqlx.DB, fsys fs.FS, name string) error {
	body, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("postgres: не удалось прочитать миграцию %s: %w", name, err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return fmt.Errorf("postgres: пустая миграция %s", path.Base(name))
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: не удалось начать транзакцию для миграции %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("postgres: не удалось выполнить миграцию %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("postgres: не удалось отметить миграцию %s как выполненную: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: не удалось зафиксировать транзакцию для миграции %s: %w", name, err)
	}
	return nil
}

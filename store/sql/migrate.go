package sql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// BusyTimeout is the minimum SQLite busy_timeout this package
// configures, so contention under many workers is retried
// transparently rather than surfaced as an error.
const BusyTimeout = 30 * time.Second

// Open opens (creating if necessary) a SQLite-backed store at path,
// configures WAL journaling and the busy timeout, and applies all
// pending schema migrations.
//
// path is a file path without a "file:" prefix or query string; Open
// adds both. path may be ":memory:" for an in-process database,
// primarily useful in tests.
func Open(ctx context.Context, path string) (*bun.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		path, BusyTimeout.Milliseconds(),
	)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql: open %s: %w", path, err)
	}
	// A single shared writer avoids SQLITE_BUSY storms under WAL; bun
	// serializes statements over this one connection, and the busy
	// timeout above covers the rest.
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := migrate(ctx, sqlDB); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sql: set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("sql: apply migrations: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"storysync/internal/client/store/migrations"

	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations. It is idempotent and
// safe to call from concurrently started processes: goose tracks applied
// versions in the database, and the busy timeout set by Open covers the
// lock window.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the local SQLite database at dsn and brings
// its schema up to date. Both the interactive CLI and the background sync
// worker call Open on the same file; WAL mode plus a busy timeout let their
// short transactions interleave.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

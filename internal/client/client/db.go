package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cropcare/internal/client/migrations"
	"github.com/dmitrijs2005/cropcare/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// busyTimeoutMs lets a second process sharing the file wait for a lock
// instead of failing at once.
const busyTimeoutMs = 5000

// Transactions take the write lock at BEGIN, so a read-check-write sequence
// in one process cannot interleave with another process doing the same.
const txLock = "immediate"

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite file at path and
// migrates it. Missing parent directories are created.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare storage path: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_txlock=%s", path, busyTimeoutMs, txLock)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

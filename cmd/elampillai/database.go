package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"elampillai/internal/config"
	"elampillai/internal/kv"
)

// openBackend opens the key-value backend selected by the storage config.
// The returned close function releases any database handle.
func openBackend(ctx context.Context, cfg *config.Config) (kv.Backend, func() error, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return kv.NewMemory(), func() error { return nil }, nil
	case "postgres":
		db, err := openDatabase(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		backend, err := kv.NewSQL(db, kv.Postgres)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return backend, db.Close, nil
	case "sqlite":
		db, err := openSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		backend, err := kv.NewSQL(db, kv.SQLite)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return backend, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openDatabase establishes a database connection and retries until the instance responds.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const (
		pingTimeout    = 5 * time.Second
		maxWait        = 30 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		// Respect caller cancellation.
		if ctx.Err() != nil {
			break
		}

		if time.Now().After(deadline) {
			break
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}

// openSQLite opens the local database file, creating its directory and schema.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time keeps SQLite from reporting SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := kv.EnsureSchema(ctx, db, kv.SQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

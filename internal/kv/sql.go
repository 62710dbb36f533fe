package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dialect selects the SQL flavour used by the SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type queries struct {
	read  string
	write string
}

var dialectQueries = map[Dialect]queries{
	Postgres: {
		read: `
		SELECT value
		FROM kv_entries
		WHERE key = $1
	`,
		write: `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`,
	},
	SQLite: {
		read: `
		SELECT value
		FROM kv_entries
		WHERE key = ?
	`,
		write: `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`,
	},
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// SQL is a Backend persisting values in the kv_entries table.
type SQL struct {
	db *sql.DB
	q  queries
}

// NewSQL sets up a SQL backend using the provided database handle.
func NewSQL(db *sql.DB, dialect Dialect) (*SQL, error) {
	q, ok := dialectQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &SQL{db: db, q: q}, nil
}

// EnsureSchema creates the kv_entries table for SQLite databases. Postgres
// schemas are managed by the migrations in cmd/migrate.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if dialect != SQLite {
		return nil
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create kv_entries: %w", err)
	}
	return nil
}

func (s *SQL) Read(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q.read, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select entry: %w", err)
	}
	return []byte(value), nil
}

func (s *SQL) Write(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.q.write, key, string(value)); err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

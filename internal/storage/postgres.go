package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresKV struct {
	pgPool *pgxpool.Pool
}

// NewPostgres stores keys in the kv table of an already connected pool.
// The table is created if it does not exist.
func NewPostgres(ctx context.Context, pgPool *pgxpool.Pool) (KV, error) {
	const createTableQuery = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)
`
	_, err := pgPool.Exec(ctx, createTableQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &postgresKV{pgPool: pgPool}, nil
}

func (s *postgresKV) Get(ctx context.Context, key string) (string, error) {
	const selectValueByKeyQuery = `
SELECT value
FROM kv
WHERE key = $1
`
	var value string
	err := s.pgPool.QueryRow(
		ctx,
		selectValueByKeyQuery,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrKeyNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to select %q: %w", key, err)
	}
	return value, nil
}

func (s *postgresKV) Set(ctx context.Context, key, value string) error {
	const upsertValueQuery = `
INSERT INTO kv (key,
                value,
                updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.pgPool.Exec(
		ctx,
		upsertValueQuery,
		key,
		value,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %q: %w", key, err)
	}
	return nil
}

// Close is a no-op: the pool belongs to whoever connected it.
func (s *postgresKV) Close() error { return nil }

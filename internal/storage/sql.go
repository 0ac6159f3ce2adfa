package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type sqlDialect struct {
	driverName  string
	createTable string
	upsert      string
}

var (
	sqliteDialect = sqlDialect{
		driverName: "sqlite3",
		createTable: `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
		upsert: `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value,
                               updated_at = excluded.updated_at
`,
	}

	mysqlDialect = sqlDialect{
		driverName: "mysql",
		createTable: "CREATE TABLE IF NOT EXISTS kv (\n" +
			"    `key`      VARCHAR(255) PRIMARY KEY,\n" +
			"    value      MEDIUMTEXT NOT NULL,\n" +
			"    updated_at DATETIME(6) NOT NULL\n" +
			")",
		upsert: "INSERT INTO kv (`key`, value, updated_at)\n" +
			"VALUES (?, ?, ?)\n" +
			"ON DUPLICATE KEY UPDATE value = VALUES(value),\n" +
			"                        updated_at = VALUES(updated_at)",
	}
)

type sqlKV struct {
	db      *sqlx.DB
	dialect sqlDialect
}

// NewSQLite opens (and creates if needed) a SQLite database file.
func NewSQLite(ctx context.Context, path string) (KV, error) {
	return openSQL(ctx, sqliteDialect, path+"?_busy_timeout=5000")
}

// NewMySQL connects to MySQL using a go-sql-driver DSN.
func NewMySQL(ctx context.Context, dsn string) (KV, error) {
	return openSQL(ctx, mysqlDialect, dsn)
}

func openSQL(ctx context.Context, dialect sqlDialect, dsn string) (KV, error) {
	db, err := sqlx.ConnectContext(ctx, dialect.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect.driverName, err)
	}

	_, err = db.ExecContext(ctx, dialect.createTable)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &sqlKV{db: db, dialect: dialect}, nil
}

func (s *sqlKV) Get(ctx context.Context, key string) (string, error) {
	query := "SELECT value FROM kv WHERE key = ?"
	if s.dialect.driverName == mysqlDialect.driverName {
		query = "SELECT value FROM kv WHERE `key` = ?"
	}

	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(query), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to select %q: %w", key, err)
	}
	return value, nil
}

func (s *sqlKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(s.dialect.upsert), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert %q: %w", key, err)
	}
	return nil
}

func (s *sqlKV) Close() error {
	return s.db.Close()
}

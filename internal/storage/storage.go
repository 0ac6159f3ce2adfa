package storage

import (
	"context"
	"errors"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// KV is a string key-value store. Values are opaque to it.
type KV interface {
	// Get returns ErrKeyNotFound if nothing was stored under the key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

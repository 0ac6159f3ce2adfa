package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

type fileKV struct {
	dir string
	mu  sync.Mutex
}

// NewFile stores every key as its own file under dir.
func NewFile(dir string) (KV, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &fileKV{dir: dir}, nil
}

func (s *fileKV) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *fileKV) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(data), nil
}

func (s *fileKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	_, err = tmp.WriteString(value)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	err = os.Rename(tmp.Name(), s.path(key))
	if err != nil {
		return fmt.Errorf("failed to replace %q: %w", key, err)
	}
	return nil
}

func (s *fileKV) Close() error { return nil }

package storage

import (
	"context"
	"sync"
)

type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() KV {
	return &memoryKV{values: make(map[string]string)}
}

func (s *memoryKV) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *memoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *memoryKV) Close() error { return nil }

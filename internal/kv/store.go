// Package kv holds the small key-value stores that back the on-device
// session and the local cache. Values are opaque bytes under string keys.
package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes every given key. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Open picks a Store implementation by backend name.
func Open(backend, path, redisURL string) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(path)
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStoreFromURL(redisURL, "gymlogs:")
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

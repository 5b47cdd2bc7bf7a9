// Package persistence keeps integrations in a browser-style key-value store
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQuotaExceeded is returned when a write would exceed the storage quota
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Storage mirrors the browser localStorage API. GetItem reports ok=false for a missing key.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// MemoryStorage keeps items in a map. A positive quota caps the total size of keys and values in bytes.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
	quota int
	used  int
}

// NewMemoryStorage creates an empty storage; quota <= 0 means unlimited
func NewMemoryStorage(quota int) *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string), quota: quota}
}

func (s *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + len(value)
	if prev, ok := s.items[key]; ok {
		used -= len(prev)
	} else {
		used += len(key)
	}
	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("%w: setting %q needs %d of %d bytes", ErrQuotaExceeded, key, used, s.quota)
	}

	s.items[key] = value
	s.used = used
	return nil
}

func (s *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.items[key]; ok {
		s.used -= len(key) + len(prev)
		delete(s.items, key)
	}
	return nil
}

// FileStorage keeps all items in one JSON object on disk
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage uses the file at path, creating it on first write
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *FileStorage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(items)
}

func (s *FileStorage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

func (s *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", s.path, err)
	}
	return items, nil
}

// write replaces the file through a rename so readers never see a partial document
func (s *FileStorage) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

// RedisStorage keeps items as Redis string keys under an optional prefix
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStorage wraps an existing client
func NewRedisStorage(rdb *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{rdb: rdb, prefix: prefix}
}

// ConnectRedis opens a client and checks it is reachable
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

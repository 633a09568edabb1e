package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"
)

// MemoryCacheService is an in-process CacheService used by tests and by
// single-node deployments that run without an external cache.
type MemoryCacheService struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time // zero means no expiry
}

var _ CacheService = (*MemoryCacheService)(nil)

// NewMemoryCacheService creates an empty in-memory cache service
func NewMemoryCacheService() *MemoryCacheService {
	return &MemoryCacheService{
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := memoryEntry{payload: payload}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || entry.expired() {
		return false, nil
	}

	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return true, nil
}

func (m *MemoryCacheService) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, key := range keys {
		if entry, ok := m.entries[key]; ok && !entry.expired() {
			result[key] = string(entry.payload)
		}
	}
	return result, nil
}

func (m *MemoryCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheService) DeleteMany(ctx context.Context, keys []string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheService) Unlink(ctx context.Context, key string) error {
	return m.Delete(ctx, key)
}

func (m *MemoryCacheService) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if matched, _ := path.Match(pattern, key); matched {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *MemoryCacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key, entry := range m.entries {
		if entry.expired() {
			continue
		}
		if matched, _ := path.Match(pattern, key); matched {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	return ok && !entry.expired(), nil
}

func (m *MemoryCacheService) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheService) Close() error {
	return nil
}

func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// Len reports the number of live entries; handy in tests.
func (m *MemoryCacheService) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, entry := range m.entries {
		if !entry.expired() {
			count++
		}
	}
	return count
}

func (e memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

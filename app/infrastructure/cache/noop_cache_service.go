package cache

import (
	"context"
	"time"
)

// NoOpCacheService provides a no-operation cache service for graceful degradation
type NoOpCacheService struct{}

var _ CacheService = (*NoOpCacheService)(nil)

// Set is a no-op implementation
func (n *NoOpCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return nil
}

// Get always reports a miss
func (n *NoOpCacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

// GetMany always returns an empty result
func (n *NoOpCacheService) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	return map[string]string{}, nil
}

// Delete is a no-op implementation
func (n *NoOpCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

// DeleteMany is a no-op implementation
func (n *NoOpCacheService) DeleteMany(ctx context.Context, keys []string) error {
	return nil
}

// Unlink is a no-op implementation
func (n *NoOpCacheService) Unlink(ctx context.Context, key string) error {
	return nil
}

// DeletePattern is a no-op implementation
func (n *NoOpCacheService) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

// Keys always returns an empty result
func (n *NoOpCacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	return nil, nil
}

// Exists always returns false
func (n *NoOpCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// FlushAll is a no-op implementation
func (n *NoOpCacheService) FlushAll(ctx context.Context) error {
	return nil
}

// Close is a no-op implementation
func (n *NoOpCacheService) Close() error {
	return nil
}

// HealthCheck always returns nil (healthy)
func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

package cache

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// DefaultTTL is the expiry applied to single-entity cache entries. Composite
// aggregates are stored with NoExpiration and rely on explicit invalidation.
const (
	DefaultTTL   = 24 * time.Hour
	NoExpiration = time.Duration(0)
)

// CacheService defines the interface for cache operations.
//
// Get reports whether the key was present so callers can tell a cache miss
// apart from a cached empty value; a legitimately empty payload must never
// trigger a recompute.
type CacheService interface {
	// Set stores a value in cache with an expiration time; NoExpiration keeps
	// the entry until it is explicitly deleted.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get retrieves a value from cache into dest, reporting whether the key
	// was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// GetMany retrieves the raw payloads of the given keys in one round trip.
	// Only present keys appear in the result.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)

	// Delete removes a key from cache synchronously (blocking)
	Delete(ctx context.Context, key string) error

	// DeleteMany removes several keys in one round trip.
	DeleteMany(ctx context.Context, keys []string) error

	// Unlink removes a key from cache asynchronously (non-blocking)
	Unlink(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Keys lists every key matching a glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// FlushAll removes every key; used by the admin invalidation endpoint.
	FlushAll(ctx context.Context) error

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error
}

// MutexProvider is implemented by cache backends that can hand out
// distributed locks. The background refresher uses it, when available, to
// collapse duplicate queued refreshes; read-path semantics never depend on it.
type MutexProvider interface {
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"larpmanager.app/larp-gateway/app/utils/logger"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

// RedisCacheService provides caching functionality using Redis
type RedisCacheService struct {
	client *redis.Client
	rs     *redsync.Redsync
}

var _ CacheService = (*RedisCacheService)(nil)
var _ MutexProvider = (*RedisCacheService)(nil)

// NewRedisCacheService creates a new Redis cache service
func NewRedisCacheService() *RedisCacheService {
	redisURL := environment_variables.EnvironmentVariables.CACHE_URL
	if redisURL == "" {
		redisURL = environment_variables.EnvironmentVariables.REDIS_URL
	}
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to parse Redis URL: %v", err))
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	// Override with environment variables if provided
	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	} else if environment_variables.EnvironmentVariables.REDIS_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.REDIS_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.DB = db
		}
	} else if environment_variables.EnvironmentVariables.REDIS_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.REDIS_DB); err == nil {
			opts.DB = db
		}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logger.GetLogger().Info("Successfully connected to Redis")
	}

	return &RedisCacheService{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
	}
}

// Set stores a value in Redis with an expiration time
func (r *RedisCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.Set(ctx, key, jsonValue, expiration).Err()
}

// Get retrieves a value from Redis, reporting whether the key was present
func (r *RedisCacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return true, nil
}

// GetMany retrieves the raw payloads of the given keys in a single MGET
func (r *RedisCacheService) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget values: %w", err)
	}

	result := make(map[string]string, len(keys))
	for i, value := range values {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok {
			result[keys[i]] = s
		}
	}
	return result, nil
}

// Delete removes a key from Redis
func (r *RedisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// DeleteMany removes several keys in one pipelined round trip
func (r *RedisCacheService) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Unlink removes a key from Redis asynchronously (non-blocking)
func (r *RedisCacheService) Unlink(ctx context.Context, key string) error {
	return r.client.Unlink(ctx, key).Err()
}

// DeletePattern removes all keys matching a pattern
func (r *RedisCacheService) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(keys) > 0 {
			pipe := r.client.Pipeline()
			for _, k := range keys {
				pipe.Unlink(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("failed to unlink keys: %w", err)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return nil
}

// Keys lists every key matching a pattern, scanning incrementally so large
// keyspaces never block the server the way a bare KEYS would
func (r *RedisCacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	var all []string
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}
		all = append(all, keys...)
		if next == 0 {
			break
		}
		cursor = next
	}
	return all, nil
}

// Exists checks if a key exists in Redis
func (r *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return result > 0, nil
}

// FlushAll removes every key in the selected database
func (r *RedisCacheService) FlushAll(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

// HealthCheck verifies Redis connectivity
func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// NewMutex returns a redlock mutex backed by this Redis connection
func (r *RedisCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return r.rs.NewMutex(name, options...)
}

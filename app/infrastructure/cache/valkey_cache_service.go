package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

// ValkeyCacheService provides caching functionality using Valkey
type ValkeyCacheService struct {
	client valkey.Client
}

var _ CacheService = (*ValkeyCacheService)(nil)

// parseValkeyURL parses a Valkey URL and returns address, password, database, and error
func parseValkeyURL(valkeyURL string) (address, password string, database int, err error) {
	// Default values
	database = -1 // -1 means no database specified

	// Handle plain address without protocol
	if !strings.Contains(valkeyURL, "://") {
		return valkeyURL, "", -1, nil
	}

	// Parse the URL
	u, err := url.Parse(valkeyURL)
	if err != nil {
		return "", "", -1, fmt.Errorf("invalid URL format: %w", err)
	}

	// Extract host and port
	address = u.Host
	if address == "" {
		return "", "", -1, fmt.Errorf("no host specified in URL")
	}

	// Extract password
	if u.User != nil {
		password, _ = u.User.Password()
	}

	// Extract database from path
	if u.Path != "" && u.Path != "/" {
		// Remove leading slash and parse as database number
		dbStr := strings.TrimPrefix(u.Path, "/")
		if dbStr != "" {
			if db, parseErr := strconv.Atoi(dbStr); parseErr == nil {
				database = db
			}
		}
	}

	return address, password, database, nil
}

// NewValkeyCacheService creates a new Valkey cache service
func NewValkeyCacheService() CacheService {
	valkeyURL := environment_variables.EnvironmentVariables.CACHE_URL
	if valkeyURL == "" {
		valkeyURL = "valkey://localhost:6379"
	}

	// Parse the URL to extract the address
	address, password, db, err := parseValkeyURL(valkeyURL)
	if err != nil {
		// Return a no-op implementation for graceful degradation
		return &NoOpCacheService{}
	}

	opts := valkey.ClientOption{
		InitAddress: []string{address},
	}

	if password != "" {
		opts.Password = password
	}
	if db != -1 {
		opts.SelectDB = db
	}

	// Override with environment variables if provided
	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.SelectDB = db
		}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		// Return a no-op implementation for graceful degradation
		return &NoOpCacheService{}
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		return &NoOpCacheService{}
	}

	return &ValkeyCacheService{
		client: client,
	}
}

// Set stores a value in Valkey with an expiration time
func (v *ValkeyCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	var cmd valkey.Completed
	if expiration > 0 {
		cmd = v.client.B().Set().Key(key).Value(string(jsonValue)).ExSeconds(int64(expiration.Seconds())).Build()
	} else {
		cmd = v.client.B().Set().Key(key).Value(string(jsonValue)).Build()
	}
	return v.client.Do(ctx, cmd).Error()
}

// Get retrieves a value from Valkey, reporting whether the key was present
func (v *ValkeyCacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	result := v.client.Do(ctx, v.client.B().Get().Key(key).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get value: %w", err)
	}

	val, err := result.ToString()
	if err != nil {
		return false, fmt.Errorf("failed to convert result to string: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return true, nil
}

// GetMany retrieves the raw payloads of the given keys in a single MGET
func (v *ValkeyCacheService) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	result := v.client.Do(ctx, v.client.B().Mget().Key(keys...).Build())
	if err := result.Error(); err != nil {
		return nil, fmt.Errorf("failed to mget values: %w", err)
	}

	messages, err := result.ToArray()
	if err != nil {
		return nil, fmt.Errorf("failed to parse mget result: %w", err)
	}

	values := make(map[string]string, len(keys))
	for i, message := range messages {
		if i >= len(keys) || message.IsNil() {
			continue
		}
		val, err := message.ToString()
		if err != nil {
			continue
		}
		values[keys[i]] = val
	}
	return values, nil
}

// Delete removes a key from Valkey synchronously (blocking)
func (v *ValkeyCacheService) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(key).Build()).Error()
}

// DeleteMany removes several keys in one round trip
func (v *ValkeyCacheService) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return v.client.Do(ctx, v.client.B().Del().Key(keys...).Build()).Error()
}

// Unlink removes a key from Valkey asynchronously (non-blocking)
func (v *ValkeyCacheService) Unlink(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Unlink().Key(key).Build()).Error()
}

// DeletePattern removes all keys matching a pattern
func (v *ValkeyCacheService) DeletePattern(ctx context.Context, pattern string) error {
	// Valkey supports the same commands as Redis, so we can use KEYS for small datasets
	// Note: KEYS should be avoided in production for large datasets
	result := v.client.Do(ctx, v.client.B().Keys().Pattern(pattern).Build())
	if result.Error() != nil {
		return fmt.Errorf("failed to get keys: %w", result.Error())
	}

	keys, err := result.AsStrSlice()
	if err != nil {
		return fmt.Errorf("failed to parse keys: %w", err)
	}

	if len(keys) > 0 {
		if err := v.client.Do(ctx, v.client.B().Unlink().Key(keys...).Build()).Error(); err != nil {
			return fmt.Errorf("failed to unlink keys: %w", err)
		}
	}

	return nil
}

// Keys lists every key matching a pattern
func (v *ValkeyCacheService) Keys(ctx context.Context, pattern string) ([]string, error) {
	result := v.client.Do(ctx, v.client.B().Keys().Pattern(pattern).Build())
	if result.Error() != nil {
		return nil, fmt.Errorf("failed to get keys: %w", result.Error())
	}

	keys, err := result.AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse keys: %w", err)
	}
	return keys, nil
}

// Exists checks if a key exists in Valkey
func (v *ValkeyCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result := v.client.Do(ctx, v.client.B().Exists().Key(key).Build())
	if result.Error() != nil {
		return false, fmt.Errorf("failed to check key existence: %w", result.Error())
	}

	count, err := result.AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to parse exists result: %w", err)
	}

	return count > 0, nil
}

// FlushAll removes every key in the selected database
func (v *ValkeyCacheService) FlushAll(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Flushdb().Build()).Error()
}

// Close closes the Valkey connection
func (v *ValkeyCacheService) Close() error {
	v.client.Close()
	return nil
}

// HealthCheck verifies Valkey connectivity
func (v *ValkeyCacheService) HealthCheck(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Ping().Build()).Error()
}

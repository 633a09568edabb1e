package cache

import (
	"strings"

	"larpmanager.app/larp-gateway/config/environment_variables"
)

// NewCacheService creates a cache service based on configuration
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	// Default to Valkey if no cache type is specified
	if cacheType == "" {
		cacheType = "valkey"
	}

	switch cacheType {
	case "redis":
		return NewRedisCacheService()
	case "valkey":
		return NewValkeyCacheService()
	case "memory":
		return NewMemoryCacheService()
	default:
		// Fallback to Valkey for unknown types
		return NewValkeyCacheService()
	}
}

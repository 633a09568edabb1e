package association

import (
	"context"
	"fmt"

	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// CacheEntry is the cached, derived view of an association: identity, enabled
// feature slugs and the configuration values the request path needs on every
// hit. A zero-ID entry is the sentinel cached for unknown slugs.
type CacheEntry struct {
	ID        uint              `json:"id"`
	Slug      string            `json:"slug"`
	Name      string            `json:"name"`
	Skin      string            `json:"skin"`
	Features  map[string]uint   `json:"features"`
	Config    map[string]string `json:"config"`
	TokenName string            `json:"token_name,omitempty"`
}

// Found reports whether the entry describes a real association or the cached
// not-found sentinel.
func (e *CacheEntry) Found() bool {
	return e.ID != 0
}

// CacheService is the read-through cache for association configuration.
type CacheService struct {
	repo     Repository
	features *feature.CacheService
	cache    cache.CacheService
}

func NewCacheService(repo Repository, features *feature.CacheService, cacheService cache.CacheService) *CacheService {
	return &CacheService{
		repo:     repo,
		features: features,
		cache:    cacheService,
	}
}

// GetCacheAssoc returns the cached association view for a slug, computing and
// storing it on miss. An unknown slug is cached as an empty sentinel with the
// same TTL, so repeated misses do not stampede the database.
func (s *CacheService) GetCacheAssoc(ctx context.Context, slug string) (*CacheEntry, error) {
	key := cache.AssocKey(slug)

	var entry CacheEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return nil, err
	}
	if found {
		return &entry, nil
	}

	computed, err := s.compute(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, computed, cache.DefaultTTL); err != nil {
		return nil, fmt.Errorf("failed to store association cache: %w", err)
	}
	return computed, nil
}

// ClearAssociationCache drops the cached view; hooked to association writes.
func (s *CacheService) ClearAssociationCache(ctx context.Context, slug string) error {
	return s.cache.Delete(ctx, cache.AssocKey(slug))
}

func (s *CacheService) compute(ctx context.Context, slug string) (*CacheEntry, error) {
	assoc, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if assoc == nil {
		// Not-found sentinel, cached like a real value.
		return &CacheEntry{Slug: slug}, nil
	}

	features, err := s.features.AssocFeatures(ctx, assoc.ID)
	if err != nil {
		return nil, err
	}

	configs, err := s.repo.ListConfigs(ctx, assoc.ID)
	if err != nil {
		return nil, err
	}
	configMap := make(map[string]string, len(configs))
	for _, config := range configs {
		configMap[config.Name] = config.Value
	}

	entry := &CacheEntry{
		ID:       assoc.ID,
		Slug:     assoc.Slug,
		Name:     assoc.Name,
		Skin:     assoc.Skin,
		Features: features,
		Config:   configMap,
	}
	if _, ok := features["token_credit"]; ok {
		entry.TokenName = configMap["token_credit_token_name"]
	}
	return entry, nil
}

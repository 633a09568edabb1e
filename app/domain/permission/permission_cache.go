package permission

import (
	"context"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// FeatureLookup is the cached index from permission slug to the feature that
// gates it, consulted on every permission check.
type FeatureLookup map[string]FeatureInfo

type FeatureInfo struct {
	PermissionID uint   `json:"permission_id"`
	Name         string `json:"name"`
	FeatureSlug  string `json:"feature_slug"`
	Tutorial     string `json:"tutorial"`
	Hidden       bool   `json:"hidden"`
}

// CacheService is the read-through cache for the permission-feature indexes.
// The indexes are association-wide singletons: permissions are defined once,
// per scope, for the whole installation.
type CacheService struct {
	repo  Repository
	cache cache.CacheService
}

func NewCacheService(repo Repository, cacheService cache.CacheService) *CacheService {
	return &CacheService{repo: repo, cache: cacheService}
}

// AssocPermissionFeature returns the association-scope index.
func (s *CacheService) AssocPermissionFeature(ctx context.Context) (FeatureLookup, error) {
	return s.lookup(ctx, cache.AssocPermissionKey, ScopeAssoc)
}

// EventPermissionFeature returns the event-scope index.
func (s *CacheService) EventPermissionFeature(ctx context.Context) (FeatureLookup, error) {
	return s.lookup(ctx, cache.EventPermissionKey, ScopeEvent)
}

// Reset invalidates both indexes; hooked to permission and feature writes.
func (s *CacheService) Reset(ctx context.Context) error {
	if err := s.cache.Delete(ctx, cache.AssocPermissionKey); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cache.EventPermissionKey)
}

func (s *CacheService) lookup(ctx context.Context, key string, scope Scope) (FeatureLookup, error) {
	var lookup FeatureLookup
	found, err := s.cache.Get(ctx, key, &lookup)
	if err != nil {
		return nil, err
	}
	if found {
		return lookup, nil
	}

	permissions, err := s.repo.ListByScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	lookup = make(FeatureLookup, len(permissions))
	for _, p := range permissions {
		lookup[p.Slug] = FeatureInfo{
			PermissionID: p.ID,
			Name:         p.Name,
			FeatureSlug:  p.FeatureSlug,
			Tutorial:     p.Tutorial,
			Hidden:       p.Hidden,
		}
	}
	if err := s.cache.Set(ctx, key, lookup, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return lookup, nil
}

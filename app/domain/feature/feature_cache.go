package feature

import (
	"context"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// CacheService is the read-through cache for feature flag sets. Composite
// caches consult it to decide which aggregate sections exist at all.
type CacheService struct {
	repo  Repository
	cache cache.CacheService
}

func NewCacheService(repo Repository, cacheService cache.CacheService) *CacheService {
	return &CacheService{repo: repo, cache: cacheService}
}

// AssocFeatures returns the overall feature set of an association.
func (s *CacheService) AssocFeatures(ctx context.Context, assocID uint) (Set, error) {
	key := cache.AssocFeaturesKey(assocID)

	var set Set
	found, err := s.cache.Get(ctx, key, &set)
	if err != nil {
		return nil, err
	}
	if found {
		return set, nil
	}

	features, err := s.repo.ListByAssociation(ctx, assocID)
	if err != nil {
		return nil, err
	}
	set = make(Set, len(features))
	for _, f := range features {
		set[f.Slug] = f.ID
	}
	if err := s.cache.Set(ctx, key, set, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return set, nil
}

// EventFeatures returns the feature set of an event: its own features, the
// parent event's features for campaign children, and the association's
// overall features. parentID is zero for events without a campaign parent.
func (s *CacheService) EventFeatures(ctx context.Context, eventID, parentID, assocID uint) (Set, error) {
	key := cache.EventFeaturesKey(eventID)

	var set Set
	found, err := s.cache.Get(ctx, key, &set)
	if err != nil {
		return nil, err
	}
	if found {
		return set, nil
	}

	set = make(Set)
	own, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, f := range own {
		set[f.Slug] = f.ID
	}
	if parentID != 0 {
		parent, err := s.repo.ListByEvent(ctx, parentID)
		if err != nil {
			return nil, err
		}
		for _, f := range parent {
			if _, ok := set[f.Slug]; !ok {
				set[f.Slug] = f.ID
			}
		}
	}
	overall, err := s.AssocFeatures(ctx, assocID)
	if err != nil {
		return nil, err
	}
	for slug, id := range overall {
		if _, ok := set[slug]; !ok {
			set[slug] = id
		}
	}

	if err := s.cache.Set(ctx, key, set, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return set, nil
}

// ResetAssocFeatures invalidates the association's overall feature set.
func (s *CacheService) ResetAssocFeatures(ctx context.Context, assocID uint) error {
	return s.cache.Delete(ctx, cache.AssocFeaturesKey(assocID))
}

// ResetEventFeatures invalidates one event's feature set.
func (s *CacheService) ResetEventFeatures(ctx context.Context, eventID uint) error {
	return s.cache.Delete(ctx, cache.EventFeaturesKey(eventID))
}

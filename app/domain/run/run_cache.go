package run

import (
	"context"
	"time"

	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// LookupEntry resolves an (association, event slug, run number) triple to the
// concrete run without touching the database. A zero RunID entry is the
// cached not-found sentinel.
type LookupEntry struct {
	RunID   uint      `json:"run_id"`
	EventID uint      `json:"event_id"`
	Number  int       `json:"number"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Found reports whether the entry resolves to a real run.
func (e *LookupEntry) Found() bool {
	return e.RunID != 0
}

// CacheService is the read-through cache for run lookups.
type CacheService struct {
	runs   Repository
	events event.Repository
	cache  cache.CacheService
}

func NewCacheService(runs Repository, events event.Repository, cacheService cache.CacheService) *CacheService {
	return &CacheService{runs: runs, events: events, cache: cacheService}
}

// GetCacheRun resolves the triple, computing and caching on miss.
func (s *CacheService) GetCacheRun(ctx context.Context, assocID uint, eventSlug string, number int) (*LookupEntry, error) {
	key := cache.RunLookupKey(assocID, eventSlug, number)

	var entry LookupEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return nil, err
	}
	if found {
		return &entry, nil
	}

	computed, err := s.compute(ctx, assocID, eventSlug, number)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, computed, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return computed, nil
}

// ResetRunLookups drops every cached lookup of an event; hooked to run and
// event writes.
func (s *CacheService) ResetRunLookups(ctx context.Context, assocID uint, eventSlug string) error {
	return s.cache.DeletePattern(ctx, cache.RunLookupPattern(assocID, eventSlug))
}

// ResetRunCharacter drops the per-run character entry that larger event
// caches hang off; refreshed lazily by the next read.
func (s *CacheService) ResetRunCharacter(ctx context.Context, runID, characterID uint) error {
	return s.cache.Delete(ctx, cache.RunCharacterKey(runID, characterID))
}

// ResetRunCharacters drops every per-run character entry of a run.
func (s *CacheService) ResetRunCharacters(ctx context.Context, runID uint) error {
	return s.cache.DeletePattern(ctx, cache.RunCharacterPattern(runID))
}

func (s *CacheService) compute(ctx context.Context, assocID uint, eventSlug string, number int) (*LookupEntry, error) {
	ev, err := s.events.FindBySlug(ctx, assocID, eventSlug)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return &LookupEntry{}, nil
	}

	r, err := s.runs.FindByEventAndNumber(ctx, ev.ID, number)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return &LookupEntry{}, nil
	}

	return &LookupEntry{
		RunID:   r.ID,
		EventID: r.EventID,
		Number:  r.Number,
		Start:   r.Start,
		End:     r.End,
	}, nil
}

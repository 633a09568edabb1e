package reset

import (
	"context"

	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/domain/navigation"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/domain/writing"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// Service is the coarse-grained invalidation orchestrator: it fans a reset
// out over every namespace that can hold entries for the target. Each step is
// best-effort; one failing namespace must not leave the others stale, so
// errors are logged and the fan-out continues. The first error is returned
// once every step has run.
type Service struct {
	cache      cache.CacheService
	assocs     *association.CacheService
	assocTexts *association.TextCacheService
	eventTexts *event.TextCacheService
	buttons    *event.ButtonCacheService
	features   *feature.CacheService
	fields     *writing.FieldCacheService
	runs       *run.CacheService
	rels       *relationship.Service
	links      *navigation.Service
	runRepo    run.Repository
	eventRepo  event.Repository
}

func NewService(
	cacheService cache.CacheService,
	assocs *association.CacheService,
	assocTexts *association.TextCacheService,
	eventTexts *event.TextCacheService,
	buttons *event.ButtonCacheService,
	features *feature.CacheService,
	fields *writing.FieldCacheService,
	runs *run.CacheService,
	rels *relationship.Service,
	links *navigation.Service,
	runRepo run.Repository,
	eventRepo event.Repository,
) *Service {
	return &Service{
		cache:      cacheService,
		assocs:     assocs,
		assocTexts: assocTexts,
		eventTexts: eventTexts,
		buttons:    buttons,
		features:   features,
		fields:     fields,
		runs:       runs,
		rels:       rels,
		links:      links,
		runRepo:    runRepo,
		eventRepo:  eventRepo,
	}
}

// ResetAllRun drops every cache entry scoped to one run and to its event:
// texts, buttons, features, field previews, run lookups, per-run character
// entries, navigation links, and the relationship aggregate.
func (s *Service) ResetAllRun(ctx context.Context, ev *event.Event, r *run.Run) error {
	var firstErr error
	fail := func(step string, err error) {
		if err == nil {
			return
		}
		logger.GetLogger().Errorf("run reset: %s for run %d: %v", step, r.ID, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	fail("event texts", s.eventTexts.ClearAllTexts(ctx, ev.ID))
	fail("event buttons", s.buttons.ResetEventButtons(ctx, ev.ID))
	fail("event features", s.features.ResetEventFeatures(ctx, ev.ID))
	fail("field previews", s.fields.ResetAllFieldPreviews(ctx, ev.ID))
	fail("run lookups", s.cache.DeletePattern(ctx, cache.RunLookupPattern(ev.AssocID, ev.Slug)))
	fail("run characters", s.runs.ResetRunCharacters(ctx, r.ID))
	fail("run links", s.links.ResetRunLinks(ctx, r.ID))
	fail("relationships", s.rels.ResetEventRels(ctx, ev))
	return firstErr
}

// ResetAllEvent resets every run of the event plus the event-scoped entries.
func (s *Service) ResetAllEvent(ctx context.Context, ev *event.Event) error {
	runs, err := s.runRepo.ListByEvent(ctx, ev.ID)
	if err != nil {
		return err
	}
	var firstErr error
	for _, r := range runs {
		if err := s.ResetAllRun(ctx, ev, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if len(runs) == 0 {
		// No runs yet; still drop the event-scoped entries.
		if err := s.ResetAllRun(ctx, ev, &run.Run{EventID: ev.ID}); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResetAllAssociation drops the association config entry, its texts and its
// feature set, then resets every event under it.
func (s *Service) ResetAllAssociation(ctx context.Context, assocID uint, slug string) error {
	var firstErr error
	fail := func(step string, err error) {
		if err == nil {
			return
		}
		logger.GetLogger().Errorf("association reset: %s for %q: %v", step, slug, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	fail("config", s.assocs.ClearAssociationCache(ctx, slug))
	fail("texts", s.assocTexts.ClearAllTexts(ctx, assocID))
	fail("features", s.features.ResetAssocFeatures(ctx, assocID))

	events, err := s.eventRepo.ListByAssociation(ctx, assocID)
	fail("list events", err)
	for _, ev := range events {
		fail("event reset", s.ResetAllEvent(ctx, ev))
	}
	return firstErr
}

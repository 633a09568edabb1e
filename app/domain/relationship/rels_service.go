package relationship

import (
	"context"
	"fmt"

	"larpmanager.app/larp-gateway/app/domain/dirty"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/domain/writing"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// Service maintains the per-event relationship aggregate. Writes only set
// dirty bits and enqueue background work; staleness is resolved by whichever
// of the next read or the background job gets there first.
type Service struct {
	cache    cache.CacheService
	dirty    *dirty.Service
	features *feature.CacheService
	writings writing.Repository
	events   event.Repository
	runs     run.Repository
	runCache *run.CacheService
	queue    tasks.Queue
}

func NewService(
	cacheService cache.CacheService,
	dirtyService *dirty.Service,
	features *feature.CacheService,
	writings writing.Repository,
	events event.Repository,
	runs run.Repository,
	runCache *run.CacheService,
	queue tasks.Queue,
) *Service {
	return &Service{
		cache:    cacheService,
		dirty:    dirtyService,
		features: features,
		writings: writings,
		events:   events,
		runs:     runs,
		runCache: runCache,
		queue:    queue,
	}
}

// GetEventRels returns the relationship aggregate of an event. On miss the
// whole aggregate is built; on hit any dirty items are resolved inline and
// the merged aggregate is re-persisted. The aggregate carries no TTL and
// relies purely on explicit invalidation.
func (s *Service) GetEventRels(ctx context.Context, ev *event.Event) (*EventRels, error) {
	key := cache.EventRelsKey(ev.ID)

	var rels EventRels
	found, err := s.cache.Get(ctx, key, &rels)
	if err != nil {
		return nil, err
	}
	if !found {
		// A fresh build subsumes every pending flag. Bookkeeping is dropped
		// before the build starts, so a write landing mid-build leaves its
		// flag and hint behind for the next read instead of being erased.
		if err := s.dirty.ClearAll(ctx, Namespace, ev.ID); err != nil {
			return nil, err
		}
		built, err := s.initEventRelsAll(ctx, ev)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, built, cache.NoExpiration); err != nil {
			return nil, err
		}
		return built, nil
	}

	hasDirty, err := s.dirty.HasDirty(ctx, Namespace, ev.ID)
	if err != nil {
		return nil, err
	}
	if !hasDirty {
		return &rels, nil
	}

	// The hint goes down before the flags are scanned. A mark racing this
	// pass re-raises it; since marks write their flag before the hint, every
	// flag whose hint was observed above is visible to the scans below.
	if err := s.dirty.ClearHint(ctx, Namespace, ev.ID); err != nil {
		return nil, err
	}

	resolvedAny := false
	for _, section := range Sections() {
		if !rels.HasSection(section) {
			// Feature off for this event: nothing cached to patch, so any
			// stray flags are discarded rather than left pending.
			if err := s.dirty.DropSection(ctx, Namespace, section, ev.ID); err != nil {
				return nil, err
			}
			continue
		}
		resolved, err := s.resolveSection(ctx, ev, &rels, section)
		if err != nil {
			return nil, err
		}
		if resolved {
			resolvedAny = true
		}
	}
	if resolvedAny {
		if err := s.cache.Set(ctx, key, &rels, cache.NoExpiration); err != nil {
			return nil, err
		}
	}
	return &rels, nil
}

// UpdateCacheSection merges one recomputed item into the aggregate. When the
// aggregate is gone (evicted mid-flight) it rebuilds from scratch instead of
// attempting a partial write; the narrower update is subsumed by the rebuild.
func (s *Service) UpdateCacheSection(ctx context.Context, eventID uint, section string, itemID uint, summary any) error {
	key := cache.EventRelsKey(eventID)

	var rels EventRels
	found, err := s.cache.Get(ctx, key, &rels)
	if err != nil {
		return err
	}
	if !found {
		return s.rebuild(ctx, eventID)
	}

	switch value := summary.(type) {
	case CharacterRels:
		if section != SectionCharacters {
			return fmt.Errorf("character summary for section %q", section)
		}
		rels.SetCharacter(itemID, value)
	case ElementRels:
		rels.SetElement(section, itemID, value)
	default:
		return fmt.Errorf("unsupported summary type %T", summary)
	}

	return s.cache.Set(ctx, key, &rels, cache.NoExpiration)
}

// RemoveItemFromCacheSection removes one item from the aggregate. Any failure
// falls back to deleting the whole aggregate rather than risking a
// partially-updated structure.
func (s *Service) RemoveItemFromCacheSection(ctx context.Context, eventID uint, section string, itemID uint) error {
	key := cache.EventRelsKey(eventID)

	err := func() error {
		var rels EventRels
		found, err := s.cache.Get(ctx, key, &rels)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		rels.Remove(section, itemID)
		return s.cache.Set(ctx, key, &rels, cache.NoExpiration)
	}()
	if err != nil {
		logger.GetLogger().Errorf("rels cache: removing %s/%d from event %d failed, dropping aggregate: %v", section, itemID, eventID, err)
		return s.cache.Delete(ctx, key)
	}
	return nil
}

// UpdateM2MRelatedCharacters handles a many-to-many change between a writing
// element and characters: the element and every affected character are marked
// dirty (never recomputed inline, the id sets can be large), and background
// refreshes are enqueued for both sections plus the dependent per-run
// character entries.
func (s *Service) UpdateM2MRelatedCharacters(ctx context.Context, kind writing.Kind, entityID uint, characterIDs []uint, ev *event.Event) error {
	section := SectionForKind(kind)
	if section == "" || section == SectionCharacters {
		return fmt.Errorf("kind %q does not carry character relations", kind)
	}

	if err := s.dirty.MarkDirty(ctx, Namespace, section, []uint{entityID}, ev.ID); err != nil {
		return err
	}
	if err := s.dirty.MarkDirty(ctx, Namespace, SectionCharacters, characterIDs, ev.ID); err != nil {
		return err
	}

	if err := s.enqueueRefresh(ctx, ev.ID, section, []uint{entityID}); err != nil {
		return err
	}
	if err := s.enqueueRefresh(ctx, ev.ID, SectionCharacters, characterIDs); err != nil {
		return err
	}

	runs, err := s.runs.ListByEvent(ctx, ev.ID)
	if err != nil {
		return err
	}
	pairs := make([]tasks.RunCharacterPair, 0, len(runs)*len(characterIDs))
	for _, r := range runs {
		for _, characterID := range characterIDs {
			pairs = append(pairs, tasks.RunCharacterPair{RunID: r.ID, CharacterID: characterID})
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	task, err := tasks.NewTask(tasks.TaskRefreshEventCache, tasks.RefreshEventCachePayload{Pairs: pairs})
	if err != nil {
		return err
	}
	return s.queue.Enqueue(ctx, task)
}

// MarkElementDirty flags a single writing element after a save and schedules
// its background refresh; the cheap path for one-row writes, where inline
// recomputation would still cost a relation-join query.
func (s *Service) MarkElementDirty(ctx context.Context, ev *event.Event, kind writing.Kind, itemID uint) error {
	section := SectionForKind(kind)
	if section == "" {
		return fmt.Errorf("kind %q has no aggregate section", kind)
	}
	if err := s.dirty.MarkDirty(ctx, Namespace, section, []uint{itemID}, ev.ID); err != nil {
		return err
	}
	return s.enqueueRefresh(ctx, ev.ID, section, []uint{itemID})
}

// ResetEventRels drops the aggregate of the event and of every campaign
// child, whose aggregates may reference parent-scoped elements.
func (s *Service) ResetEventRels(ctx context.Context, ev *event.Event) error {
	if err := s.cache.Delete(ctx, cache.EventRelsKey(ev.ID)); err != nil {
		return err
	}
	if err := s.dirty.ClearAll(ctx, Namespace, ev.ID); err != nil {
		return err
	}

	children, err := s.events.ListChildren(ctx, ev.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.cache.Delete(ctx, cache.EventRelsKey(child.ID)); err != nil {
			return err
		}
		if err := s.dirty.ClearAll(ctx, Namespace, child.ID); err != nil {
			return err
		}
	}
	return nil
}

// initEventRelsAll builds the full aggregate: one section per enabled
// feature, every element of the event summarized.
func (s *Service) initEventRelsAll(ctx context.Context, ev *event.Event) (*EventRels, error) {
	features, err := s.features.EventFeatures(ctx, ev.ID, ev.ParentID, ev.AssocID)
	if err != nil {
		return nil, err
	}

	rels := NewEventRels()

	characters, err := s.writings.CharacterRelations(ctx, ev.ID, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range characters {
		rels.SetCharacter(c.ID, CharacterSummary(c))
	}

	for _, kind := range writing.RelationKinds() {
		if !features.Enabled(string(kind)) {
			continue
		}
		elements, err := s.writings.ElementRelations(ctx, ev.ID, kind, nil)
		if err != nil {
			return nil, err
		}
		section := SectionForKind(kind)
		for _, e := range elements {
			rels.SetElement(section, e.ID, ElementSummary(e))
		}
		// Materialize the section even when empty, so readers can tell
		// "feature on, nothing written yet" from "feature off".
		if len(elements) == 0 {
			s.materializeSection(rels, section)
		}
	}
	return rels, nil
}

func (s *Service) materializeSection(rels *EventRels, section string) {
	switch section {
	case SectionFactions:
		rels.Factions = make(map[uint]ElementRels)
	case SectionPlots:
		rels.Plots = make(map[uint]ElementRels)
	case SectionSpeedLarps:
		rels.SpeedLarps = make(map[uint]ElementRels)
	case SectionPrologues:
		rels.Prologues = make(map[uint]ElementRels)
	}
}

// resolveSection lazily recomputes the section's flagged items in place. The
// flag scan drives the work, so an item flagged before it ever entered the
// aggregate (a freshly created element, say) is loaded and merged too.
func (s *Service) resolveSection(ctx context.Context, ev *event.Event, rels *EventRels, section string) (bool, error) {
	resolved, err := s.dirty.ResolveDirtySection(ctx, Namespace, section, ev.ID, func(ctx context.Context, dirtyIDs []uint) error {
		return s.recomputeItems(ctx, ev.ID, rels, section, dirtyIDs)
	})
	if err != nil {
		return false, err
	}
	return len(resolved) > 0, nil
}

// recomputeItems reloads the given items and writes their summaries into the
// aggregate; items no longer present in the source are removed.
func (s *Service) recomputeItems(ctx context.Context, eventID uint, rels *EventRels, section string, itemIDs []uint) error {
	if section == SectionCharacters {
		characters, err := s.writings.CharacterRelations(ctx, eventID, itemIDs)
		if err != nil {
			return err
		}
		present := make(map[uint]bool, len(characters))
		for _, c := range characters {
			rels.SetCharacter(c.ID, CharacterSummary(c))
			present[c.ID] = true
		}
		for _, itemID := range itemIDs {
			if !present[itemID] {
				rels.Remove(section, itemID)
			}
		}
		return nil
	}

	elements, err := s.writings.ElementRelations(ctx, eventID, KindForSection(section), itemIDs)
	if err != nil {
		return err
	}
	present := make(map[uint]bool, len(elements))
	for _, e := range elements {
		rels.SetElement(section, e.ID, ElementSummary(e))
		present[e.ID] = true
	}
	for _, itemID := range itemIDs {
		if !present[itemID] {
			rels.Remove(section, itemID)
		}
	}
	return nil
}

func (s *Service) rebuild(ctx context.Context, eventID uint) error {
	ev, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return nil
	}
	_, err = s.GetEventRels(ctx, ev)
	return err
}

func (s *Service) enqueueRefresh(ctx context.Context, eventID uint, section string, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	task, err := tasks.NewTask(tasks.TaskRefreshRels, tasks.RefreshRelsPayload{
		EventID: eventID,
		Section: section,
		ItemIDs: itemIDs,
	})
	if err != nil {
		return err
	}
	return s.queue.Enqueue(ctx, task)
}

package relationship

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// RegisterHandlers binds the relationship background tasks to a worker.
func (s *Service) RegisterHandlers(worker *tasks.Worker) {
	worker.Register(tasks.TaskRefreshRels, s.HandleRefreshRels)
	worker.Register(tasks.TaskRefreshEventCache, s.HandleRefreshEventCache)
}

// HandleRefreshRels is the background counterpart of the lazy resolve: each
// item still flagged dirty is recomputed and merged into the aggregate;
// items already resolved by a concurrent read are skipped. Safe under
// at-least-once delivery.
func (s *Service) HandleRefreshRels(ctx context.Context, payload json.RawMessage) error {
	var p tasks.RefreshRelsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("malformed refresh_rels payload: %w", err)
	}

	ev, err := s.events.FindByID(ctx, p.EventID)
	if err != nil {
		return err
	}
	if ev == nil {
		// Event gone; drop its dirty bookkeeping so it cannot linger forever.
		return s.dirty.ClearAll(ctx, Namespace, p.EventID)
	}

	// Collapse duplicate queued refreshes for the same event when the cache
	// backend can hand out locks; purely an optimization, the dirty flags
	// alone keep duplicates harmless.
	if provider, ok := s.cache.(cache.MutexProvider); ok {
		mutex := provider.NewMutex(fmt.Sprintf("refresh-rels-%d", p.EventID))
		if err := mutex.LockContext(ctx); err == nil {
			defer func() {
				if _, err := mutex.UnlockContext(ctx); err != nil {
					logger.GetLogger().Warnf("rels refresh: unlock event %d: %v", p.EventID, err)
				}
			}()
		}
	}

	return s.dirty.RefreshIfDirty(ctx, Namespace, p.Section, p.EventID, p.ItemIDs, func(ctx context.Context, itemID uint) error {
		return s.refreshItem(ctx, p.EventID, p.Section, itemID)
	})
}

// HandleRefreshEventCache drops the per-run character entries that depend on
// changed relationship rows; they refill lazily on the next read.
func (s *Service) HandleRefreshEventCache(ctx context.Context, payload json.RawMessage) error {
	var p tasks.RefreshEventCachePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("malformed refresh_event_cache payload: %w", err)
	}
	for _, pair := range p.Pairs {
		if err := s.runCache.ResetRunCharacter(ctx, pair.RunID, pair.CharacterID); err != nil {
			return err
		}
	}
	return nil
}

// refreshItem recomputes one item and merges it through the targeted-update
// path, removing it when the source row is gone.
func (s *Service) refreshItem(ctx context.Context, eventID uint, section string, itemID uint) error {
	started := time.Now()
	defer func() {
		logger.GetLogger().Debugf("rels refresh: event %d %s/%d took %s", eventID, section, itemID, time.Since(started))
	}()

	if section == SectionCharacters {
		characters, err := s.writings.CharacterRelations(ctx, eventID, []uint{itemID})
		if err != nil {
			return err
		}
		if len(characters) == 0 {
			return s.RemoveItemFromCacheSection(ctx, eventID, section, itemID)
		}
		return s.UpdateCacheSection(ctx, eventID, section, itemID, CharacterSummary(characters[0]))
	}

	elements, err := s.writings.ElementRelations(ctx, eventID, KindForSection(section), []uint{itemID})
	if err != nil {
		return err
	}
	if len(elements) == 0 {
		return s.RemoveItemFromCacheSection(ctx, eventID, section, itemID)
	}
	return s.UpdateCacheSection(ctx, eventID, section, itemID, ElementSummary(elements[0]))
}

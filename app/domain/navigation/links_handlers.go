package navigation

import (
	"context"
	"encoding/json"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// RegisterHandlers binds the navigation refresh task to the worker.
func (s *Service) RegisterHandlers(worker *tasks.Worker) {
	worker.Register(tasks.TaskRefreshRunLinks, s.HandleRefreshRunLinks)
}

// HandleRefreshRunLinks resolves dirty permission links in the background.
// Items whose flag was already consumed by a foreground read are skipped;
// if the aggregate is gone there is nothing to patch and the flags are
// simply dropped, the next read rebuilds from scratch.
func (s *Service) HandleRefreshRunLinks(ctx context.Context, payload json.RawMessage) error {
	var p tasks.RefreshRunLinksPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}

	key := cache.RunLinksKey(p.RunID)
	var entry LinksEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return err
	}
	if !found {
		return s.dirty.ClearSection(ctx, Namespace, p.Section, p.RunID, p.ItemIDs)
	}

	refreshed := 0
	err = s.dirty.RefreshIfDirty(ctx, Namespace, p.Section, p.RunID, p.ItemIDs, func(ctx context.Context, permissionID uint) error {
		if err := s.recomputeLinks(ctx, &entry, p.Section, []uint{permissionID}); err != nil {
			return err
		}
		refreshed++
		return nil
	})
	if err != nil {
		return err
	}
	if refreshed > 0 {
		if err := s.cache.Set(ctx, key, &entry, cache.NoExpiration); err != nil {
			return err
		}
		logger.GetLogger().WithField("run_id", p.RunID).WithField("refreshed", refreshed).
			Debug("run links refreshed in background")
	}
	// The hint stays up; only a full foreground pass may lower it, after
	// verifying no other section still carries flags.
	return nil
}

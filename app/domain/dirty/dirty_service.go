package dirty

import (
	"context"
	"strconv"
	"strings"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// flagValue is the payload of a dirty flag; presence is the signal.
const flagValue = "1"

// Service layers per-item dirty flags and a per-parent hint on top of the KV
// cache. An item is CLEAN until MarkDirty, DIRTY until whichever of the lazy
// read or the background job deletes the flag first; the loser finds the flag
// gone and skips. Recomputation must be idempotent, so a duplicate run is
// wasted work, never corruption.
//
// Flags are keyed per parent so a reader can enumerate everything pending for
// one aggregate by pattern, including items it has never seen. The write and
// read orders are fixed: MarkDirty writes flags before the hint, a resolving
// reader lowers the hint before scanning the flags. Any mark that slips past
// the scan then also re-raises the hint, so a flag can never be left behind
// with the hint down.
type Service struct {
	cache cache.CacheService
}

func NewService(cacheService cache.CacheService) *Service {
	return &Service{cache: cacheService}
}

// MarkDirty flags each item of a section as stale and, when parentID is
// given, raises the parent's hint. Marking twice is a no-op difference.
// The flags go in first: a reader that lowered the hint and then scans is
// guaranteed to see the flags of any mark whose hint it observed.
func (s *Service) MarkDirty(ctx context.Context, namespace, section string, itemIDs []uint, parentID uint) error {
	for _, itemID := range itemIDs {
		if err := s.cache.Set(ctx, cache.DirtyFlagKey(namespace, parentID, section, itemID), flagValue, cache.NoExpiration); err != nil {
			return err
		}
	}
	if parentID != 0 {
		if err := s.cache.Set(ctx, cache.DirtyHintKey(namespace, parentID), flagValue, cache.NoExpiration); err != nil {
			return err
		}
	}
	return nil
}

// HasDirty reports whether the parent's hint is raised. May over-report after
// all flags were resolved; never under-reports.
func (s *Service) HasDirty(ctx context.Context, namespace string, parentID uint) (bool, error) {
	return s.cache.Exists(ctx, cache.DirtyHintKey(namespace, parentID))
}

// ClearHint lowers the parent's hint. Resolving readers call it BEFORE the
// flag scan, not after: a mark racing the scan re-raises it, while clearing
// after the scan could erase the hint of a flag the scan never saw.
func (s *Service) ClearHint(ctx context.Context, namespace string, parentID uint) error {
	return s.cache.Delete(ctx, cache.DirtyHintKey(namespace, parentID))
}

// ResolveDirtySection scans the section's pending flags, hands the dirty ids
// to apply for recomputation, then bulk-deletes the resolved flags. It
// returns the resolved ids; the caller re-persists its aggregate when the
// result is non-empty. Runs inline in the read path: correctness over latency
// for the expected-rare dirty case.
//
// The scan is the source of truth, not the aggregate: an item flagged before
// it was ever cached is still picked up here. Scanned keys are re-checked in
// one GetMany so flags consumed by a concurrent resolver are skipped.
//
// The surrounding aggregate merge is read-modify-write with no concurrency
// check; a concurrent full rebuild of the same aggregate can win the final
// write.
func (s *Service) ResolveDirtySection(ctx context.Context, namespace, section string, parentID uint, apply func(ctx context.Context, dirtyIDs []uint) error) ([]uint, error) {
	keys, err := s.cache.Keys(ctx, cache.DirtyFlagSectionPattern(namespace, parentID, section))
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	flagged, err := s.cache.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}
	if len(flagged) == 0 {
		return nil, nil
	}

	dirtyIDs := make([]uint, 0, len(flagged))
	dirtyKeys := make([]string, 0, len(flagged))
	for key := range flagged {
		itemID, ok := itemIDFromFlagKey(key)
		if !ok {
			logger.GetLogger().Warnf("dirty resolve: unparseable flag key %q", key)
			continue
		}
		dirtyIDs = append(dirtyIDs, itemID)
		dirtyKeys = append(dirtyKeys, key)
	}
	if len(dirtyIDs) == 0 {
		return nil, nil
	}

	if err := apply(ctx, dirtyIDs); err != nil {
		return nil, err
	}
	if err := s.cache.DeleteMany(ctx, dirtyKeys); err != nil {
		return nil, err
	}
	return dirtyIDs, nil
}

// RefreshIfDirty is the background counterpart of ResolveDirtySection: for
// each item still flagged it runs refresh and clears the flag; items already
// resolved by a concurrent lazy read are skipped entirely. The hint is left
// alone, the next read settles it.
func (s *Service) RefreshIfDirty(ctx context.Context, namespace, section string, parentID uint, itemIDs []uint, refresh func(ctx context.Context, itemID uint) error) error {
	for _, itemID := range itemIDs {
		key := cache.DirtyFlagKey(namespace, parentID, section, itemID)
		stillDirty, err := s.cache.Exists(ctx, key)
		if err != nil {
			return err
		}
		if !stillDirty {
			// Someone else already resolved it; not an error.
			continue
		}
		if err := refresh(ctx, itemID); err != nil {
			logger.GetLogger().Errorf("dirty refresh: %s/%s item %d: %v", namespace, section, itemID, err)
			continue
		}
		if err := s.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ClearSection drops the flags of the given items without touching the hint;
// used when the items' aggregate no longer exists and there is nothing to
// recompute.
func (s *Service) ClearSection(ctx context.Context, namespace, section string, parentID uint, itemIDs []uint) error {
	keys := make([]string, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		keys = append(keys, cache.DirtyFlagKey(namespace, parentID, section, itemID))
	}
	return s.cache.DeleteMany(ctx, keys)
}

// DropSection discards every pending flag of one section of a parent.
func (s *Service) DropSection(ctx context.Context, namespace, section string, parentID uint) error {
	return s.cache.DeletePattern(ctx, cache.DirtyFlagSectionPattern(namespace, parentID, section))
}

// ClearAll discards every flag of the parent and lowers its hint; called
// before a full rebuild, which subsumes whatever the flags were tracking.
// Flags go first so a mark racing the rebuild still leaves flag and hint
// behind together.
func (s *Service) ClearAll(ctx context.Context, namespace string, parentID uint) error {
	if err := s.cache.DeletePattern(ctx, cache.DirtyFlagPattern(namespace, parentID)); err != nil {
		return err
	}
	return s.ClearHint(ctx, namespace, parentID)
}

// itemIDFromFlagKey recovers the item id from the last key segment.
func itemIDFromFlagKey(key string) (uint, bool) {
	idx := strings.LastIndexByte(key, ':')
	if idx < 0 || idx == len(key)-1 {
		return 0, false
	}
	id, err := strconv.ParseUint(key[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

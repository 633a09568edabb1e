package navigation

import (
	"context"
	"fmt"

	"larpmanager.app/larp-gateway/app/domain/dirty"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/domain/permission"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
)

// Namespace is the dirty-flag namespace of the navigation aggregate.
const Namespace = "links"

// Aggregate sections: event-management links and association-level links.
const (
	SectionManage = "manage"
	SectionOrga   = "orga"
)

func Sections() []string {
	return []string{SectionManage, SectionOrga}
}

// Link is one permission-gated navigation entry.
type Link struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Tutorial string `json:"tutorial"`
}

// LinksEntry is the navigation aggregate cached per run; sections map
// permission id to the rendered link.
type LinksEntry struct {
	BasePath  string        `json:"base_path"`
	AssocPath string        `json:"assoc_path"`
	Manage    map[uint]Link `json:"manage"`
	Orga      map[uint]Link `json:"orga"`
}

func (e *LinksEntry) section(name string) map[uint]Link {
	if name == SectionManage {
		return e.Manage
	}
	return e.Orga
}

// Service maintains the per-run navigation aggregate: which management pages
// the current features and permissions expose for a run.
type Service struct {
	cache       cache.CacheService
	dirty       *dirty.Service
	features    *feature.CacheService
	permissions *permission.CacheService
	permRepo    permission.Repository
	queue       tasks.Queue
}

func NewService(
	cacheService cache.CacheService,
	dirtyService *dirty.Service,
	features *feature.CacheService,
	permissions *permission.CacheService,
	permRepo permission.Repository,
	queue tasks.Queue,
) *Service {
	return &Service{
		cache:       cacheService,
		dirty:       dirtyService,
		features:    features,
		permissions: permissions,
		permRepo:    permRepo,
		queue:       queue,
	}
}

// GetRunLinks returns the run's navigation aggregate, building it on miss and
// lazily resolving dirty permission items on hit.
func (s *Service) GetRunLinks(ctx context.Context, ev *event.Event, r *run.Run, assocSlug string) (*LinksEntry, error) {
	key := cache.RunLinksKey(r.ID)

	var entry LinksEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return nil, err
	}
	if !found {
		// A fresh build subsumes every pending flag; bookkeeping is dropped
		// before building so a mark landing mid-build is kept, not erased.
		if err := s.dirty.ClearAll(ctx, Namespace, r.ID); err != nil {
			return nil, err
		}
		built, err := s.build(ctx, ev, r, assocSlug)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, built, cache.NoExpiration); err != nil {
			return nil, err
		}
		return built, nil
	}

	hasDirty, err := s.dirty.HasDirty(ctx, Namespace, r.ID)
	if err != nil {
		return nil, err
	}
	if !hasDirty {
		return &entry, nil
	}

	// Hint down before the flag scans: a racing mark re-raises it, and its
	// flag is written before its hint, so nothing observed above is missed.
	if err := s.dirty.ClearHint(ctx, Namespace, r.ID); err != nil {
		return nil, err
	}

	resolvedAny := false
	for _, section := range Sections() {
		resolved, err := s.dirty.ResolveDirtySection(ctx, Namespace, section, r.ID, func(ctx context.Context, dirtyIDs []uint) error {
			return s.recomputeLinks(ctx, &entry, section, dirtyIDs)
		})
		if err != nil {
			return nil, err
		}
		if len(resolved) > 0 {
			resolvedAny = true
		}
	}
	if resolvedAny {
		if err := s.cache.Set(ctx, key, &entry, cache.NoExpiration); err != nil {
			return nil, err
		}
	}
	return &entry, nil
}

// MarkPermissionsDirty flags changed permissions inside one run's aggregate
// and schedules a background refresh; an intervening read may resolve the
// flags first, in which case the refresh finds nothing to do.
func (s *Service) MarkPermissionsDirty(ctx context.Context, runID uint, section string, permissionIDs []uint) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	if err := s.dirty.MarkDirty(ctx, Namespace, section, permissionIDs, runID); err != nil {
		return err
	}
	task, err := tasks.NewTask(tasks.TaskRefreshRunLinks, tasks.RefreshRunLinksPayload{
		RunID:   runID,
		Section: section,
		ItemIDs: permissionIDs,
	})
	if err != nil {
		return err
	}
	return s.queue.Enqueue(ctx, task)
}

// ResetRunLinks drops the aggregate; hooked to feature toggles and
// coarse-grained resets.
func (s *Service) ResetRunLinks(ctx context.Context, runID uint) error {
	if err := s.cache.Delete(ctx, cache.RunLinksKey(runID)); err != nil {
		return err
	}
	return s.dirty.ClearAll(ctx, Namespace, runID)
}

// ResetAllRunLinks drops every run's aggregate; permission definitions are
// installation-wide, so a permission write stales them all at once.
func (s *Service) ResetAllRunLinks(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, cache.RunLinksAllPattern())
}

func (s *Service) build(ctx context.Context, ev *event.Event, r *run.Run, assocSlug string) (*LinksEntry, error) {
	entry := &LinksEntry{
		BasePath:  fmt.Sprintf("/%s/%s/%d", assocSlug, ev.Slug, r.Number),
		AssocPath: "/" + assocSlug,
		Manage:    make(map[uint]Link),
		Orga:      make(map[uint]Link),
	}

	eventFeatures, err := s.features.EventFeatures(ctx, ev.ID, ev.ParentID, ev.AssocID)
	if err != nil {
		return nil, err
	}
	eventPerms, err := s.permissions.EventPermissionFeature(ctx)
	if err != nil {
		return nil, err
	}
	for slug, info := range eventPerms {
		if info.Hidden || !eventFeatures.Enabled(info.FeatureSlug) {
			continue
		}
		entry.Manage[info.PermissionID] = Link{
			Slug:     slug,
			Name:     info.Name,
			URL:      entry.BasePath + "/manage/" + slug,
			Tutorial: info.Tutorial,
		}
	}

	assocFeatures, err := s.features.AssocFeatures(ctx, ev.AssocID)
	if err != nil {
		return nil, err
	}
	assocPerms, err := s.permissions.AssocPermissionFeature(ctx)
	if err != nil {
		return nil, err
	}
	for slug, info := range assocPerms {
		if info.Hidden || !assocFeatures.Enabled(info.FeatureSlug) {
			continue
		}
		entry.Orga[info.PermissionID] = Link{
			Slug:     slug,
			Name:     info.Name,
			URL:      entry.AssocPath + "/orga/" + slug,
			Tutorial: info.Tutorial,
		}
	}
	return entry, nil
}

// recomputeLinks reloads the given permissions and rewrites their links in
// place; permissions that vanished are removed from the section.
func (s *Service) recomputeLinks(ctx context.Context, entry *LinksEntry, sectionName string, permissionIDs []uint) error {
	permissions, err := s.permRepo.FindByIDs(ctx, permissionIDs)
	if err != nil {
		return err
	}
	section := entry.section(sectionName)

	present := make(map[uint]bool, len(permissions))
	for _, p := range permissions {
		present[p.ID] = true
		if p.Hidden {
			delete(section, p.ID)
			continue
		}
		url := entry.BasePath + "/manage/" + p.Slug
		if sectionName == SectionOrga {
			url = entry.AssocPath + "/orga/" + p.Slug
		}
		section[p.ID] = Link{
			Slug:     p.Slug,
			Name:     p.Name,
			URL:      url,
			Tutorial: p.Tutorial,
		}
	}
	for _, permissionID := range permissionIDs {
		if !present[permissionID] {
			delete(section, permissionID)
		}
	}
	return nil
}

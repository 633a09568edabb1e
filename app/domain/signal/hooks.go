package signal

import (
	"context"

	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/domain/navigation"
	"larpmanager.app/larp-gateway/app/domain/permission"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/domain/reset"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/domain/writing"
)

// Hooks binds every cache invalidation to its entity-committed event.
type Hooks struct {
	assocs     *association.CacheService
	assocTexts *association.TextCacheService
	eventTexts *event.TextCacheService
	buttons    *event.ButtonCacheService
	features   *feature.CacheService
	perms      *permission.CacheService
	fields     *writing.FieldCacheService
	runs       *run.CacheService
	rels       *relationship.Service
	links      *navigation.Service
	resets     *reset.Service
	eventRepo  event.Repository
	runRepo    run.Repository
}

func NewHooks(
	assocs *association.CacheService,
	assocTexts *association.TextCacheService,
	eventTexts *event.TextCacheService,
	buttons *event.ButtonCacheService,
	features *feature.CacheService,
	perms *permission.CacheService,
	fields *writing.FieldCacheService,
	runs *run.CacheService,
	rels *relationship.Service,
	links *navigation.Service,
	resets *reset.Service,
	eventRepo event.Repository,
	runRepo run.Repository,
) *Hooks {
	return &Hooks{
		assocs:     assocs,
		assocTexts: assocTexts,
		eventTexts: eventTexts,
		buttons:    buttons,
		features:   features,
		perms:      perms,
		fields:     fields,
		runs:       runs,
		rels:       rels,
		links:      links,
		resets:     resets,
		eventRepo:  eventRepo,
		runRepo:    runRepo,
	}
}

// Register wires every handler onto the dispatcher.
func (h *Hooks) Register(d *Dispatcher) {
	d.Register(KindAssociation, "association-cache", h.onAssociation)
	d.Register(KindConfig, "association-cache", h.onConfig)
	d.Register(KindAssociationText, "association-texts", h.onAssociationText)
	d.Register(KindEvent, "run-lookups", h.onEvent)
	d.Register(KindEventText, "event-texts", h.onEventText)
	d.Register(KindEventButton, "event-buttons", h.onEventButton)
	d.Register(KindRun, "run-lookups", h.onRun)
	d.Register(KindFeatureToggle, "feature-sets", h.onFeatureToggle)
	d.Register(KindPermission, "permission-indexes", h.onPermission)
	d.Register(KindWritingElement, "relationship-aggregate", h.onWritingElement)
}

func (h *Hooks) onAssociation(ctx context.Context, c Commit) error {
	if c.Op == OpDeleted {
		return h.resets.ResetAllAssociation(ctx, c.AssocID, c.AssocSlug)
	}
	return h.assocs.ClearAssociationCache(ctx, c.AssocSlug)
}

// Config rows live inside the association entry, so a config write is an
// association-entry invalidation.
func (h *Hooks) onConfig(ctx context.Context, c Commit) error {
	return h.assocs.ClearAssociationCache(ctx, c.AssocSlug)
}

func (h *Hooks) onAssociationText(ctx context.Context, c Commit) error {
	return h.assocTexts.ClearText(ctx, c.AssocID, c.TextTyp, c.TextLanguage, c.TextDefault)
}

func (h *Hooks) onEventText(ctx context.Context, c Commit) error {
	return h.eventTexts.ClearText(ctx, c.EventID, c.TextTyp, c.TextLanguage, c.TextDefault)
}

func (h *Hooks) onEventButton(ctx context.Context, c Commit) error {
	return h.buttons.ResetEventButtons(ctx, c.EventID)
}

func (h *Hooks) onEvent(ctx context.Context, c Commit) error {
	if c.Op == OpDeleted {
		ev := &event.Event{ID: c.EventID, AssocID: c.AssocID, Slug: c.EventSlug}
		return h.resets.ResetAllEvent(ctx, ev)
	}
	// Slug or name changes invalidate the slug-addressed lookups.
	return h.runs.ResetRunLookups(ctx, c.AssocID, c.EventSlug)
}

func (h *Hooks) onRun(ctx context.Context, c Commit) error {
	if c.Op == OpDeleted {
		ev, err := h.eventRepo.FindByID(ctx, c.EventID)
		if err != nil {
			return err
		}
		if ev != nil {
			return h.resets.ResetAllRun(ctx, ev, &run.Run{ID: c.RunID, EventID: c.EventID})
		}
	}
	return h.runs.ResetRunLookups(ctx, c.AssocID, c.EventSlug)
}

// Feature toggles change which sections composite caches build, so the
// dependent aggregates are dropped wholesale rather than patched.
func (h *Hooks) onFeatureToggle(ctx context.Context, c Commit) error {
	if c.EventID == 0 {
		if err := h.features.ResetAssocFeatures(ctx, c.AssocID); err != nil {
			return err
		}
		return h.resetAssocAggregates(ctx, c.AssocID)
	}

	if err := h.features.ResetEventFeatures(ctx, c.EventID); err != nil {
		return err
	}
	ev, err := h.eventRepo.FindByID(ctx, c.EventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return nil
	}
	if err := h.rels.ResetEventRels(ctx, ev); err != nil {
		return err
	}
	runs, err := h.runRepo.ListByEvent(ctx, c.EventID)
	if err != nil {
		return err
	}
	for _, r := range runs {
		if err := h.links.ResetRunLinks(ctx, r.ID); err != nil {
			return err
		}
	}
	return nil
}

// Permission definitions are installation-wide: drop the slug indexes and
// every run's navigation aggregate.
func (h *Hooks) onPermission(ctx context.Context, c Commit) error {
	if err := h.perms.Reset(ctx); err != nil {
		return err
	}
	return h.links.ResetAllRunLinks(ctx)
}

// A single writing save is the cheap-to-detect, expensive-to-resolve case:
// flag the item dirty and let the lazy read or the background job recompute
// it. Deletes are removed from the aggregate immediately.
func (h *Hooks) onWritingElement(ctx context.Context, c Commit) error {
	if err := h.fields.ResetFieldPreviews(ctx, c.EventID, c.WritingKind); err != nil {
		return err
	}
	section := relationship.SectionForKind(c.WritingKind)
	if section == "" {
		return nil
	}
	if c.Op == OpDeleted {
		return h.rels.RemoveItemFromCacheSection(ctx, c.EventID, section, c.ID)
	}
	ev, err := h.eventRepo.FindByID(ctx, c.EventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return nil
	}
	return h.rels.MarkElementDirty(ctx, ev, c.WritingKind, c.ID)
}

func (h *Hooks) resetAssocAggregates(ctx context.Context, assocID uint) error {
	events, err := h.eventRepo.ListByAssociation(ctx, assocID)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := h.rels.ResetEventRels(ctx, ev); err != nil {
			return err
		}
		runs, err := h.runRepo.ListByEvent(ctx, ev.ID)
		if err != nil {
			return err
		}
		for _, r := range runs {
			if err := h.links.ResetRunLinks(ctx, r.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

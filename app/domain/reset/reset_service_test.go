package reset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/domain/dirty"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/domain/navigation"
	"larpmanager.app/larp-gateway/app/domain/permission"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/domain/writing"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
)

type stubAssocRepo struct {
	assoc *association.Association
}

func (r *stubAssocRepo) FindByID(_ context.Context, id uint) (*association.Association, error) {
	if r.assoc != nil && r.assoc.ID == id {
		return r.assoc, nil
	}
	return nil, nil
}

func (r *stubAssocRepo) FindBySlug(_ context.Context, slug string) (*association.Association, error) {
	if r.assoc != nil && r.assoc.Slug == slug {
		return r.assoc, nil
	}
	return nil, nil
}

func (r *stubAssocRepo) ListConfigs(context.Context, uint) ([]*association.Config, error) {
	return []*association.Config{{Name: "token_credit_token_name", Value: "Gems"}}, nil
}

func (r *stubAssocRepo) FindText(_ context.Context, _ uint, _, _ string) (*association.Text, error) {
	return &association.Text{Text: "hello"}, nil
}

func (r *stubAssocRepo) FindDefaultText(context.Context, uint, string) (*association.Text, error) {
	return &association.Text{Text: "hello", Default: true}, nil
}

type stubEventRepo struct {
	ev *event.Event
}

func (r *stubEventRepo) FindByID(_ context.Context, id uint) (*event.Event, error) {
	if r.ev.ID == id {
		return r.ev, nil
	}
	return nil, nil
}

func (r *stubEventRepo) FindBySlug(_ context.Context, assocID uint, slug string) (*event.Event, error) {
	if r.ev.AssocID == assocID && r.ev.Slug == slug {
		return r.ev, nil
	}
	return nil, nil
}

func (r *stubEventRepo) ListByAssociation(_ context.Context, assocID uint) ([]*event.Event, error) {
	if r.ev.AssocID == assocID {
		return []*event.Event{r.ev}, nil
	}
	return nil, nil
}

func (r *stubEventRepo) ListChildren(context.Context, uint) ([]*event.Event, error) {
	return nil, nil
}

func (r *stubEventRepo) ListButtons(context.Context, uint) ([]*event.Button, error) {
	return []*event.Button{{ID: 1, Name: "Signup", Link: "https://example.com", Number: 1}}, nil
}

func (r *stubEventRepo) FindText(context.Context, uint, string, string) (*event.Text, error) {
	return &event.Text{Text: "intro"}, nil
}

func (r *stubEventRepo) FindDefaultText(context.Context, uint, string) (*event.Text, error) {
	return &event.Text{Text: "intro", Default: true}, nil
}

type stubRunRepo struct {
	r *run.Run
}

func (s *stubRunRepo) FindByID(_ context.Context, id uint) (*run.Run, error) {
	if s.r.ID == id {
		return s.r, nil
	}
	return nil, nil
}

func (s *stubRunRepo) FindByEventAndNumber(_ context.Context, eventID uint, number int) (*run.Run, error) {
	if s.r.EventID == eventID && s.r.Number == number {
		return s.r, nil
	}
	return nil, nil
}

func (s *stubRunRepo) ListByEvent(_ context.Context, eventID uint) ([]*run.Run, error) {
	if s.r.EventID == eventID {
		return []*run.Run{s.r}, nil
	}
	return nil, nil
}

type stubFeatureRepo struct{}

func (stubFeatureRepo) ListByAssociation(context.Context, uint) ([]*feature.Feature, error) {
	return []*feature.Feature{{ID: 1, Slug: "membership", Overall: true}}, nil
}

func (stubFeatureRepo) ListByEvent(context.Context, uint) ([]*feature.Feature, error) {
	return []*feature.Feature{{ID: 2, Slug: "faction"}}, nil
}

type stubWritingRepo struct{}

func (stubWritingRepo) CharacterRelations(context.Context, uint, []uint) ([]writing.CharacterRelations, error) {
	return []writing.CharacterRelations{{ID: 1, Name: "Aldric"}}, nil
}

func (stubWritingRepo) ElementRelations(context.Context, uint, writing.Kind, []uint) ([]writing.ElementRelations, error) {
	return nil, nil
}

func (stubWritingRepo) FieldTexts(context.Context, uint, writing.Kind) (map[uint]string, error) {
	return map[uint]string{1: "a long presentation text"}, nil
}

type stubPermissionRepo struct{}

func (stubPermissionRepo) ListByScope(_ context.Context, scope permission.Scope) ([]*permission.Permission, error) {
	return []*permission.Permission{{ID: 1, Slug: "characters", Scope: scope, FeatureSlug: "faction"}}, nil
}

func (stubPermissionRepo) FindByIDs(context.Context, []uint) ([]*permission.Permission, error) {
	return nil, nil
}

func TestResetAllAssociationLeavesNoScopedKeys(t *testing.T) {
	mem := cache.NewMemoryCacheService()
	dirtySvc := dirty.NewService(mem)
	ctx := context.Background()

	assoc := &association.Association{ID: 7, Slug: "wyvern", Name: "Wyvern Larp"}
	ev := &event.Event{ID: 10, AssocID: 7, Slug: "dragons"}
	r := &run.Run{ID: 20, EventID: 10, Number: 1}

	assocRepo := &stubAssocRepo{assoc: assoc}
	eventRepo := &stubEventRepo{ev: ev}
	runRepo := &stubRunRepo{r: r}
	writingRepo := stubWritingRepo{}

	featureCache := feature.NewCacheService(stubFeatureRepo{}, mem)
	permCache := permission.NewCacheService(stubPermissionRepo{}, mem)
	assocCache := association.NewCacheService(assocRepo, featureCache, mem)
	assocTexts := association.NewTextCacheService(assocRepo, mem)
	eventTexts := event.NewTextCacheService(eventRepo, mem)
	buttons := event.NewButtonCacheService(eventRepo, mem)
	fields := writing.NewFieldCacheService(writingRepo, mem)
	runCache := run.NewCacheService(runRepo, eventRepo, mem)

	worker := tasks.NewWorker()
	queue := &tasks.InlineQueue{Worker: worker}
	rels := relationship.NewService(mem, dirtySvc, featureCache, writingRepo, eventRepo, runRepo, runCache, queue)
	links := navigation.NewService(mem, dirtySvc, featureCache, permCache, stubPermissionRepo{}, queue)

	svc := NewService(mem, assocCache, assocTexts, eventTexts, buttons, featureCache, fields, runCache, rels, links, runRepo, eventRepo)

	// Populate every namespace the way production reads would.
	_, err := assocCache.GetCacheAssoc(ctx, "wyvern")
	require.NoError(t, err)
	_, err = assocTexts.GetText(ctx, 7, "home", "en")
	require.NoError(t, err)
	_, err = eventTexts.GetText(ctx, 10, "intro", "en")
	require.NoError(t, err)
	_, err = buttons.GetEventButtons(ctx, 10)
	require.NoError(t, err)
	_, err = featureCache.EventFeatures(ctx, 10, 0, 7)
	require.NoError(t, err)
	_, err = fields.GetFieldPreviews(ctx, 10, writing.KindCharacter)
	require.NoError(t, err)
	_, err = runCache.GetCacheRun(ctx, 7, "dragons", 1)
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, cache.RunCharacterKey(20, 1), "sheet", cache.DefaultTTL))
	_, err = rels.GetEventRels(ctx, ev)
	require.NoError(t, err)
	_, err = links.GetRunLinks(ctx, ev, r, "wyvern")
	require.NoError(t, err)

	require.NoError(t, svc.ResetAllAssociation(ctx, 7, "wyvern"))

	// Every key any of the builders could have written must be gone.
	gone := []string{
		cache.AssocKey("wyvern"),
		cache.AssocTextKey(7, "home", "en"),
		cache.AssocTextDefaultKey(7, "home"),
		cache.EventTextKey(10, "intro", "en"),
		cache.EventTextDefaultKey(10, "intro"),
		cache.EventButtonsKey(10),
		cache.AssocFeaturesKey(7),
		cache.EventFeaturesKey(10),
		cache.FieldPreviewKey(10, string(writing.KindCharacter)),
		cache.RunLookupKey(7, "dragons", 1),
		cache.RunCharacterKey(20, 1),
		cache.EventRelsKey(10),
		cache.RunLinksKey(20),
	}
	for _, key := range gone {
		exists, err := mem.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %s should have been invalidated", key)
	}
}

func TestResetAllRunKeepsAssociationEntries(t *testing.T) {
	mem := cache.NewMemoryCacheService()
	dirtySvc := dirty.NewService(mem)
	ctx := context.Background()

	ev := &event.Event{ID: 10, AssocID: 7, Slug: "dragons"}
	r := &run.Run{ID: 20, EventID: 10, Number: 1}

	assocRepo := &stubAssocRepo{assoc: &association.Association{ID: 7, Slug: "wyvern"}}
	eventRepo := &stubEventRepo{ev: ev}
	runRepo := &stubRunRepo{r: r}

	featureCache := feature.NewCacheService(stubFeatureRepo{}, mem)
	permCache := permission.NewCacheService(stubPermissionRepo{}, mem)
	assocCache := association.NewCacheService(assocRepo, featureCache, mem)
	assocTexts := association.NewTextCacheService(assocRepo, mem)
	eventTexts := event.NewTextCacheService(eventRepo, mem)
	buttons := event.NewButtonCacheService(eventRepo, mem)
	fields := writing.NewFieldCacheService(stubWritingRepo{}, mem)
	runCache := run.NewCacheService(runRepo, eventRepo, mem)

	worker := tasks.NewWorker()
	queue := &tasks.InlineQueue{Worker: worker}
	rels := relationship.NewService(mem, dirtySvc, featureCache, stubWritingRepo{}, eventRepo, runRepo, runCache, queue)
	links := navigation.NewService(mem, dirtySvc, featureCache, permCache, stubPermissionRepo{}, queue)

	svc := NewService(mem, assocCache, assocTexts, eventTexts, buttons, featureCache, fields, runCache, rels, links, runRepo, eventRepo)

	_, err := assocCache.GetCacheAssoc(ctx, "wyvern")
	require.NoError(t, err)
	_, err = buttons.GetEventButtons(ctx, 10)
	require.NoError(t, err)

	require.NoError(t, svc.ResetAllRun(ctx, ev, r))

	exists, err := mem.Exists(ctx, cache.AssocKey("wyvern"))
	require.NoError(t, err)
	assert.True(t, exists, "association config is out of run-reset scope")

	exists, err = mem.Exists(ctx, cache.EventButtonsKey(10))
	require.NoError(t, err)
	assert.False(t, exists)
}

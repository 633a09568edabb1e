package association

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

type fakeAssocRepo struct {
	assoc   *Association
	configs []*Config
	loads   int
}

func (f *fakeAssocRepo) FindByID(ctx context.Context, id uint) (*Association, error) {
	if f.assoc != nil && f.assoc.ID == id {
		return f.assoc, nil
	}
	return nil, nil
}

func (f *fakeAssocRepo) FindBySlug(ctx context.Context, slug string) (*Association, error) {
	f.loads++
	if f.assoc != nil && f.assoc.Slug == slug {
		return f.assoc, nil
	}
	return nil, nil
}

func (f *fakeAssocRepo) ListConfigs(ctx context.Context, assocID uint) ([]*Config, error) {
	return f.configs, nil
}

func (f *fakeAssocRepo) FindText(ctx context.Context, assocID uint, typ, language string) (*Text, error) {
	return nil, nil
}

func (f *fakeAssocRepo) FindDefaultText(ctx context.Context, assocID uint, typ string) (*Text, error) {
	return nil, nil
}

type fakeFeatureRepo struct {
	assocFeatures []*feature.Feature
}

func (f *fakeFeatureRepo) ListByAssociation(ctx context.Context, assocID uint) ([]*feature.Feature, error) {
	return f.assocFeatures, nil
}

func (f *fakeFeatureRepo) ListByEvent(ctx context.Context, eventID uint) ([]*feature.Feature, error) {
	return nil, nil
}

func newAssocFixture() (*CacheService, *fakeAssocRepo, *feature.CacheService, cache.CacheService) {
	assocRepo := &fakeAssocRepo{
		assoc: &Association{ID: 7, Slug: "acme", Name: "Acme LARP", Skin: "dark"},
		configs: []*Config{
			{AssocID: 7, Name: "token_credit_token_name", Value: "Gems"},
		},
	}
	featureRepo := &fakeFeatureRepo{assocFeatures: []*feature.Feature{
		{ID: 3, Slug: "token_credit", Overall: true},
	}}
	cacheService := cache.NewMemoryCacheService()
	features := feature.NewCacheService(featureRepo, cacheService)
	return NewCacheService(assocRepo, features, cacheService), assocRepo, features, cacheService
}

func TestGetCacheAssocReadThrough(t *testing.T) {
	svc, repo, _, _ := newAssocFixture()

	entry, err := svc.GetCacheAssoc(context.Background(), "acme")
	require.NoError(t, err)
	require.True(t, entry.Found())
	assert.Equal(t, uint(7), entry.ID)
	assert.Equal(t, "Gems", entry.TokenName)
	assert.Equal(t, uint(3), entry.Features["token_credit"])
	assert.Equal(t, 1, repo.loads)

	again, err := svc.GetCacheAssoc(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, entry, again)
	assert.Equal(t, 1, repo.loads)
}

func TestGetCacheAssocCachesUnknownSlug(t *testing.T) {
	svc, repo, _, _ := newAssocFixture()

	entry, err := svc.GetCacheAssoc(context.Background(), "ghosts")
	require.NoError(t, err)
	assert.False(t, entry.Found())

	_, err = svc.GetCacheAssoc(context.Background(), "ghosts")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.loads)
}

func TestClearAssociationCachePicksUpNewConfig(t *testing.T) {
	svc, repo, features, _ := newAssocFixture()

	_, err := svc.GetCacheAssoc(context.Background(), "acme")
	require.NoError(t, err)

	repo.configs[0].Value = "Crowns"
	require.NoError(t, features.ResetAssocFeatures(context.Background(), 7))
	require.NoError(t, svc.ClearAssociationCache(context.Background(), "acme"))

	entry, err := svc.GetCacheAssoc(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Crowns", entry.TokenName)
	assert.Equal(t, 2, repo.loads)
}

package run

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

type fakeRunRepo struct {
	runs  []*Run
	loads int
}

func (f *fakeRunRepo) FindByID(ctx context.Context, id uint) (*Run, error) {
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRunRepo) FindByEventAndNumber(ctx context.Context, eventID uint, number int) (*Run, error) {
	f.loads++
	for _, r := range f.runs {
		if r.EventID == eventID && r.Number == number {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRunRepo) ListByEvent(ctx context.Context, eventID uint) ([]*Run, error) {
	var out []*Run
	for _, r := range f.runs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events []*event.Event
	loads  int
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uint) (*event.Event, error) {
	for _, ev := range f.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) FindBySlug(ctx context.Context, assocID uint, slug string) (*event.Event, error) {
	f.loads++
	for _, ev := range f.events {
		if ev.AssocID == assocID && ev.Slug == slug {
			return ev, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) ListByAssociation(ctx context.Context, assocID uint) ([]*event.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListChildren(ctx context.Context, parentID uint) ([]*event.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListButtons(ctx context.Context, eventID uint) ([]*event.Button, error) {
	return nil, nil
}

func (f *fakeEventRepo) FindText(ctx context.Context, eventID uint, typ, language string) (*event.Text, error) {
	return nil, nil
}

func (f *fakeEventRepo) FindDefaultText(ctx context.Context, eventID uint, typ string) (*event.Text, error) {
	return nil, nil
}

func newLookupFixture() (*CacheService, *fakeRunRepo, *fakeEventRepo) {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	runs := &fakeRunRepo{runs: []*Run{
		{ID: 31, EventID: 10, Number: 1, Start: start, End: start.AddDate(0, 0, 2)},
	}}
	events := &fakeEventRepo{events: []*event.Event{
		{ID: 10, AssocID: 7, Slug: "winter-larp", Name: "Winter Larp"},
	}}
	return NewCacheService(runs, events, cache.NewMemoryCacheService()), runs, events
}

func TestGetCacheRunReadThrough(t *testing.T) {
	svc, runs, _ := newLookupFixture()

	entry, err := svc.GetCacheRun(context.Background(), 7, "winter-larp", 1)
	require.NoError(t, err)
	require.True(t, entry.Found())
	assert.Equal(t, uint(31), entry.RunID)
	assert.Equal(t, uint(10), entry.EventID)

	loads := runs.loads
	entry, err = svc.GetCacheRun(context.Background(), 7, "winter-larp", 1)
	require.NoError(t, err)
	assert.True(t, entry.Found())
	assert.Equal(t, loads, runs.loads)
}

func TestGetCacheRunCachesNotFound(t *testing.T) {
	svc, runs, events := newLookupFixture()

	entry, err := svc.GetCacheRun(context.Background(), 7, "winter-larp", 9)
	require.NoError(t, err)
	assert.False(t, entry.Found())

	// The sentinel is cached: a second lookup does not reach either repo.
	runLoads, eventLoads := runs.loads, events.loads
	entry, err = svc.GetCacheRun(context.Background(), 7, "winter-larp", 9)
	require.NoError(t, err)
	assert.False(t, entry.Found())
	assert.Equal(t, runLoads, runs.loads)
	assert.Equal(t, eventLoads, events.loads)
}

func TestResetRunLookups(t *testing.T) {
	svc, runs, _ := newLookupFixture()

	_, err := svc.GetCacheRun(context.Background(), 7, "winter-larp", 1)
	require.NoError(t, err)

	runs.runs[0].Number = 2
	require.NoError(t, svc.ResetRunLookups(context.Background(), 7, "winter-larp"))

	entry, err := svc.GetCacheRun(context.Background(), 7, "winter-larp", 1)
	require.NoError(t, err)
	assert.False(t, entry.Found())
}

package dirty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

func TestMarkDirtySetsFlagsAndHint(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{1, 2}, 9))

	for _, id := range []uint{1, 2} {
		exists, err := kv.Exists(ctx, cache.DirtyFlagKey("rels", 9, "characters", id))
		require.NoError(t, err)
		assert.True(t, exists)
	}
	hint, err := svc.HasDirty(ctx, "rels", 9)
	require.NoError(t, err)
	assert.True(t, hint)
}

func TestMarkDirtyIsIdempotent(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "plots", []uint{4}, 9))
	require.NoError(t, svc.MarkDirty(ctx, "rels", "plots", []uint{4}, 9))

	resolved, err := svc.ResolveDirtySection(ctx, "rels", "plots", 9, func(ctx context.Context, ids []uint) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, resolved)
}

func TestResolveDirtySectionOnlyTouchesFlaggedItems(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{2}, 9))

	var applied []uint
	resolved, err := svc.ResolveDirtySection(ctx, "rels", "characters", 9, func(ctx context.Context, ids []uint) error {
		applied = ids
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, resolved)
	assert.Equal(t, []uint{2}, applied)

	// Flag is consumed.
	exists, err := kv.Exists(ctx, cache.DirtyFlagKey("rels", 9, "characters", 2))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResolveDirtySectionScopedToParent(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{1}, 9))
	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{2}, 10))

	resolved, err := svc.ResolveDirtySection(ctx, "rels", "characters", 9, func(ctx context.Context, ids []uint) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, resolved)

	// The other parent's flag is untouched.
	exists, err := kv.Exists(ctx, cache.DirtyFlagKey("rels", 10, "characters", 2))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestResolveDirtySectionCleanIsNoOp(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	calls := 0
	resolved, err := svc.ResolveDirtySection(ctx, "rels", "characters", 9, func(ctx context.Context, ids []uint) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.Zero(t, calls, "apply must not run when nothing is dirty")
}

func TestRefreshIfDirtySkipsAlreadyResolvedItems(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "factions", []uint{1, 2}, 9))

	// A concurrent lazy read resolved item 1 first.
	require.NoError(t, kv.Delete(ctx, cache.DirtyFlagKey("rels", 9, "factions", 1)))

	var refreshed []uint
	require.NoError(t, svc.RefreshIfDirty(ctx, "rels", "factions", 9, []uint{1, 2}, func(ctx context.Context, id uint) error {
		refreshed = append(refreshed, id)
		return nil
	}))
	assert.Equal(t, []uint{2}, refreshed)
}

func TestResolutionExclusivity(t *testing.T) {
	// Whichever of the lazy read and the background job runs first performs
	// the recomputation; the other finds the flag cleared and is a no-op.
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{7}, 3))

	recomputations := 0

	// Lazy read path wins.
	_, err := svc.ResolveDirtySection(ctx, "rels", "characters", 3, func(ctx context.Context, ids []uint) error {
		recomputations += len(ids)
		return nil
	})
	require.NoError(t, err)

	// Background job arrives second.
	require.NoError(t, svc.RefreshIfDirty(ctx, "rels", "characters", 3, []uint{7}, func(ctx context.Context, id uint) error {
		recomputations++
		return nil
	}))

	assert.Equal(t, 1, recomputations)
}

func TestHintIsConservative(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{1}, 5))

	// Resolving the flags does not lower the hint by itself; over-reporting
	// is tolerated, under-reporting is not.
	_, err := svc.ResolveDirtySection(ctx, "rels", "characters", 5, func(ctx context.Context, ids []uint) error {
		return nil
	})
	require.NoError(t, err)

	hint, err := svc.HasDirty(ctx, "rels", 5)
	require.NoError(t, err)
	assert.True(t, hint, "hint may outlive the flags")

	require.NoError(t, svc.ClearHint(ctx, "rels", 5))
	hint, err = svc.HasDirty(ctx, "rels", 5)
	require.NoError(t, err)
	assert.False(t, hint)
}

func TestScanCoversItemsMarkedAfterHintLowered(t *testing.T) {
	// The reader protocol is hint down, then scan. A mark interleaved between
	// the two re-raises the hint and its flag is still found by the scan, so
	// no flag can sit behind a lowered hint.
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.ClearHint(ctx, "rels", 9))
	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{42}, 9))

	resolved, err := svc.ResolveDirtySection(ctx, "rels", "characters", 9, func(ctx context.Context, ids []uint) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{42}, resolved)

	hint, err := svc.HasDirty(ctx, "rels", 9)
	require.NoError(t, err)
	assert.True(t, hint, "a mark after the hint went down raises it again")
}

func TestClearSectionLeavesHintAlone(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "links", "manage", []uint{1, 2}, 4))
	require.NoError(t, svc.ClearSection(ctx, "links", "manage", 4, []uint{1, 2}))

	exists, err := kv.Exists(ctx, cache.DirtyFlagKey("links", 4, "manage", 1))
	require.NoError(t, err)
	assert.False(t, exists)
	hint, err := svc.HasDirty(ctx, "links", 4)
	require.NoError(t, err)
	assert.True(t, hint, "dropping flags never lowers the hint by itself")
}

func TestDropSection(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "plots", []uint{1, 2, 3}, 4))
	require.NoError(t, svc.DropSection(ctx, "rels", "plots", 4))

	resolved, err := svc.ResolveDirtySection(ctx, "rels", "plots", 4, func(ctx context.Context, ids []uint) error {
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestClearAll(t *testing.T) {
	kv := cache.NewMemoryCacheService()
	svc := NewService(kv)
	ctx := context.Background()

	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{1}, 4))
	require.NoError(t, svc.MarkDirty(ctx, "rels", "plots", []uint{2}, 4))
	require.NoError(t, svc.MarkDirty(ctx, "rels", "characters", []uint{3}, 5))

	require.NoError(t, svc.ClearAll(ctx, "rels", 4))

	for _, key := range []string{
		cache.DirtyFlagKey("rels", 4, "characters", 1),
		cache.DirtyFlagKey("rels", 4, "plots", 2),
		cache.DirtyHintKey("rels", 4),
	} {
		exists, err := kv.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %s should be gone", key)
	}

	// Other parents keep their bookkeeping.
	hint, err := svc.HasDirty(ctx, "rels", 5)
	require.NoError(t, err)
	assert.True(t, hint)
}

package writing

import (
	"context"
	"unicode/utf8"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// previewRunes caps the length of a cached text-field preview.
const previewRunes = 250

// FieldPreview is the cached map of element id to truncated text for one
// (event, kind) pair, used by search and listing views.
type FieldPreview struct {
	Previews map[uint]string `json:"previews"`
}

// FieldCacheService is the read-through cache for writing text-field
// previews.
type FieldCacheService struct {
	repo  Repository
	cache cache.CacheService
}

func NewFieldCacheService(repo Repository, cacheService cache.CacheService) *FieldCacheService {
	return &FieldCacheService{repo: repo, cache: cacheService}
}

// GetFieldPreviews returns the preview map, computing it on miss.
func (s *FieldCacheService) GetFieldPreviews(ctx context.Context, eventID uint, kind Kind) (map[uint]string, error) {
	key := cache.FieldPreviewKey(eventID, string(kind))

	var preview FieldPreview
	found, err := s.cache.Get(ctx, key, &preview)
	if err != nil {
		return nil, err
	}
	if found {
		return preview.Previews, nil
	}

	texts, err := s.repo.FieldTexts(ctx, eventID, kind)
	if err != nil {
		return nil, err
	}
	preview = FieldPreview{Previews: make(map[uint]string, len(texts))}
	for id, text := range texts {
		preview.Previews[id] = truncate(text, previewRunes)
	}
	if err := s.cache.Set(ctx, key, preview, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return preview.Previews, nil
}

// ResetFieldPreviews invalidates one (event, kind) preview map.
func (s *FieldCacheService) ResetFieldPreviews(ctx context.Context, eventID uint, kind Kind) error {
	return s.cache.Delete(ctx, cache.FieldPreviewKey(eventID, string(kind)))
}

// ResetAllFieldPreviews drops every preview map of the event.
func (s *FieldCacheService) ResetAllFieldPreviews(ctx context.Context, eventID uint) error {
	return s.cache.DeletePattern(ctx, cache.FieldPreviewPattern(eventID))
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

package event

import (
	"context"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// TextEntry wraps a cached localized event text so that a cached empty string
// stays distinguishable from a miss.
type TextEntry struct {
	Text string `json:"text"`
}

// TextCacheService caches event texts per (event, type, language) with a
// default-language fallback key, mirroring the association text cache.
type TextCacheService struct {
	repo  Repository
	cache cache.CacheService
}

func NewTextCacheService(repo Repository, cacheService cache.CacheService) *TextCacheService {
	return &TextCacheService{repo: repo, cache: cacheService}
}

func (s *TextCacheService) GetText(ctx context.Context, eventID uint, typ, lang string) (string, error) {
	key := cache.EventTextKey(eventID, typ, lang)

	var entry TextEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return "", err
	}
	if !found {
		text, err := s.repo.FindText(ctx, eventID, typ, lang)
		if err != nil {
			return "", err
		}
		entry = TextEntry{}
		if text != nil {
			entry.Text = text.Text
		}
		if err := s.cache.Set(ctx, key, entry, cache.DefaultTTL); err != nil {
			return "", err
		}
	}

	if entry.Text != "" {
		return entry.Text, nil
	}
	return s.GetTextDefault(ctx, eventID, typ)
}

func (s *TextCacheService) GetTextDefault(ctx context.Context, eventID uint, typ string) (string, error) {
	key := cache.EventTextDefaultKey(eventID, typ)

	var entry TextEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return "", err
	}
	if found {
		return entry.Text, nil
	}

	text, err := s.repo.FindDefaultText(ctx, eventID, typ)
	if err != nil {
		return "", err
	}
	entry = TextEntry{}
	if text != nil {
		entry.Text = text.Text
	}
	if err := s.cache.Set(ctx, key, entry, cache.DefaultTTL); err != nil {
		return "", err
	}
	return entry.Text, nil
}

func (s *TextCacheService) ClearText(ctx context.Context, eventID uint, typ, lang string, isDefault bool) error {
	if err := s.cache.Delete(ctx, cache.EventTextKey(eventID, typ, lang)); err != nil {
		return err
	}
	if isDefault {
		return s.cache.Delete(ctx, cache.EventTextDefaultKey(eventID, typ))
	}
	return nil
}

// ClearAllTexts drops every text entry of the event.
func (s *TextCacheService) ClearAllTexts(ctx context.Context, eventID uint) error {
	return s.cache.DeletePattern(ctx, cache.EventTextPattern(eventID))
}

package association

import (
	"context"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// TextEntry wraps a cached localized text. Empty text is a legitimate cached
// value; the envelope keeps it distinguishable from a miss.
type TextEntry struct {
	Text string `json:"text"`
}

// TextCacheService caches association texts per (assoc, type, language) with
// a separate default-language key used as the fallback.
type TextCacheService struct {
	repo  Repository
	cache cache.CacheService
}

func NewTextCacheService(repo Repository, cacheService cache.CacheService) *TextCacheService {
	return &TextCacheService{repo: repo, cache: cacheService}
}

// GetText returns the text of the given type in the requested language,
// falling back to the association's default-language text when no
// language-specific row exists.
func (s *TextCacheService) GetText(ctx context.Context, assocID uint, typ, lang string) (string, error) {
	key := cache.AssocTextKey(assocID, typ, lang)

	var entry TextEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return "", err
	}
	if !found {
		text, err := s.repo.FindText(ctx, assocID, typ, lang)
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
	return s.GetTextDefault(ctx, assocID, typ)
}

// GetTextDefault returns the text of the row flagged as default for the type.
func (s *TextCacheService) GetTextDefault(ctx context.Context, assocID uint, typ string) (string, error) {
	key := cache.AssocTextDefaultKey(assocID, typ)

	var entry TextEntry
	found, err := s.cache.Get(ctx, key, &entry)
	if err != nil {
		return "", err
	}
	if found {
		return entry.Text, nil
	}

	text, err := s.repo.FindDefaultText(ctx, assocID, typ)
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

// ClearText invalidates the language-specific entry; the default key is only
// touched when the row flagged as default changes.
func (s *TextCacheService) ClearText(ctx context.Context, assocID uint, typ, lang string, isDefault bool) error {
	if err := s.cache.Delete(ctx, cache.AssocTextKey(assocID, typ, lang)); err != nil {
		return err
	}
	if isDefault {
		return s.cache.Delete(ctx, cache.AssocTextDefaultKey(assocID, typ))
	}
	return nil
}

// ClearAllTexts drops every text entry of the association.
func (s *TextCacheService) ClearAllTexts(ctx context.Context, assocID uint) error {
	return s.cache.DeletePattern(ctx, cache.AssocTextPattern(assocID))
}

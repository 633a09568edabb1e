package event

import (
	"context"
	"sort"

	"larpmanager.app/larp-gateway/app/infrastructure/cache"
)

// ButtonEntry is one cached navigation button.
type ButtonEntry struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	Tooltip string `json:"tooltip"`
}

// ButtonList is the cached, ordered button list of an event. The wrapper
// keeps an event with zero buttons distinguishable from a cache miss.
type ButtonList struct {
	Buttons []ButtonEntry `json:"buttons"`
}

// ButtonCacheService is the read-through cache for event buttons.
type ButtonCacheService struct {
	repo  Repository
	cache cache.CacheService
}

func NewButtonCacheService(repo Repository, cacheService cache.CacheService) *ButtonCacheService {
	return &ButtonCacheService{repo: repo, cache: cacheService}
}

// GetEventButtons returns the ordered button list, computing it on miss.
func (s *ButtonCacheService) GetEventButtons(ctx context.Context, eventID uint) ([]ButtonEntry, error) {
	key := cache.EventButtonsKey(eventID)

	var list ButtonList
	found, err := s.cache.Get(ctx, key, &list)
	if err != nil {
		return nil, err
	}
	if found {
		return list.Buttons, nil
	}

	buttons, err := s.repo.ListButtons(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(buttons, func(i, j int) bool {
		return buttons[i].Number < buttons[j].Number
	})

	list = ButtonList{Buttons: make([]ButtonEntry, 0, len(buttons))}
	for _, button := range buttons {
		list.Buttons = append(list.Buttons, ButtonEntry{
			Name:    button.Name,
			Link:    button.Link,
			Tooltip: button.Tooltip,
		})
	}
	if err := s.cache.Set(ctx, key, list, cache.DefaultTTL); err != nil {
		return nil, err
	}
	return list.Buttons, nil
}

// ResetEventButtons invalidates the button list; hooked to button writes.
func (s *ButtonCacheService) ResetEventButtons(ctx context.Context, eventID uint) error {
	return s.cache.Delete(ctx, cache.EventButtonsKey(eventID))
}

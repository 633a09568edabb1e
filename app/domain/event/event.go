package event

import (
	"context"
	"time"
)

// Event is an event definition inside an association. Campaign children point
// to their parent event and inherit parent-scoped writing elements.
type Event struct {
	ID        uint
	AssocID   uint
	Slug      string
	Name      string
	ParentID  uint // zero when the event is not a campaign child
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Text is a localized event text, same fallback layout as association texts.
type Text struct {
	ID       uint
	EventID  uint
	Typ      string
	Language string
	Default  bool
	Text     string
}

// Button is an organizer-defined navigation button shown on the event page.
type Button struct {
	ID      uint
	EventID uint
	Name    string
	Link    string
	Tooltip string
	Number  int
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*Event, error)
	FindBySlug(ctx context.Context, assocID uint, slug string) (*Event, error)
	ListByAssociation(ctx context.Context, assocID uint) ([]*Event, error)
	ListChildren(ctx context.Context, parentID uint) ([]*Event, error)
	ListButtons(ctx context.Context, eventID uint) ([]*Button, error)
	FindText(ctx context.Context, eventID uint, typ, language string) (*Text, error)
	FindDefaultText(ctx context.Context, eventID uint, typ string) (*Text, error)
}

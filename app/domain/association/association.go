package association

import (
	"context"
	"time"
)

// Association is the top-level tenant owning events and configuration.
type Association struct {
	ID        uint
	Slug      string
	Name      string
	Skin      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Config is a single name/value configuration row of an association.
type Config struct {
	ID       uint
	AssocID  uint
	Name     string
	Value    string
}

// Text is a localized association text (signup mail, home page, legal notice).
// Exactly one row per (assoc, type) is flagged Default and serves as the
// fallback when no row exists for the requested language.
type Text struct {
	ID       uint
	AssocID  uint
	Typ      string
	Language string
	Default  bool
	Text     string
}

type AssociationFilter struct {
	Slug *string
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*Association, error)
	FindBySlug(ctx context.Context, slug string) (*Association, error)
	ListConfigs(ctx context.Context, assocID uint) ([]*Config, error)
	FindText(ctx context.Context, assocID uint, typ, language string) (*Text, error)
	FindDefaultText(ctx context.Context, assocID uint, typ string) (*Text, error)
}

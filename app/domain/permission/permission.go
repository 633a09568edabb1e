package permission

import "context"

// Scope separates association-level permissions from event-level ones.
type Scope string

const (
	ScopeAssoc Scope = "assoc"
	ScopeEvent Scope = "event"
)

// Permission is a named management capability, gated by the feature that
// makes it relevant.
type Permission struct {
	ID          uint
	Slug        string
	Name        string
	Scope       Scope
	FeatureID   uint
	FeatureSlug string
	Tutorial    string
	Hidden      bool
	Number      int
}

type Repository interface {
	ListByScope(ctx context.Context, scope Scope) ([]*Permission, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*Permission, error)
}

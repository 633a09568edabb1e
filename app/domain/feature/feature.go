package feature

import "context"

// Feature is a named, togglable capability unit. Overall features belong to
// the association scope; the rest are toggled per event.
type Feature struct {
	ID          uint
	Slug        string
	Name        string
	Module      string
	Overall     bool
	Placeholder bool
}

// Set maps enabled feature slugs to feature ids.
type Set map[string]uint

// Enabled reports whether a slug is part of the set.
func (s Set) Enabled(slug string) bool {
	_, ok := s[slug]
	return ok
}

type Repository interface {
	ListByAssociation(ctx context.Context, assocID uint) ([]*Feature, error)
	ListByEvent(ctx context.Context, eventID uint) ([]*Feature, error)
}

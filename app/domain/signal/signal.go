package signal

import (
	"context"
	"sync"

	"larpmanager.app/larp-gateway/app/domain/writing"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// Op is what the persistence layer did to the entity.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// EntityKind names the committed entity type; handlers register per kind.
type EntityKind string

const (
	KindAssociation     EntityKind = "association"
	KindAssociationText EntityKind = "association_text"
	KindConfig          EntityKind = "config"
	KindEvent           EntityKind = "event"
	KindEventText       EntityKind = "event_text"
	KindEventButton     EntityKind = "event_button"
	KindRun             EntityKind = "run"
	KindFeatureToggle   EntityKind = "feature_toggle"
	KindPermission      EntityKind = "permission"
	KindWritingElement  EntityKind = "writing_element"
)

// Commit describes one committed entity change. The persistence layer fills
// in whatever identity it has; handlers read only the fields relevant to
// their kind. Commits also travel over NATS, so the fields carry json tags.
type Commit struct {
	Kind EntityKind `json:"kind"`
	Op   Op         `json:"op"`
	ID   uint       `json:"id,omitempty"`

	AssocID   uint   `json:"assoc_id,omitempty"`
	AssocSlug string `json:"assoc_slug,omitempty"`
	EventID   uint   `json:"event_id,omitempty"`
	EventSlug string `json:"event_slug,omitempty"`
	RunID     uint   `json:"run_id,omitempty"`

	// Text commits.
	TextTyp      string `json:"text_typ,omitempty"`
	TextLanguage string `json:"text_language,omitempty"`
	TextDefault  bool   `json:"text_default,omitempty"`

	// Writing-element commits.
	WritingKind writing.Kind `json:"writing_kind,omitempty"`
}

// Handler reacts to one committed change. Handlers are named so that a
// failure can be logged against the responsible hook.
type Handler struct {
	Name string
	Fn   func(ctx context.Context, c Commit) error
}

// Dispatcher routes entity-committed events to the invalidation handlers
// registered for the entity's kind. Dispatch is best-effort: a failing
// handler is logged and the remaining handlers still run, so one broken hook
// cannot block the others' invalidations.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EntityKind][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EntityKind][]Handler)}
}

// Register appends a handler for a kind; registration order is dispatch order.
func (d *Dispatcher) Register(kind EntityKind, name string, fn func(ctx context.Context, c Commit) error) {
	d.mu.Lock()
	d.handlers[kind] = append(d.handlers[kind], Handler{Name: name, Fn: fn})
	d.mu.Unlock()
}

// Dispatch runs every handler registered for the commit's kind and returns
// the first error after all of them have run.
func (d *Dispatcher) Dispatch(ctx context.Context, c Commit) error {
	d.mu.RLock()
	handlers := d.handlers[c.Kind]
	d.mu.RUnlock()

	var firstErr error
	for _, h := range handlers {
		if err := h.Fn(ctx, c); err != nil {
			logger.GetLogger().Errorf("entity committed: handler %s for %s/%s id %d: %v", h.Name, c.Kind, c.Op, c.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

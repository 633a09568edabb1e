package tasks

import (
	"context"
	"encoding/json"
)

// Task names understood by the worker. Payloads are id lists so that
// duplicate delivery is harmless: every handler re-checks the dirty flags
// before doing any work.
const (
	TaskRefreshRels       = "refresh_rels"
	TaskRefreshEventCache = "refresh_event_cache"
	TaskRefreshRunLinks   = "refresh_run_links"
)

// Task is a fire-and-forget unit of background work. Delivery is
// at-least-once; handlers must be idempotent.
type Task struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// RefreshRelsPayload asks the worker to recompute dirty relationship items of
// one section of an event aggregate.
type RefreshRelsPayload struct {
	EventID uint   `json:"event_id"`
	Section string `json:"section"`
	ItemIDs []uint `json:"item_ids"`
}

// RunCharacterPair identifies one character inside one run.
type RunCharacterPair struct {
	RunID       uint `json:"run_id"`
	CharacterID uint `json:"character_id"`
}

// RefreshEventCachePayload asks the worker to drop the per-run character
// entries that depend on changed relationship rows.
type RefreshEventCachePayload struct {
	Pairs []RunCharacterPair `json:"pairs"`
}

// RefreshRunLinksPayload asks the worker to recompute dirty navigation links
// of a run.
type RefreshRunLinksPayload struct {
	RunID   uint   `json:"run_id"`
	Section string `json:"section"`
	ItemIDs []uint `json:"item_ids"`
}

// NewTask marshals a payload into a Task.
func NewTask(name string, payload any) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, err
	}
	return Task{Name: name, Payload: raw}, nil
}

// Queue is the fire-and-forget background job port. Enqueue never reports
// handler results back to the caller.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
}

// Handler processes one delivered task.
type Handler func(ctx context.Context, payload json.RawMessage) error

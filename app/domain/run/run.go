package run

import (
	"context"
	"time"
)

// Run is one concrete scheduled occurrence of an event.
type Run struct {
	ID      uint
	EventID uint
	Number  int
	Start   time.Time
	End     time.Time
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*Run, error)
	FindByEventAndNumber(ctx context.Context, eventID uint, number int) (*Run, error)
	ListByEvent(ctx context.Context, eventID uint) ([]*Run, error)
}

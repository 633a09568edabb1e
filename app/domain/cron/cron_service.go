package cron

import (
	"context"

	"github.com/mileusna/crontab"
	"larpmanager.app/larp-gateway/app/domain/dirty"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/utils/logger"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

// CronService periodically sweeps events whose relationship aggregate has a
// pending dirty hint and re-runs lazy resolution on them. Dirty items are
// normally resolved by the next read or the queued background job; the sweep
// is the safety net when the queue was down and no read came.
type CronService struct {
	events EventLister
	dirty  *dirty.Service
	rels   *relationship.Service
}

// EventLister is the slice of the event repository the sweep needs.
type EventLister interface {
	ListAll(ctx context.Context) ([]*event.Event, error)
}

func NewService(eventLister EventLister, dirtyService *dirty.Service, rels *relationship.Service) *CronService {
	return &CronService{
		events: eventLister,
		dirty:  dirtyService,
		rels:   rels,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	ctab.AddJob("*/10 * * * *", func() {
		cs.sweepDirtyRels(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

func (cs *CronService) sweepDirtyRels(ctx context.Context) {
	if cs == nil || cs.events == nil {
		return
	}

	all, err := cs.events.ListAll(ctx)
	if err != nil {
		logger.GetLogger().Warnf("cron service: listing events for dirty sweep: %v", err)
		return
	}
	swept := 0
	for _, ev := range all {
		hasDirty, err := cs.dirty.HasDirty(ctx, relationship.Namespace, ev.ID)
		if err != nil {
			logger.GetLogger().Warnf("cron service: dirty hint for event %d: %v", ev.ID, err)
			continue
		}
		if !hasDirty {
			continue
		}
		if _, err := cs.rels.GetEventRels(ctx, ev); err != nil {
			logger.GetLogger().Warnf("cron service: resolving rels for event %d: %v", ev.ID, err)
			continue
		}
		swept++
	}
	if swept > 0 {
		logger.GetLogger().Infof("cron service: resolved stale relationship aggregates for %d events", swept)
	}
}

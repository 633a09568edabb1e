package domain

import (
	"github.com/google/wire"
	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/domain/auth"
	"larpmanager.app/larp-gateway/app/domain/cron"
	"larpmanager.app/larp-gateway/app/domain/dirty"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/feature"
	"larpmanager.app/larp-gateway/app/domain/navigation"
	"larpmanager.app/larp-gateway/app/domain/permission"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/domain/reset"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/domain/signal"
	"larpmanager.app/larp-gateway/app/domain/writing"
)

var ServiceProvider = wire.NewSet(
	auth.NewAuthService,
	dirty.NewService,
	feature.NewCacheService,
	permission.NewCacheService,
	association.NewCacheService,
	association.NewTextCacheService,
	event.NewTextCacheService,
	event.NewButtonCacheService,
	run.NewCacheService,
	writing.NewFieldCacheService,
	relationship.NewService,
	navigation.NewService,
	reset.NewService,
	signal.NewDispatcher,
	signal.NewHooks,
	cron.NewService,
)

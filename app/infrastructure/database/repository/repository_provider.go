package repository

import (
	"github.com/google/wire"
	"larpmanager.app/larp-gateway/app/domain/cron"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository/associationrepo"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository/eventrepo"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository/featurerepo"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository/permissionrepo"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository/runrepo"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository/writingrepo"
)

var RepositoryProvider = wire.NewSet(
	associationrepo.NewAssociationGormRepository,
	eventrepo.NewEventGormRepository,
	wire.Bind(new(event.Repository), new(*eventrepo.EventGormRepository)),
	wire.Bind(new(cron.EventLister), new(*eventrepo.EventGormRepository)),
	featurerepo.NewFeatureGormRepository,
	permissionrepo.NewPermissionGormRepository,
	runrepo.NewRunGormRepository,
	writingrepo.NewWritingGormRepository,
)

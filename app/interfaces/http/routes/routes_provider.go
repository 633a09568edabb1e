package routes

import (
	"github.com/google/wire"
	v1 "larpmanager.app/larp-gateway/app/interfaces/http/routes/v1"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/admin"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/association"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/events"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/runs"
)

var RouteProvider = wire.NewSet(
	association.NewAssociationRoute,
	events.NewEventRoute,
	runs.NewRunRoute,
	admin.NewCacheRoute,
	v1.NewV1Route,
)

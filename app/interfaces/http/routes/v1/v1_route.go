package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/association"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/events"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/runs"
	"larpmanager.app/larp-gateway/config"
)

type V1Route struct {
	associationRoute *association.AssociationRoute
	eventRoute       *events.EventRoute
	runRoute         *runs.RunRoute
}

func NewV1Route(
	associationRoute *association.AssociationRoute,
	eventRoute *events.EventRoute,
	runRoute *runs.RunRoute,
) *V1Route {
	return &V1Route{
		associationRoute,
		eventRoute,
		runRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.associationRoute.RegisterRouter(v1Router)
	v1Route.eventRoute.RegisterRouter(v1Router)
	v1Route.runRoute.RegisterRouter(v1Router)
}

func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}

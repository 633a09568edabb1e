package runs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/navigation"
	"larpmanager.app/larp-gateway/app/domain/run"
	"larpmanager.app/larp-gateway/app/interfaces/http/responses"
)

// RunRoute serves the navigation aggregate of a run.
type RunRoute struct {
	runs   run.Repository
	events event.Repository
	assocs association.Repository
	links  *navigation.Service
}

func NewRunRoute(runRepo run.Repository, eventRepo event.Repository, assocRepo association.Repository, links *navigation.Service) *RunRoute {
	return &RunRoute{runs: runRepo, events: eventRepo, assocs: assocRepo, links: links}
}

func (route *RunRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/runs/:id/links", route.GetLinks)
}

func (route *RunRoute) GetLinks(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	id, err := strconv.ParseUint(reqCtx.Param("id"), 10, 64)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "7e3b0d52-8a49-4c16-b7f0-d92c5a14e683",
			Error: "invalid run id",
		})
		return
	}

	r, err := route.runs.FindByID(ctx, uint(id))
	if err != nil || r == nil {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "2c9f6e18-b05d-47a3-8e42-f71a3d80c5b6",
			Error: "run not found",
		})
		return
	}
	ev, err := route.events.FindByID(ctx, r.EventID)
	if err != nil || ev == nil {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "f04a8c26-3d71-4e59-b8a0-65c2d91e0f34",
			Error: "event not found",
		})
		return
	}
	assoc, err := route.assocs.FindByID(ctx, ev.AssocID)
	if err != nil || assoc == nil {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "5b7d2f90-1a6e-4c83-9d05-e48f0a36c1d7",
			Error: "association not found",
		})
		return
	}

	links, err := route.links.GetRunLinks(ctx, ev, r, assoc.Slug)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "c1e5a708-4f2b-4d96-8b3a-07d9e62f15c8",
			Error: "failed to load links",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*navigation.LinksEntry]{
		Status: responses.StatusOk,
		Result: links,
	})
}

package events

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"larpmanager.app/larp-gateway/app/domain/event"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/interfaces/http/responses"
)

// EventRoute serves the relationship aggregate and button list of an event.
type EventRoute struct {
	events  event.Repository
	rels    *relationship.Service
	buttons *event.ButtonCacheService
}

func NewEventRoute(eventRepo event.Repository, rels *relationship.Service, buttons *event.ButtonCacheService) *EventRoute {
	return &EventRoute{events: eventRepo, rels: rels, buttons: buttons}
}

func (route *EventRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/events")
	group.GET("/:id/relationships", route.GetRelationships)
	group.GET("/:id/buttons", route.GetButtons)
}

func (route *EventRoute) loadEvent(reqCtx *gin.Context) *event.Event {
	id, err := strconv.ParseUint(reqCtx.Param("id"), 10, 64)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "b2e7c410-9a5d-4f82-8c63-d1f0a9b45e27",
			Error: "invalid event id",
		})
		return nil
	}
	ev, err := route.events.FindByID(reqCtx.Request.Context(), uint(id))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "4a1c8d9e-2b5f-4e07-a6c3-85f9d0b12e74",
			Error: "failed to load event",
		})
		return nil
	}
	if ev == nil {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "6d0f3b82-1e9c-45a7-b4d8-c27a50e91f36",
			Error: "event not found",
		})
		return nil
	}
	return ev
}

func (route *EventRoute) GetRelationships(reqCtx *gin.Context) {
	ev := route.loadEvent(reqCtx)
	if ev == nil {
		return
	}
	rels, err := route.rels.GetEventRels(reqCtx.Request.Context(), ev)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "9c4e2a70-6f1d-4b58-83a9-e05d7c21f483",
			Error: "failed to load relationships",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*relationship.EventRels]{
		Status: responses.StatusOk,
		Result: rels,
	})
}

func (route *EventRoute) GetButtons(reqCtx *gin.Context) {
	ev := route.loadEvent(reqCtx)
	if ev == nil {
		return
	}
	buttons, err := route.buttons.GetEventButtons(reqCtx.Request.Context(), ev.ID)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "d58a1f93-0c2e-4b76-9a41-3e8f6d05c2b9",
			Error: "failed to load buttons",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]event.ButtonEntry]{
		Status: responses.StatusOk,
		Result: buttons,
	})
}

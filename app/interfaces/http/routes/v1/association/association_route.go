package association

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/interfaces/http/responses"
)

// AssociationRoute serves the cached association configuration and texts.
type AssociationRoute struct {
	assocs *association.CacheService
	texts  *association.TextCacheService
}

func NewAssociationRoute(assocs *association.CacheService, texts *association.TextCacheService) *AssociationRoute {
	return &AssociationRoute{assocs: assocs, texts: texts}
}

func (route *AssociationRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/associations")
	group.GET("/:slug", route.GetAssociation)
	group.GET("/:slug/text", route.GetText)
}

func (route *AssociationRoute) GetAssociation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	entry, err := route.assocs.GetCacheAssoc(ctx, reqCtx.Param("slug"))
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a4fd7f62-8f1e-4b8f-b9e1-32c4a0d51b77",
			Error: "failed to load association",
		})
		return
	}
	if !entry.Found() {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "e7a9b6c0-5d4f-4f3a-9af2-c81d20e94f11",
			Error: "association not found",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*association.CacheEntry]{
		Status: responses.StatusOk,
		Result: entry,
	})
}

type textResult struct {
	Typ      string `json:"typ"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

func (route *AssociationRoute) GetText(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	entry, err := route.assocs.GetCacheAssoc(ctx, reqCtx.Param("slug"))
	if err != nil || !entry.Found() {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "1f2d9c3e-6b7a-48c1-9e55-04a8f3b6d2c9",
			Error: "association not found",
		})
		return
	}

	typ := reqCtx.Query("typ")
	lang := reqCtx.Query("lang")
	if typ == "" {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8c5b1a0f-3e2d-4d6c-8f91-b7a0c4e52d38",
			Error: "typ is required",
		})
		return
	}

	text, err := route.texts.GetText(ctx, entry.ID, typ, lang)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "0d9e4f21-7c6b-4a38-b5d2-91f3a8c07e64",
			Error: "failed to load text",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[textResult]{
		Status: responses.StatusOk,
		Result: textResult{Typ: typ, Language: lang, Text: text},
	})
}

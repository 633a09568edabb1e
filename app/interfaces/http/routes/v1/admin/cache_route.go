package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"larpmanager.app/larp-gateway/app/domain/association"
	"larpmanager.app/larp-gateway/app/domain/auth"
	"larpmanager.app/larp-gateway/app/domain/reset"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/interfaces/http/responses"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

// CacheRoute exposes administrative cache operations: a full flush and the
// per-association targeted reset.
type CacheRoute struct {
	authService  *auth.AuthService
	cacheService cache.CacheService
	assocs       association.Repository
	resets       *reset.Service
}

func NewCacheRoute(authService *auth.AuthService, cacheService cache.CacheService, assocs association.Repository, resets *reset.Service) *CacheRoute {
	return &CacheRoute{
		authService:  authService,
		cacheService: cacheService,
		assocs:       assocs,
		resets:       resets,
	}
}

// RegisterRouter wires the administrative cache endpoints.
func (route *CacheRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin", route.authService.AdminAuthMiddleware())
	adminRouter.POST("/cache/invalidate", route.InvalidateCache)
	adminRouter.POST("/cache/associations/:slug/reset", route.ResetAssociation)
}

// CacheInvalidateResponse represents the result of a cache invalidation request.
type CacheInvalidateResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (route *CacheRoute) InvalidateCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := route.cacheService.FlushAll(ctx); err != nil {
		logger.GetLogger().Errorf("admin cache: failed to flush cache: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b0c4f1c8-2a3b-4ad4-8b1d-7a2124d7c7b1",
			Error: "failed to invalidate cache",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "cache invalidated",
	})
}

func (route *CacheRoute) ResetAssociation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	slug := reqCtx.Param("slug")

	assoc, err := route.assocs.FindBySlug(ctx, slug)
	if err != nil {
		logger.GetLogger().Errorf("admin cache: looking up association %q: %v", slug, err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "47c0a9d5-8e2f-4b13-a6d0-92e5f1c73b08",
			Error: "failed to load association",
		})
		return
	}
	if assoc == nil {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "d93b5e07-2c48-4f6a-b105-8a7e0c9d42f1",
			Error: "association not found",
		})
		return
	}

	if err := route.resets.ResetAllAssociation(ctx, assoc.ID, assoc.Slug); err != nil {
		logger.GetLogger().Errorf("admin cache: resetting association %q: %v", slug, err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a83d6f12-905c-4e7b-8d24-f16c0b59e3a7",
			Error: "association reset incomplete",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: "association caches reset",
	})
}

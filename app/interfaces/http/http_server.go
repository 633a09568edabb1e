package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"larpmanager.app/larp-gateway/app/interfaces/http/middleware"
	v1 "larpmanager.app/larp-gateway/app/interfaces/http/routes/v1"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes/v1/admin"
	"larpmanager.app/larp-gateway/app/utils/logger"
)

type HttpServer struct {
	engine     *gin.Engine
	v1Route    *v1.V1Route
	cacheRoute *admin.CacheRoute
}

func NewHttpServer(v1Route *v1.V1Route, cacheRoute *admin.CacheRoute) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:     gin.New(),
		v1Route:    v1Route,
		cacheRoute: cacheRoute,
	}
	server.engine.Use(middleware.CORS())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.GET("/health-check", func(c *gin.Context) {
		c.JSON(200, "ok")
	})
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := 8080
	root := httpServer.engine.Group("/")
	httpServer.v1Route.RegisterRouter(root)
	httpServer.cacheRoute.RegisterRouter(root)
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}

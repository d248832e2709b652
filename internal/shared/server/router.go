package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-optimizer/internal/services/health"
	"job-optimizer/internal/shared/apperr"
	"job-optimizer/internal/shared/config"
	"job-optimizer/internal/shared/metrics"
	"job-optimizer/internal/shared/server/middleware"
	"job-optimizer/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every endpoint handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps are the handlers and shared services mounted by NewRouter.
type RouterDeps struct {
	Config   config.Config
	Health   *health.Service
	Metrics  *metrics.Registry
	Handlers []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = deps.Config.MaxUploadSize

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	if deps.Health != nil {
		r.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, deps.Health.Root())
		})
		r.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, deps.Health.Status())
		})
		r.GET("/info", func(c *gin.Context) {
			c.JSON(http.StatusOK, deps.Health.Info())
		})
	}
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}
	if deps.Config.OutputDir != "" {
		r.Static("/outputs", deps.Config.OutputDir)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, apperr.KindNotFound, "Not Found")
	})

	api := r.Group("/api")
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}
	return r
}

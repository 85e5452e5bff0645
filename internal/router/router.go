package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/rehabfolio/portfolio-api/docs"
	"github.com/rehabfolio/portfolio-api/internal/config"
	"github.com/rehabfolio/portfolio-api/internal/middleware"
	"github.com/rehabfolio/portfolio-api/internal/modules/handler"
	"github.com/rehabfolio/portfolio-api/internal/modules/serializer"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	Telemetry      telemetry.Client
	Redis          *redis.Client // nil disables rate limiting
	Principals     middleware.PrincipalSource
	ProjectHandler *handler.ProjectHandler
	ImageHandler   *handler.ImageHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		d.Log.Sugar().Errorw("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		serializer.Abort(c, http.StatusInternalServerError, serializer.ServerErr(""))
	}))
	r.Use(middleware.RequestID())

	if telemetry.Enabled(d.Config) {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	if d.Config.RateLimit.Enabled && d.Redis != nil {
		r.Use(middleware.RateLimit(
			d.Redis,
			d.Config.RateLimit.RequestsPerWindow,
			time.Duration(d.Config.RateLimit.WindowSec)*time.Second,
			d.Log,
		))
	}

	// identity and the admin gate run on every path, so protection does not
	// depend on which route matched
	r.Use(middleware.Authenticate(d.Principals, d.Log))
	r.Use(middleware.Authorize(middleware.AdminRoutes, d.Config.Auth.AdminRole, d.Telemetry, d.Log))

	r.NoRoute(func(c *gin.Context) {
		serializer.Abort(c, http.StatusNotFound, serializer.NotFound(""))
	})

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Health()) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", d.ProjectHandler.ListPublic)
			projects.GET("/:slug", d.ProjectHandler.GetBySlug)
		}

		api.GET("/dashboard", d.ProjectHandler.Dashboard)

		manage := api.Group("/manage")
		{
			mp := manage.Group("/projects")
			{
				mp.GET("", d.ProjectHandler.ListManaged)
				mp.POST("", d.ProjectHandler.Create)
				mp.GET("/:id", d.ProjectHandler.GetByID)
				mp.PUT("/:id", d.ProjectHandler.Update)
				mp.DELETE("/:id", d.ProjectHandler.Delete)

				mp.POST("/:id/images", d.ProjectHandler.AttachImage)
				mp.DELETE("/:id/images/:imageId", d.ProjectHandler.DetachImage)
			}

			manage.POST("/images/sas-token", d.ImageHandler.IssueUploadToken)
		}
	}
	return r
}

package main

//	@title			Portfolio API
//	@version		1.0
//	@description	Projects, images and dashboard for the rehab portfolio site.
//	@schemes		http https
//	@BasePath		/api

//	@securityDefinitions.apikey	ClientPrincipal
//	@in							header
//	@name						X-MS-CLIENT-PRINCIPAL
//	@description				Base64 encoded JSON client principal injected by the trusted edge

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rehabfolio/portfolio-api/internal/bootstrap"
	"github.com/rehabfolio/portfolio-api/internal/config"
	"github.com/rehabfolio/portfolio-api/internal/infra/cache"
	dbpkg "github.com/rehabfolio/portfolio-api/internal/infra/db"
	"github.com/rehabfolio/portfolio-api/internal/middleware"
	"github.com/rehabfolio/portfolio-api/internal/modules/handler"
	"github.com/rehabfolio/portfolio-api/internal/router"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	// Setup OpenTelemetry tracing and metrics (using configuration system)
	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown telemetry", "err", err)
			}
		}()

		// Register GORM OpenTelemetry plugin after tracer provider is set
		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin, continuing without database tracing", "err", err)
		}

		// Register Redis OpenTelemetry plugin after tracer provider is set
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin, continuing without Redis tracing", "err", err)
		}
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:         cfg,
		Log:            log,
		Telemetry:      do.MustInvoke[telemetry.Client](inj),
		Redis:          rdb,
		Principals:     do.MustInvoke[middleware.PrincipalSource](inj),
		ProjectHandler: do.MustInvoke[*handler.ProjectHandler](inj),
		ImageHandler:   do.MustInvoke[*handler.ImageHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	if conn := do.MustInvoke[*amqp.Connection](inj); conn != nil {
		_ = conn.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Sugar().Info("server exited")
}

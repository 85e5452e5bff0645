package bootstrap

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rehabfolio/portfolio-api/internal/config"
	"github.com/rehabfolio/portfolio-api/internal/infra/blob"
	"github.com/rehabfolio/portfolio-api/internal/infra/cache"
	"github.com/rehabfolio/portfolio-api/internal/infra/db"
	"github.com/rehabfolio/portfolio-api/internal/infra/logger"
	"github.com/rehabfolio/portfolio-api/internal/infra/queue"
	"github.com/rehabfolio/portfolio-api/internal/middleware"
	"github.com/rehabfolio/portfolio-api/internal/modules/handler"
	"github.com/rehabfolio/portfolio-api/internal/modules/model"
	"github.com/rehabfolio/portfolio-api/internal/modules/repo"
	"github.com/rehabfolio/portfolio-api/internal/modules/service"
	"github.com/rehabfolio/portfolio-api/internal/telemetry"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// telemetry
	do.Provide(inj, func(i *do.Injector) (telemetry.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !telemetry.Enabled(cfg) {
			return telemetry.Noop{}, nil
		}
		return telemetry.NewOtelClient(), nil
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(&model.Project{}); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis, nil when not configured
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// RabbitMQ connection, nil when not configured
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	do.Provide(inj, func(i *do.Injector) (queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		if conn == nil {
			log.Sugar().Infow("rabbitmq not configured, project events are dropped")
			return queue.Noop{}, nil
		}
		return queue.NewPublisher(conn, cfg.RabbitMQ.Queue, log)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})
	// get presign expire duration
	do.Provide(inj, func(i *do.Injector) (func() time.Duration, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() time.Duration {
			if cfg.S3.PresignExpireSec <= 0 {
				return 15 * time.Minute
			}
			return time.Duration(cfg.S3.PresignExpireSec) * time.Second
		}, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ImageService, error) {
		expire := do.MustInvoke[func() time.Duration](i)
		return service.NewImageService(
			do.MustInvoke[*blob.S3Deps](i),
			expire(),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[service.ImageService](i),
			do.MustInvoke[queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[telemetry.Client](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ImageHandler, error) {
		return handler.NewImageHandler(
			do.MustInvoke[service.ImageService](i),
			do.MustInvoke[telemetry.Client](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// auth
	do.Provide(inj, func(i *do.Injector) (middleware.PrincipalSource, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return middleware.HeaderPrincipalSource{Header: cfg.Auth.PrincipalHeader}, nil
	})

	return inj
}

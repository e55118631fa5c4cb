package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/propfinder/listing-api/internal/router"
	"github.com/propfinder/listing-api/internal/service"
	"github.com/propfinder/listing-api/internal/store"
	"github.com/propfinder/listing-api/pkg/config"
	"github.com/propfinder/listing-api/pkg/kv"
	"github.com/propfinder/listing-api/pkg/logger"
	"github.com/propfinder/listing-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var backend kv.Store
	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := kv.NewRedisClient(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer client.Close() //nolint:errcheck
		backend = kv.NewRedisStore(client)
	case config.StorageBackendFile:
		fileStore, err := kv.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to open data directory", "error", err)
		}
		backend = fileStore
	default:
		logr.Sugar().Fatalw("unknown storage backend", "backend", cfg.Storage.Backend)
	}

	properties := store.NewPropertyCollection(backend, logr)
	heroes := store.NewHeroCollection(backend, logr)

	ctx := context.Background()
	if err := properties.Load(ctx); err != nil {
		logr.Sugar().Fatalw("failed to load properties", "error", err)
	}
	if err := heroes.Load(ctx); err != nil {
		logr.Sugar().Fatalw("failed to load hero images", "error", err)
	}

	validate := validator.New()
	authService := service.NewAuthService(backend, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	listingService := service.NewListingService(properties, validate, logr)
	heroService := service.NewHeroService(heroes, validate, logr)
	metricsService := service.NewMetricsService()

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to open export storage", "error", err)
		}
		exportService = service.NewExportService(properties, exportStorage, logr)
	}

	r := router.New(router.Deps{
		Config:   cfg,
		Logger:   logr,
		Auth:     authService,
		Listings: listingService,
		Heroes:   heroService,
		Exports:  exportService,
		Metrics:  metricsService,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "backend", cfg.Storage.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

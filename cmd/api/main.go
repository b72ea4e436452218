// Command api runs the camper rentals marketplace backend.
//
// @title        Roamstead Camper Rentals API
// @version      1.0
// @description  Session/profile resolution and listing catalog for the camper rental marketplace.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/roamstead/camper-rentals/internal/api"
	"github.com/roamstead/camper-rentals/internal/core/service"
	"github.com/roamstead/camper-rentals/internal/infrastructure/config"
	mongodb "github.com/roamstead/camper-rentals/internal/infrastructure/db/mongo"
	redisdb "github.com/roamstead/camper-rentals/internal/infrastructure/db/redis"
	"github.com/roamstead/camper-rentals/internal/infrastructure/queue"
	"github.com/roamstead/camper-rentals/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	profileRepo := mongodb.NewProfileRepository(db)
	listingRepo := mongodb.NewListingRepository(db)
	credentialRepo := mongodb.NewCredentialRepository(db)
	hintStore := redisdb.NewRoleHintStore(rdb, cfg.Resolver.RoleHintTTL)

	if err := listingRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("listing index creation failed")
	}
	if err := credentialRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("credential index creation failed")
	}

	// --- Services ---
	registry := service.NewResolverRegistry(profileRepo, hintStore, cfg.Resolver.LookupTimeout, log)
	catalog := service.NewCatalogService(listingRepo, log)
	identity := service.NewIdentityService(credentialRepo, cfg.JWTSecret, 24*time.Hour)

	if err := catalog.Load(ctx); err != nil {
		// Searches lazily retry the load; starting degraded beats not starting.
		log.Warn().Err(err).Msg("initial catalog load failed")
	}

	dispatcher := queue.NewDispatcher(cfg.Resolver.EventWorkers, registry, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Registry:   registry,
		Catalog:    catalog,
		Identity:   identity,
		HintStore:  hintStore,
		Dispatcher: dispatcher,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("camper rentals api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

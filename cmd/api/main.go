package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/server"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("environment", string(cfg.Environment)).Msg("configuration loaded")

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// Redis and S3 are optional: without them recipes are read straight from
	// the database and photo uploads fail with a server error.
	var redisClient *redis.Client
	var recipeCache cache.RecipeCache
	if cfg.RedisURL != "" || cfg.RedisHost != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, recipe cache disabled")
		} else if cfg.RecipeCacheTTL > 0 {
			recipeCache = cache.NewRedisRecipeCache(redisClient, cfg.RecipeCacheTTL)
		}
	}

	var blobs storage.BlobStore
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to configure S3")
		}
		blobs = storage.NewBreakerStore(
			storage.NewS3Store(s3cfg.Client, s3cfg.BucketName, s3cfg.PublicBaseURL),
			storage.BreakerSettings{},
		)
	} else {
		logging.Warn().Msg("S3_BUCKET_NAME not set, photo uploads disabled")
	}

	srv := server.New(cfg, server.Dependencies{
		DB:    db,
		Redis: redisClient,
		Blobs: blobs,
		Services: api.Services{
			Auth:      service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL),
			Profiles:  service.NewProfileService(db, blobs),
			Recipes:   service.NewRecipeService(db, blobs, recipeCache),
			Reviews:   service.NewReviewService(db, recipeCache),
			Favorites: service.NewFavoriteService(db),
		},
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown error")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logging.Info().Msg("server stopped")
}

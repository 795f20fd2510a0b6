package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtable/club-booking-backend/internal/app"
	"github.com/courtable/club-booking-backend/internal/config"
	"github.com/courtable/club-booking-backend/internal/db"
	"github.com/courtable/club-booking-backend/internal/pkg/cache"
	"github.com/courtable/club-booking-backend/internal/pkg/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(false)
		fallbackLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.IsProduction)

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer pool.Close()

	// Redis statistics cache is optional.
	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		statsCache, err = cache.New(ctx, cfg.RedisAddr, cfg.StatsCacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer statsCache.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set, statistics cache disabled")
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		DBPool:           pool,
		Cache:            statsCache,
		Log:              log,
		JWTSecret:        cfg.JWTSecret,
		JWTTTL:           cfg.JWTAccessTokenTTL,
		BcryptCost:       cfg.BcryptCost,
		DefaultOpenHour:  cfg.DefaultOpenHour,
		DefaultCloseHour: cfg.DefaultCloseHour,
		SlotGranularity:  cfg.SlotGranularity,
		FileStoragePath:  cfg.FileStoragePath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// Let in-flight statistics recomputations finish.
	container.StatsUpdater.Wait()

	log.Info().Msg("server exited gracefully")
}

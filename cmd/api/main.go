package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	"github.com/BruksfildServices01/court-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/court-scheduler/internal/db"
	"github.com/BruksfildServices01/court-scheduler/internal/events"
	"github.com/BruksfildServices01/court-scheduler/internal/logger"
	"github.com/BruksfildServices01/court-scheduler/internal/obs"
	"github.com/BruksfildServices01/court-scheduler/internal/routes"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

const serviceName = "court-scheduler"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.New(cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.AppEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init tracer")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// ------------------------------
	// cache de disponibilidade
	// ------------------------------
	var availability cache.Availability = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisAvailability(ctx, cfg.RedisURL, cfg.AvailabilityCacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, availability cache disabled")
		} else {
			defer redisCache.Close()
			availability = redisCache
		}
	}

	// ------------------------------
	// eventos de domínio
	// ------------------------------
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.AMQPURL, cfg.EventsExchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, domain events disabled")
		} else {
			publisher = rabbit
		}
	}

	dispatcher := audit.NewDispatcher(audit.New(db), publisher)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": cfg.SchedulingMode})
	})

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Cache:  availability,
		Audit:  dispatcher,
		Now:    timezone.ClubClock(cfg.ClubTimezone),
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register routes")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("mode", cfg.SchedulingMode).
			Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	dispatcher.Close()

	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("publisher close")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}

	log.Info().Msg("server stopped")
}

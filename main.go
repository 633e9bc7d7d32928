// File: /main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tricycle-api/app"
	"tricycle-api/jobs"
	"tricycle-api/metrics"
	"tricycle-api/middleware"
	"tricycle-api/routes"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// main runs the four tricycle handlers behind a local HTTP gateway. In AWS
// each handler is its own Lambda binary under cmd/.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start tricycle api")
	}
	defer a.Close()

	cfg := a.Config
	logger := a.Log

	// Set Gin mode based on environment
	if cfg.IsLocal() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.NewManager()
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	go limiter.Run(ctx, 10*time.Minute)

	router := gin.New()
	router.Use(routes.SetupCORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(limiter))

	routes.SetupRoutes(router, a.Controller(m), a.DB, m, m.Handler())

	healthJob := jobs.NewDatabaseHealthJob(a.DB, m, logger, cfg.HealthCheckInterval, cfg.HealthCheckTimeout)
	healthJob.Start()
	defer healthJob.Stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting tricycle api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Porto7/dev-pixel/docs"
	"github.com/Porto7/dev-pixel/internal/capi"
	"github.com/Porto7/dev-pixel/internal/config"
	"github.com/Porto7/dev-pixel/internal/handler"
	"github.com/Porto7/dev-pixel/internal/logger"
	"github.com/Porto7/dev-pixel/internal/ratelimit"
	"github.com/Porto7/dev-pixel/internal/service"
	"github.com/Porto7/dev-pixel/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// @title Pixel Webhook API
// @version 1.0
// @description Webhook that forwards conversion events to the Facebook Conversions API
// @host localhost:3000
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting pixel webhook",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.Port),
		zap.String("pixel_id", cfg.Pixel.ID),
		zap.Bool("test_mode", cfg.Pixel.TestEventCode != ""))

	if cfg.Service.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.SwaggerHost

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Tracing, cfg.Service.Version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	limiter, err := newRateLimiter(ctx, cfg.RateLimit, log)
	if err != nil {
		log.Fatal("Failed to create rate limiter", zap.Error(err))
	}
	defer func(limiter ratelimit.RateLimiter) {
		if err := limiter.Close(); err != nil {
			log.Error("Failed to close rate limiter", zap.Error(err))
		}
	}(limiter)

	// Conversions API client, no retry and no timeout beyond the caller's context
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	capiClient := capi.NewClient(cfg.Pixel, httpClient, log)

	eventService := service.NewEventService(capiClient, log)

	h := handler.NewHandler(eventService, limiter, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Service.Port,
		Handler:           otelhttp.NewHandler(h, "pixel-webhook"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}

	log.Info("Pixel webhook stopped")
}

func newRateLimiter(ctx context.Context, cfg config.RateLimit, log *zap.Logger) (ratelimit.RateLimiter, error) {
	if !cfg.Enabled {
		log.Warn("Rate limiting disabled")
		return &ratelimit.NoOpRateLimiter{}, nil
	}

	switch cfg.Backend {
	case config.RateLimitBackendRedis:
		limiter, err := ratelimit.NewRedisRateLimiter(ctx, cfg.RedisURL, cfg.Requests, cfg.Window)
		if err != nil {
			return nil, err
		}
		log.Info("Rate limiting enabled",
			zap.String("backend", cfg.Backend),
			zap.Int("requests", cfg.Requests),
			zap.Duration("window", cfg.Window))
		return limiter, nil
	default:
		log.Info("Rate limiting enabled",
			zap.String("backend", config.RateLimitBackendMemory),
			zap.Int("requests", cfg.Requests),
			zap.Duration("window", cfg.Window))
		return ratelimit.NewMemoryRateLimiter(cfg.Requests, cfg.Window), nil
	}
}

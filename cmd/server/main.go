package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legal_cms_go/config"
	"legal_cms_go/db"
	"legal_cms_go/handlers"
	"legal_cms_go/logging"
	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"
	"legal_cms_go/services/jobs"
	"legal_cms_go/tracing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"
)

const serviceName = "legal-cms-api"

// multipartOverhead is added to the upload limit for form boundaries and fields
const multipartOverhead = 1024 * 1024

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Initialize database
	database, err := db.Initialize(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(models.All()...); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.SeedDemoData {
		seeded, err := services.SeedIfEmpty(database)
		if err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
		if seeded {
			logger.Info("demo data seeded", zap.String("password", services.DemoPassword))
		}
	}

	storage := services.InitializeStorage(cfg)

	mailer, err := services.NewMailer(cfg)
	if err != nil {
		logger.Warn("mail service disabled", zap.Error(err))
		mailer = nil
	}

	revocations, closeRevocations := revocationStore(cfg, logger)
	defer closeRevocations()
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, revocations)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	// Middleware
	e.Use(echomiddleware.RequestID())
	e.Use(otelecho.Middleware(serviceName))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dB", cfg.MaxUploadSize+multipartOverhead)))

	h := handlers.New(database, cfg, tokens, storage, mailer)
	handlers.RegisterRoutes(e, h, middleware.NewAuthRateLimiter())

	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	go jobs.RunHearingReminders(jobCtx, database, mailer, jobs.ReminderInterval)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	stopJobs()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("failed to flush traces", zap.Error(err))
	}
	logger.Info("server stopped")
}

// revocationStore uses Redis when REDIS_URL is set and falls back to an
// in-process cache when it is absent or unreachable
func revocationStore(cfg *config.Config, logger *zap.Logger) (services.RevocationStore, func()) {
	if cfg.RedisURL == "" {
		return services.NewMemoryRevocationStore(), func() {}
	}

	store, err := services.NewRedisRevocationStore(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory token revocation", zap.Error(err))
		return services.NewMemoryRevocationStore(), func() {}
	}

	logger.Info("token revocation backed by redis")
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}

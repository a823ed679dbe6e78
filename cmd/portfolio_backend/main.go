package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/brokers"
	"github.com/SscSPs/portfolio_tracker/internal/core/services"
	"github.com/SscSPs/portfolio_tracker/internal/handlers"
	"github.com/SscSPs/portfolio_tracker/internal/middleware"
	"github.com/SscSPs/portfolio_tracker/internal/platform/config"
	"github.com/SscSPs/portfolio_tracker/internal/platform/scheduler"
	"github.com/SscSPs/portfolio_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/portfolio_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Portfolio Tracker API
// @version 1.0
// @description Brokerage activity ingestion, holdings, cost basis and portfolio reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Error("Failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	enabled := cfg.EnabledBrokers
	if len(enabled) == 0 {
		enabled = brokers.KnownBrokers()
	}
	registry, err := brokers.NewRegistry(enabled)
	if err != nil {
		logger.Error("Failed to enable broker adapters", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Broker adapters enabled", slog.Any("brokers", registry.Names()))

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, registry)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var jobs *scheduler.Scheduler
	if cfg.PriceSyncEnabled {
		jobs = scheduler.New(cfg.PriceSyncTimezone, logger)
		err := jobs.Register(cfg.PriceSyncSchedule, scheduler.JobFunc{JobName: "price-sync", Fn: serviceContainer.Price.SyncAll})
		if err == nil {
			err = jobs.Start()
		}
		if err != nil {
			logger.Error("Failed to start price sync scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer jobs.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

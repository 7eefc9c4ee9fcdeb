package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spreadedge/api/routes"
	"spreadedge/internal/auth"
	"spreadedge/internal/copytrade"
	"spreadedge/internal/market"
	"spreadedge/internal/shared/config"
	"spreadedge/internal/shared/database"
	"spreadedge/internal/signals"
	"spreadedge/internal/token"
	"spreadedge/internal/users"
	"spreadedge/pkg/cache"
	"spreadedge/pkg/logger"
	"spreadedge/pkg/metrics"
	"spreadedge/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

//	@title			SpreadEdge API
//	@version		1.0.0
//	@description	Backend API for SpreadEdge Trading App

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Bearer access token
func main() {
	// Smart environment loading
	envErr := godotenv.Load()

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	appLogger := logger.NewWithOptions(logger.Options{
		Level: cfg.LogLevel,
		JSON:  !cfg.IsDevelopment(),
		File: logger.FileOptions{
			Path:       cfg.LogFile.Path,
			MaxSizeMB:  cfg.LogFile.MaxSizeMB,
			MaxBackups: cfg.LogFile.MaxBackups,
			MaxAgeDays: cfg.LogFile.MaxAgeDays,
			Compress:   cfg.LogFile.Compress,
		},
	})
	logger.SetDefault(appLogger)
	defer appLogger.Close()

	if envErr != nil {
		if cfg.IsProduction() || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", slog.Any("error", err))
		_ = appLogger.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *logger.Logger) error {
	tokens, err := token.NewService(token.Config{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessExpiresIn,
		RefreshTTL: cfg.JWT.RefreshExpiresIn,
	})
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// Initialize DB
	db, err := database.InitDB(startCtx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	deps, err := buildDependencies(startCtx, cfg, db, tokens, appLogger)
	if err != nil {
		return err
	}

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	switch {
	case !cfg.RateLimit.Enabled:
		appLogger.Info("Rate limiting disabled")
	case db.Redis == nil:
		appLogger.Warn("Rate limiting requires Redis, continuing without it")
	default:
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			WindowDuration:    cfg.RateLimit.WindowDuration,
			DefaultRequests:   cfg.RateLimit.DefaultRequests,
			AuthRequests:      cfg.RateLimit.AuthRequests,
			MarketRequests:    cfg.RateLimit.MarketRequests,
			SignalsRequests:   cfg.RateLimit.SignalsRequests,
			CopyTradeRequests: cfg.RateLimit.CopyTradeRequests,
			HealthRequests:    cfg.RateLimit.HealthRequests,
			WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	}

	appRouter := routes.NewRouter(cfg, deps)
	defer func() {
		if err := appRouter.Close(); err != nil {
			appLogger.Error("Error closing signal publisher", slog.Any("error", err))
		}
	}()

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        setupEngine(cfg, appRouter, rateLimiter, appLogger),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.String("market_provider", deps.Provider.Name()),
			slog.Bool("postgres", db.PostgreSQL != nil),
			slog.Bool("redis", db.Redis != nil),
			slog.Bool("kafka", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
	return nil
}

// buildDependencies picks Redis and Postgres backed stores when configured and
// process-local ones otherwise
func buildDependencies(ctx context.Context, cfg *config.Config, db *database.DB, tokens *token.Service, appLogger *logger.Logger) (routes.Dependencies, error) {
	deps := routes.Dependencies{
		DB:        db,
		Tokens:    tokens,
		Provider:  market.NewProviderFromConfig(cfg.Market, appLogger),
		Publisher: signals.NopPublisher{},
		Log:       appLogger,
	}

	if db.Redis != nil {
		deps.Cache = cache.NewService(db.Redis, appLogger)
		follows := copytrade.NewRedisFollowStore(db.Redis)
		if err := follows.PreloadScripts(ctx); err != nil {
			// Loaded on first use instead
			appLogger.Warn("Failed to preload Redis Lua scripts", slog.Any("error", err))
		}
		deps.Follows = follows
	} else {
		deps.Cache = cache.NewMemoryService(appLogger)
		deps.Follows = copytrade.NewMemoryFollowStore()
	}

	if db.PostgreSQL != nil {
		deps.Users = auth.NewRepository(db.PostgreSQL)
	} else {
		deps.Users = auth.NewMemoryRepository()
		if _, err := auth.EnsureUser(ctx, deps.Users, auth.TestUserEmail, auth.TestUserPassword, users.RoleUser); err != nil {
			return deps, fmt.Errorf("seed demo account: %w", err)
		}
		appLogger.Info("Seeded demo account", slog.String("email", auth.TestUserEmail))
	}

	if cfg.Kafka.Enabled {
		publisher, err := signals.NewKafkaPublisher(signals.DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.SignalsTopic), appLogger)
		if err != nil {
			// Signals are still served, only the feed is lost
			appLogger.Error("Failed to initialize signal producer", slog.Any("error", err))
		} else {
			deps.Publisher = publisher
		}
	}

	return deps, nil
}

func setupEngine(cfg *config.Config, appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	if cfg.MetricsEnabled {
		m := metrics.GetMonitor("/metrics")
		m.Use(engine)
	}

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "WWW-Authenticate", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter, appLogger))
	}

	appRouter.SetupRoutes(engine)
	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}

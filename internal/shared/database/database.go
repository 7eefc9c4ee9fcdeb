package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spreadedge/internal/shared/config"
	"spreadedge/pkg/cache"
	applogger "spreadedge/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds database connections. Either may be nil when disabled in config.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
	log        *applogger.Logger
}

// InitDB opens the enabled backends and runs migrations
func InitDB(ctx context.Context, cfg *config.Config, log *applogger.Logger) (*DB, error) {
	db := &DB{log: log}

	if cfg.Database.Enabled {
		pg, err := initPostgreSQL(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		if err := Migrate(pg); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := MigrateConstraints(pg); err != nil {
			return nil, fmt.Errorf("failed to add constraints: %w", err)
		}
		db.PostgreSQL = pg
		log.Info("PostgreSQL connected", "host", cfg.Database.Host, "db", cfg.Database.Name)
	} else {
		log.Info("PostgreSQL disabled, using in-memory user store")
	}

	if cfg.Redis.Enabled {
		rdb, err := initRedis(ctx, cfg)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		db.Redis = rdb
		log.Info("Redis connected", "addr", cfg.Redis.Addr)
	} else {
		log.Info("Redis disabled, using in-process cache")
	}

	return db, nil
}

// initPostgreSQL initializes PostgreSQL connection with GORM
func initPostgreSQL(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	// Configure GORM logger
	var gormLogger logger.Interface
	if cfg.IsDevelopment() {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	// GORM configuration
	gormConfig := &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:    true,
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes Redis connection
func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	return cache.Connect(ctx, cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,

		PoolSize:     10,
		MinIdleConns: 5,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// Close closes all database connections
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("errors closing databases: %w", err)
	}

	db.log.Info("All database connections closed")
	return nil
}

// HealthCheck pings every enabled backend and reports each one by name
func (db *DB) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{
		"postgres": "disabled",
		"redis":    "disabled",
	}

	if db.PostgreSQL != nil {
		status["postgres"] = "healthy"
		sqlDB, err := db.PostgreSQL.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			db.log.WarnContext(ctx, "PostgreSQL health check failed", "error", err)
			status["postgres"] = "unhealthy"
		}
	}

	if db.Redis != nil {
		status["redis"] = "healthy"
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			db.log.WarnContext(ctx, "Redis health check failed", "error", err)
			status["redis"] = "unhealthy"
		}
	}

	return status
}

// Healthy reports whether every enabled backend answered
func Healthy(status map[string]string) bool {
	for _, s := range status {
		if s == "unhealthy" {
			return false
		}
	}
	return true
}

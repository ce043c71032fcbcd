package bootstrap

import (
	"context"
	"fmt"

	"fitnessfinder/internal/cache"
	"fitnessfinder/internal/config"
	"fitnessfinder/internal/database"
	"fitnessfinder/internal/observability"
	"fitnessfinder/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFromSettings loads the configured seed file into an empty database.
	SeedFromSettings bool
}

// InitRuntime connects to the database and Redis, initializes tracing, and
// optionally seeds an empty database from the configured settings file.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB (runs schema management per DB_SCHEMA_MODE)
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if cfg.TracingEnabled {
		if _, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:    "fitnessfinder-api",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        true,
			Exporter:       cfg.TraceExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   cfg.TraceSampler,
		}); err != nil {
			return nil, nil, fmt.Errorf("tracing initialization failed: %w", err)
		}
	}

	if opts.SeedFromSettings && cfg.SeedFile != "" {
		settings, err := seed.ReadSettings(cfg.SeedFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read seed settings: %w", err)
		}
		if err := seed.NewLoader(db).LoadIfEmpty(ctx, settings); err != nil {
			return nil, nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return db, r, nil
}

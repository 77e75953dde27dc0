// Package bootstrap establishes the runtime dependencies shared by the
// server and the command line tools.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"stylmou/internal/cache"
	"stylmou/internal/config"
	"stylmou/internal/database"
	"stylmou/internal/middleware"
	"stylmou/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedReference installs categories, languages, countries and tags.
	SeedReference bool
}

// InitRuntime connects to DB and Redis and optionally installs reference data.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)

	if opts.SeedReference {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.Reference(ctx, db); err != nil {
			return nil, nil, err
		}
		middleware.Logger.Info("reference data ensured")
	}

	return db, rdb, nil
}

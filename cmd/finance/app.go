package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-ledger/api/config"
	"github.com/finance-ledger/api/internal/infra/db"
	"github.com/finance-ledger/api/internal/infra/dependency"
	"github.com/finance-ledger/api/internal/integration/persistence/model"
)

// app bundles the wired application with the resources it must release.
type app struct {
	injector *dependency.Injector
	database *db.Database
	redis    *redis.Client
}

// newApp connects to the database, migrates the schema and wires the
// application. Redis is optional and only used for rate limiting.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(model.All()...); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	slog.Info("Database migrations completed successfully")

	redisClient := connectRedis(ctx, cfg.Redis.URL)

	return &app{
		injector: dependency.NewInjector(cfg, database.DB(), redisClient),
		database: database,
		redis:    redisClient,
	}, nil
}

// connectRedis returns nil when Redis is not configured or unreachable.
func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("Invalid Redis URL, using in-memory rate limiting", "error", err)
		return nil
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("Connected to Redis", "addr", opts.Addr)
	return client
}

func (a *app) seed(ctx context.Context) error {
	if _, err := a.injector.SeedDefaultCategories.Execute(ctx); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}
	if err := a.database.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}

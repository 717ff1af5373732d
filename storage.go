package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/msomdec/employee-pass/internal/config"
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/repository/memory"
	"github.com/msomdec/employee-pass/internal/repository/postgres"
	"github.com/msomdec/employee-pass/internal/repository/redis"
	"github.com/msomdec/employee-pass/internal/repository/sqlite"
)

// openStorage connects the backend selected by cfg.StorageDriver and applies
// its schema. The returned Database must be closed by the caller.
func openStorage(ctx context.Context, cfg *config.Config) (domain.SlotStore, domain.Database, error) {
	var (
		slots domain.SlotStore
		db    domain.Database
	)

	switch cfg.StorageDriver {
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		slots, db = s.Slots(), s
	case config.DriverRedis:
		s, err := redis.New(ctx, redis.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		slots, db = s, s
	case config.DriverPostgres:
		s, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		slots, db = s, s
	case config.DriverMemory:
		s := memory.New()
		slots, db = s, s
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", cfg.StorageDriver, err)
	}
	return slots, db, nil
}

// openServeStorage opens the configured backend for the web server. When the
// backend cannot be opened the server runs on an in-memory store instead, and
// the collection lives only as long as the process.
func openServeStorage(ctx context.Context, cfg *config.Config) (domain.SlotStore, domain.Database) {
	slots, db, err := openStorage(ctx, cfg)
	if err == nil {
		slog.Info("storage ready", "driver", cfg.StorageDriver)
		return slots, db
	}
	slog.Warn("storage unavailable, employee collection will not be persisted",
		"driver", cfg.StorageDriver, "error", err)
	mem := memory.New()
	return mem, mem
}

// openOffline reads the configuration for commands that only touch storage
// and opens the configured backend.
func openOffline(ctx context.Context) (*config.Config, domain.SlotStore, domain.Database, error) {
	cfg, err := config.Read(os.Getenv)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.ValidateStorage(); err != nil {
		return nil, nil, nil, err
	}
	slots, db, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, slots, db, nil
}

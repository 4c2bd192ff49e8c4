package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

// Backends holds the store selected by STORAGE_DRIVER and the connections
// opened for it. Redis is also used for rate limiting when available.
type Backends struct {
	Store storage.Store
	Redis *redis.Client

	closers []func() error
}

// Close releases every connection opened by OpenBackends.
func (b *Backends) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenBackends builds the key-value store for cfg.Storage.Driver.
func OpenBackends(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backends, error) {
	b := &Backends{}

	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("Using in-memory storage; data is lost on restart")
		b.Store = storage.NewMemoryStore()
	case "redis":
		client, err := NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		b.Redis = client
		b.closers = append(b.closers, client.Close)
		b.Store = storage.NewRedisStore(client, cfg.Storage.KeyPrefix)
	case "sql":
		db, err := Open(cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			b.closers = append(b.closers, sqlDB.Close)
		}
		b.Store = storage.NewSQLStore(db)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	return b, nil
}

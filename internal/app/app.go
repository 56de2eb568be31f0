// Package app wires configuration into stores, caches and services. It is
// shared by the server and the admin CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	lrucache "github.com/vncsmyrnk/linkscore/internal/adapters/cache/lru"
	rediscache "github.com/vncsmyrnk/linkscore/internal/adapters/cache/redis"
	"github.com/vncsmyrnk/linkscore/internal/adapters/clock"
	"github.com/vncsmyrnk/linkscore/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/linkscore/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/linkscore/internal/config"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

// Stores groups the storage ports behind one backend.
type Stores struct {
	Aggregates ports.AggregateStore
	Activity   ports.DailyActivityTracker
	Settings   ports.SettingsStore
	Users      ports.UserDirectory
	Ping       func(ctx context.Context) error
	Close      func() error
}

func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	defaults := cfg.Voting.DefaultSettings()

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore(defaults)
		return &Stores{
			Aggregates: store,
			Activity:   store,
			Settings:   store,
			Users:      store,
			Ping:       store.Ping,
			Close:      func() error { return nil },
		}, nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.DSN(), postgres.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		return PostgresStores(db, cfg), nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

func PostgresStores(db *sql.DB, cfg *config.Config) *Stores {
	return &Stores{
		Aggregates: postgres.NewVoteRepository(db),
		Activity:   postgres.NewActivityRepository(db),
		Settings:   postgres.NewSettingsRepository(db, cfg.Voting.DefaultSettings()),
		Users:      postgres.NewUserRepository(db),
		Ping:       db.PingContext,
		Close:      db.Close,
	}
}

// OpenCache returns nil when caching is disabled. The returned ping is nil
// unless the cache lives out of process.
func OpenCache(cfg *config.Config) (ports.LinkCache, func(ctx context.Context) error, error) {
	switch cfg.Cache.Driver {
	case config.CacheNone, "":
		return nil, nil, nil
	case config.CacheLRU:
		c, err := lrucache.New(cfg.Cache.Size, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case config.CacheRedis:
		client := rediscache.NewClient(rediscache.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		c := rediscache.New(client, cfg.Cache.TTL)
		return c, c.Ping, nil
	}
	return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
}

func NewClock(cfg *config.Config) (ports.Clock, error) {
	if cfg.Clock.UseSystemTime {
		return clock.System{}, nil
	}
	t, err := cfg.Clock.Fixed()
	if err != nil {
		return nil, err
	}
	return clock.Fixed{T: t}, nil
}

func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	return log, nil
}

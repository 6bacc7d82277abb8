package database

import (
	"context"
	"fmt"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// pingTimeout bounds the startup reachability checks so a down backend
// fails fast instead of hanging the process.
const pingTimeout = 5 * time.Second

// Connections bundles the data stores the application depends on.
type Connections struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// Connect opens and verifies the PostgreSQL pool and the Redis client.
// Both must be reachable; a partial failure closes whatever already opened.
func Connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Connections, error) {
	pool, err := PostgresPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Int32("max_conns", cfg.MaxDBConns).Msg("PostgreSQL connected")

	rdb, err := newRedisClient(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Str("addr", rdb.Options().Addr).Msg("Redis connected")

	return &Connections{Pool: pool, Redis: rdb}, nil
}

// Close releases both connections. Safe to call once during shutdown.
func (c *Connections) Close() {
	c.Pool.Close()
	_ = c.Redis.Close()
}

// PostgresPool opens and pings the pool on its own, for CLI tools that do
// not need Redis.
func PostgresPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxDBConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benknight/cocolist/internal/config"
)

// healthCheckPeriod is how often idle connections are probed.
const healthCheckPeriod = 30 * time.Second

// Connect opens the review and user pool for dsn, tuned by pool, and pings it.
func Connect(ctx context.Context, dsn string, pool config.PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(dsn, pool)
	if err != nil {
		return nil, err
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return p, nil
}

func poolConfig(dsn string, pool config.PoolConfig) (*pgxpool.Config, error) {
	if dsn == "" {
		return nil, errors.New("database DSN must not be empty")
	}
	if pool.MaxConns > 0 && pool.MinConns > pool.MaxConns {
		return nil, fmt.Errorf("min conns %d exceeds max conns %d", pool.MinConns, pool.MaxConns)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	if pool.MaxConns > 0 {
		cfg.MaxConns = pool.MaxConns
	}
	if pool.MinConns > 0 {
		cfg.MinConns = pool.MinConns
	}
	if pool.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = pool.MaxConnLifetime
	}
	if pool.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = pool.MaxConnIdleTime
	}
	cfg.HealthCheckPeriod = healthCheckPeriod
	return cfg, nil
}

// Package database manages the PostgreSQL connection pool and applies
// embedded schema migrations on startup.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DB wraps the shared connection pool. Repositories reach the pool directly.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// New opens a connection pool against uri and verifies it with a ping.
func New(ctx context.Context, uri string, log *zap.Logger) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool, log: log}, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options tune the connection opened by Open.
type Options struct {
	ConnectTimeout time.Duration
	MaxConns       int32
}

// Open selects a ProductStore implementation by the scheme of url:
//
//	postgres://, postgresql://  PgStore over a pgx pool
//	sqlite://<dsn>              SQLStore over SQLite
//	memory://                   in-memory store
//
// The returned function releases the store's resources.
func Open(ctx context.Context, url string, opts Options) (ProductStore, func(), error) {
	switch {
	case IsPostgresURL(url):
		pool, err := NewDbPool(ctx, url, opts)
		if err != nil {
			return nil, nil, err
		}
		return NewPgStore(pool), pool.Close, nil
	case strings.HasPrefix(url, "sqlite://"):
		s, err := OpenSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case strings.HasPrefix(url, "memory://"):
		return NewInMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database URL scheme: %s", url)
	}
}

// IsPostgresURL checks if the provided URL is a valid PostgreSQL URL
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://")
}

// NewDbPool creates a new database connection pool and pings it,
// failing early if the database is unreachable.
func NewDbPool(ctx context.Context, url string, opts Options) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	poolCtx, cancel := ctx, context.CancelFunc(func() {})
	if opts.ConnectTimeout > 0 {
		poolCtx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
	}
	defer cancel()

	dbPool, err := pgxpool.NewWithConfig(poolCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := dbPool.Ping(poolCtx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbPool, nil
}

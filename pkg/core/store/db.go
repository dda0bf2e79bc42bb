// Package store persists processed-deal audit records. The engine itself is
// purely functional; persistence happens at the transport layer, after the
// response is produced.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool from the DATABASE_URL environment
// variable and verifies connectivity. Safe to call more than once.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}
		err = pool.Ping(ctx)
	})
	return err
}

// GetPool returns the connection pool, or nil when InitDB has not run.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

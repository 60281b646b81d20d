package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PoolSize bounds open and idle connections.
const PoolSize = 4

// Open connects to PostgreSQL through the pgx database/sql driver and
// verifies the connection before returning.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("db.Open: DATABASE_URL is empty")
	}

	conn, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db.Open: open postgres database: %w", err)
	}

	conn.SetMaxOpenConns(PoolSize)
	conn.SetMaxIdleConns(PoolSize)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db.Open: verify postgres connection: %w", err)
	}

	return conn, nil
}

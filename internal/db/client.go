package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"usersvc/internal/config"
	"usersvc/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// ErrNotConfigured is returned when no DSN is present. The service fails
// fast at startup rather than on the first query.
var ErrNotConfigured = errors.New("database is not configured, set APP_DATABASE_URL")

type Client struct {
	bun    *bun.DB
	db     *sql.DB
	logger logging.Logger
}

// NewClient creates a Bun client backed by database/sql using the pgx driver.
func NewClient(ctx context.Context, cfg config.DatabaseConfig, logger logging.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	// database/sql connection pool using pgx
	dbStd, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// Verify connectivity
	if err := dbStd.PingContext(ctx); err != nil {
		_ = dbStd.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	bunDB := bun.NewDB(dbStd, pgdialect.New())

	return &Client{
		bun:    bunDB,
		db:     dbStd,
		logger: logger.With("component", "db_client"),
	}, nil
}

// DB returns the handle queries should run on: the transaction bound to
// ctx when one is in flight, otherwise the shared pool.
func (c *Client) DB(ctx context.Context) bun.IDB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return c.bun
}

// CreateSchema creates the users table if it does not exist.
// Intended for dev environments; production schemas are managed externally.
func (c *Client) CreateSchema(ctx context.Context) error {
	if _, err := c.bun.NewCreateTable().
		Model((*UserRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Close closes the underlying pool (bun shares it).
func (c *Client) Close() error {
	return c.bun.Close()
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

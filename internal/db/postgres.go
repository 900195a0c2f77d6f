package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNoDatabaseURL is returned by Connect when no DSN is configured.
var ErrNoDatabaseURL = errors.New("database url not configured")

func Connect(ctx context.Context, dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, ErrNoDatabaseURL
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            TEXT PRIMARY KEY,
		sku           TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL,
		current_stock INTEGER NOT NULL CHECK (current_stock >= 0),
		min_stock     INTEGER NOT NULL,
		max_stock     INTEGER NOT NULL,
		unit          TEXT NOT NULL,
		zone          TEXT NOT NULL DEFAULT '',
		aisle         TEXT NOT NULL DEFAULT '',
		rack          TEXT NOT NULL DEFAULT '',
		shelf         TEXT NOT NULL DEFAULT '',
		price         DOUBLE PRECISION NOT NULL,
		status        TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		CHECK (min_stock <= max_stock)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_sku_lower_idx ON products (lower(sku))`,
	`CREATE TABLE IF NOT EXISTS stock_adjustments (
		id              TEXT PRIMARY KEY,
		product_id      TEXT NOT NULL REFERENCES products(id),
		product_sku     TEXT NOT NULL,
		product_name    TEXT NOT NULL,
		previous_stock  INTEGER NOT NULL,
		new_stock       INTEGER NOT NULL,
		adjustment_type TEXT NOT NULL,
		reason          TEXT NOT NULL,
		notes           TEXT NOT NULL DEFAULT '',
		adjusted_by     TEXT NOT NULL,
		adjusted_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS stock_adjustments_product_idx ON stock_adjustments (product_id, adjusted_at DESC)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the tables used by the Postgres repositories.
func Migrate(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// Reset empties every table. Used by the integration suite.
func Reset(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE stock_adjustments, products, users`)
	return err
}

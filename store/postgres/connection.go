// Package postgres implements the PostgreSQL persistence layer for Vigia.
//
// Students, attendance, and participation live in three tables; attendance
// and participation are append-only. Embedding samples are stored as JSONB
// on the student row, which keeps enrollment a single write and lets the
// gallery load with one query.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrConnectionClosed indicates the connection pool is closed.
var ErrConnectionClosed = errors.New("postgres: connection pool is closed")

// Connection wraps a pgx connection pool.
type Connection struct {
	pool *pgxpool.Pool
}

// NewConnection creates a connection pool from a database URL and verifies
// it with a ping.
//
// Parameters:
//   - ctx: Context for connecting and the verification ping
//   - databaseURL: Standard postgres:// connection string
//
// Returns:
//   - *Connection: Verified connection pool
//   - error: Parse, connect, or ping error
func NewConnection(ctx context.Context, databaseURL string) (*Connection, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse database URL: %w", err)
	}

	if cfg.MaxConns == 0 {
		cfg.MaxConns = 10
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("postgres: ping database: %w", err)
	}

	return &Connection{pool: pool}, nil
}

// Pool returns the underlying connection pool.
func (c *Connection) Pool() *pgxpool.Pool {
	return c.pool
}

// Ping checks that the database connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// Close closes the connection pool.
func (c *Connection) Close() {
	c.pool.Close()
}

// Migrate creates the schema when it does not exist yet.
//
// Statements are idempotent; running Migrate on every startup is safe.
func (c *Connection) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			surname    TEXT NOT NULL,
			embeddings JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id         BIGSERIAL PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id),
			period     TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS attendance_student_period_idx
			ON attendance (student_id, period, recorded_at)`,
		`CREATE TABLE IF NOT EXISTS participation (
			id         BIGSERIAL PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id),
			period     TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			points     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS participation_student_period_idx
			ON participation (student_id, period, recorded_at)`,
	}

	for _, stmt := range statements {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}

	return nil
}

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNoRows checks if the error is a "no rows" error.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

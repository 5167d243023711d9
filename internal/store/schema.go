package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// EnsureSchema creates the drip schema and its tables when missing.
// Idempotent; run once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE SCHEMA IF NOT EXISTS drip`,

		`CREATE TABLE IF NOT EXISTS drip.user_configs (
			user_id            TEXT PRIMARY KEY,
			monthly_investment DOUBLE PRECISION NOT NULL,
			buffer_amount      DOUBLE PRECISION NOT NULL DEFAULT 0,
			assets             JSONB NOT NULL DEFAULT '[]',
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS drip.market_snapshots (
			code       TEXT PRIMARY KEY,
			snapshot   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS drip.investment_plans (
			id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			generated_at TIMESTAMPTZ NOT NULL,
			plan         JSONB NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_investment_plans_generated_at
			ON drip.investment_plans (generated_at DESC)`,

		`CREATE TABLE IF NOT EXISTS drip.score_history (
			id          BIGSERIAL PRIMARY KEY,
			code        TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			score       DOUBLE PRECISION NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_score_history_code_recorded_at
			ON drip.score_history (code, recorded_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}
	return nil
}

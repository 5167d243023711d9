package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/drip/internal/contracts"
)

// SnapshotRepository persists the latest indicator snapshot per instrument
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Upsert stores the snapshot for its code
func (r *SnapshotRepository) Upsert(ctx context.Context, snapshot *contracts.MarketSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	query := `
		INSERT INTO drip.market_snapshots (code, snapshot, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, snapshot.Code, data, snapshot.UpdatedAt); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", snapshot.Code, err)
	}
	return nil
}

// Get retrieves the stored snapshot for a code
func (r *SnapshotRepository) Get(ctx context.Context, code string) (*contracts.MarketSnapshot, error) {
	query := `SELECT snapshot FROM drip.market_snapshots WHERE code = $1`

	var data []byte
	err := r.pool.QueryRow(ctx, query, code).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", code, err)
	}

	var snapshot contracts.MarketSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot for %s: %w", code, err)
	}
	return &snapshot, nil
}

// All retrieves every stored snapshot, keyed by code
func (r *SnapshotRepository) All(ctx context.Context) (map[string]*contracts.MarketSnapshot, error) {
	query := `SELECT code, snapshot FROM drip.market_snapshots ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*contracts.MarketSnapshot)
	for rows.Next() {
		var code string
		var data []byte
		if err := rows.Scan(&code, &data); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		var snapshot contracts.MarketSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("decode snapshot for %s: %w", code, err)
		}
		out[code] = &snapshot
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/drip/internal/contracts"
)

// ScoreRepository archives per-code score points. The in-memory score
// history is rehydrated from here on startup so trend analysis survives
// restarts.
type ScoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// Append records one score point for a code
func (r *ScoreRepository) Append(ctx context.Context, code string, at time.Time, score float64) error {
	query := `
		INSERT INTO drip.score_history (code, recorded_at, score)
		VALUES ($1, $2, $3)
	`
	if _, err := r.pool.Exec(ctx, query, code, at, score); err != nil {
		return fmt.Errorf("append score for %s: %w", code, err)
	}
	return nil
}

// AppendAll records one score point per code from a scoring run
func (r *ScoreRepository) AppendAll(ctx context.Context, at time.Time, scores map[string]float64) error {
	for code, score := range scores {
		if err := r.Append(ctx, code, at, score); err != nil {
			return err
		}
	}
	return nil
}

// RecentHistory returns the latest points for a code, oldest first
func (r *ScoreRepository) RecentHistory(ctx context.Context, code string, limit int) ([]contracts.ScorePoint, error) {
	query := `
		SELECT recorded_at, score FROM (
			SELECT recorded_at, score
			FROM drip.score_history
			WHERE code = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at ASC
	`

	rows, err := r.pool.Query(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("load score history for %s: %w", code, err)
	}
	defer rows.Close()

	var points []contracts.ScorePoint
	for rows.Next() {
		var p contracts.ScorePoint
		if err := rows.Scan(&p.At, &p.Score); err != nil {
			return nil, fmt.Errorf("scan score point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Codes returns every code with recorded history
func (r *ScoreRepository) Codes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT code FROM drip.score_history ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list scored codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

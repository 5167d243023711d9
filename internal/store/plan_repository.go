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

// PlanRepository persists generated investment plans
// ⭐ SSOT: 투자 계획 영속화는 여기서만
type PlanRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// Save inserts a plan and fills in its generated ID
func (r *PlanRepository) Save(ctx context.Context, plan *contracts.InvestmentPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	query := `
		INSERT INTO drip.investment_plans (generated_at, plan)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, plan.GeneratedAt, data).Scan(&plan.ID); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// Latest retrieves the most recently generated plan
func (r *PlanRepository) Latest(ctx context.Context) (*contracts.InvestmentPlan, error) {
	query := `
		SELECT id, plan FROM drip.investment_plans
		ORDER BY generated_at DESC
		LIMIT 1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query))
}

// Get retrieves a plan by ID
func (r *PlanRepository) Get(ctx context.Context, id string) (*contracts.InvestmentPlan, error) {
	query := `SELECT id, plan FROM drip.investment_plans WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// List retrieves recent plans, newest first
func (r *PlanRepository) List(ctx context.Context, limit int) ([]*contracts.InvestmentPlan, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, plan FROM drip.investment_plans
		ORDER BY generated_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*contracts.InvestmentPlan
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}

		var plan contracts.InvestmentPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", id, err)
		}
		plan.ID = id
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

func (r *PlanRepository) scanOne(row pgx.Row) (*contracts.InvestmentPlan, error) {
	var id string
	var data []byte
	err := row.Scan(&id, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}

	var plan contracts.InvestmentPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	plan.ID = id
	return &plan, nil
}

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

// ConfigRepository persists the per-user planning configuration
// ⭐ SSOT: 사용자 설정 영속화는 여기서만
type ConfigRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

// Get retrieves the configuration for a user
func (r *ConfigRepository) Get(ctx context.Context, userID string) (*contracts.UserConfig, error) {
	query := `
		SELECT user_id, monthly_investment, buffer_amount, assets, created_at, updated_at
		FROM drip.user_configs
		WHERE user_id = $1
	`

	var cfg contracts.UserConfig
	var assetsJSON []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&cfg.UserID, &cfg.MonthlyInvestment, &cfg.BufferAmount,
		&assetsJSON, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user config: %w", err)
	}

	if err := json.Unmarshal(assetsJSON, &cfg.Assets); err != nil {
		return nil, fmt.Errorf("decode user config assets: %w", err)
	}
	return &cfg, nil
}

// Save upserts the configuration for a user
func (r *ConfigRepository) Save(ctx context.Context, cfg *contracts.UserConfig) error {
	assetsJSON, err := json.Marshal(cfg.Assets)
	if err != nil {
		return fmt.Errorf("encode user config assets: %w", err)
	}

	query := `
		INSERT INTO drip.user_configs (user_id, monthly_investment, buffer_amount, assets, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE SET
			monthly_investment = EXCLUDED.monthly_investment,
			buffer_amount = EXCLUDED.buffer_amount,
			assets = EXCLUDED.assets,
			updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query,
		cfg.UserID, cfg.MonthlyInvestment, cfg.BufferAmount, assetsJSON,
	); err != nil {
		return fmt.Errorf("save user config: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/drip/internal/contracts"
)

// testPool connects to the database named by TEST_DATABASE_URL; integration
// tests are skipped when it is unset or -short is given.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(context.Background(), pool))
	return pool
}

func TestConfigRepository_RoundTrip(t *testing.T) {
	pool := testPool(t)
	repo := NewConfigRepository(pool)
	ctx := context.Background()

	cfg := &contracts.UserConfig{
		UserID:            "store-test",
		MonthlyInvestment: 3000,
		BufferAmount:      1000,
		Assets: []contracts.Asset{
			{Code: "SPY", Name: "S&P 500", Type: contracts.AssetTypeUSIndex, Weight: 0.6},
			{Code: "GLD", Name: "Gold", Type: contracts.AssetTypeGold, Weight: 0.4},
		},
	}
	require.NoError(t, repo.Save(ctx, cfg))

	loaded, err := repo.Get(ctx, "store-test")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, loaded.MonthlyInvestment)
	require.Len(t, loaded.Assets, 2)
	assert.Equal(t, "SPY", loaded.Assets[0].Code)

	// Upsert replaces, never duplicates
	cfg.MonthlyInvestment = 5000
	require.NoError(t, repo.Save(ctx, cfg))
	loaded, err = repo.Get(ctx, "store-test")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, loaded.MonthlyInvestment)

	_, err = repo.Get(ctx, "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	pool := testPool(t)
	repo := NewSnapshotRepository(pool)
	ctx := context.Background()

	snapshot := &contracts.MarketSnapshot{
		Code:      "SPY",
		Price:     contracts.Float(412.5),
		RSI14:     contracts.Float(44.2),
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Upsert(ctx, snapshot))

	loaded, err := repo.Get(ctx, "SPY")
	require.NoError(t, err)
	require.NotNil(t, loaded.Price)
	assert.Equal(t, 412.5, *loaded.Price)
	assert.Nil(t, loaded.MA200)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, "SPY")

	_, err = repo.Get(ctx, "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepository_SaveAndLatest(t *testing.T) {
	pool := testPool(t)
	repo := NewPlanRepository(pool)
	ctx := context.Background()

	plan := &contracts.InvestmentPlan{
		GeneratedAt:            time.Now().UTC(),
		TotalMonthlyAmount:     3000,
		EffectiveMonthlyAmount: 3000,
		Warnings:               []string{"test warning"},
	}
	require.NoError(t, repo.Save(ctx, plan))
	assert.NotEmpty(t, plan.ID)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, latest.ID)
	assert.Equal(t, 3000.0, latest.TotalMonthlyAmount)

	byID, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, byID.ID)

	plans, err := repo.List(ctx, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, plans)
}

func TestScoreRepository_HistoryOrdering(t *testing.T) {
	pool := testPool(t)
	repo := NewScoreRepository(pool)
	ctx := context.Background()

	code := "SCORE-TEST"
	base := time.Now().UTC().Add(-3 * time.Hour)
	for i, score := range []float64{42, 48, 55} {
		require.NoError(t, repo.Append(ctx, code, base.Add(time.Duration(i)*time.Hour), score))
	}

	points, err := repo.RecentHistory(ctx, code, 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	// Oldest first within the trailing window
	assert.Equal(t, 48.0, points[0].Score)
	assert.Equal(t, 55.0, points[1].Score)

	codes, err := repo.Codes(ctx)
	require.NoError(t, err)
	assert.Contains(t, codes, code)
}

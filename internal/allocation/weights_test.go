package allocation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/pkg/logger"
)

func newTestAllocator() *Allocator {
	return NewAllocator(logger.NewNop())
}

func asset(code string, weight float64) contracts.Asset {
	return contracts.Asset{Code: code, Name: code, Weight: weight}
}

func TestAllocator_Adjust_ScoreTilts(t *testing.T) {
	allocator := newTestAllocator()

	assets := []contracts.Asset{
		asset("SPY", 0.5),
		asset("QQQ", 0.3),
		asset("GLD", 0.2),
	}
	scores := map[string]float64{
		"SPY": 85, // +10%
		"QQQ": 40, // unchanged
		"GLD": 15, // -10%
	}

	weights := allocator.Adjust(assets, scores)

	// Pre-normalization: 0.55, 0.30, 0.18 → sum 1.03
	assert.InDelta(t, 0.534, weights["SPY"], 0.001)
	assert.InDelta(t, 0.291, weights["QQQ"], 0.001)
	assert.InDelta(t, 0.175, weights["GLD"], 0.001)

	sum := weights["SPY"] + weights["QQQ"] + weights["GLD"]
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAllocator_Adjust_InvalidWeightsRecovered(t *testing.T) {
	allocator := newTestAllocator()

	assets := []contracts.Asset{
		asset("A", 0),
		asset("B", -0.4),
		asset("C", math.NaN()),
	}

	weights := allocator.Adjust(assets, map[string]float64{})

	// All three default to 1.0 and normalize to an equal split
	for _, code := range []string{"A", "B", "C"} {
		assert.InDelta(t, 1.0/3.0, weights[code], 1e-9)
	}
}

func TestAllocator_Adjust_EmptyAssets(t *testing.T) {
	allocator := newTestAllocator()

	weights := allocator.Adjust(nil, map[string]float64{"SPY": 80})

	assert.Empty(t, weights)
}

func TestAllocator_Adjust_MissingScoreLeavesWeight(t *testing.T) {
	allocator := newTestAllocator()

	assets := []contracts.Asset{
		asset("SPY", 0.6),
		asset("QQQ", 0.4),
	}

	weights := allocator.Adjust(assets, map[string]float64{"SPY": 70})

	// SPY tilted by 1.07, QQQ untouched: 0.642 / 0.4
	require.Len(t, weights, 2)
	assert.InDelta(t, 0.642/1.042, weights["SPY"], 1e-9)
	assert.InDelta(t, 0.400/1.042, weights["QQQ"], 1e-9)
}

func TestAllocator_Adjust_AlwaysNormalized(t *testing.T) {
	allocator := newTestAllocator()

	cases := []struct {
		name   string
		assets []contracts.Asset
		scores map[string]float64
	}{
		{"mixed validity", []contracts.Asset{asset("A", 0.7), asset("B", -1)}, map[string]float64{"A": 90, "B": 10}},
		{"all invalid", []contracts.Asset{asset("A", 0), asset("B", 0)}, map[string]float64{}},
		{"single asset", []contracts.Asset{asset("A", 0.123)}, map[string]float64{"A": 55}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			weights := allocator.Adjust(tt.assets, tt.scores)

			sum := 0.0
			for _, w := range weights {
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestAdjustmentFactor_Boundaries(t *testing.T) {
	tests := []struct {
		score  float64
		factor float64
	}{
		{80, 1.10},
		{79.9, 1.07},
		{65, 1.07},
		{64.9, 1.03},
		{55, 1.03},
		{54.9, 1.0},
		{36, 1.0},
		{35, 0.95},
		{25.1, 0.95},
		{25, 0.90},
		{0, 0.90},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.factor, adjustmentFactor(tt.score), "score %v", tt.score)
	}
}

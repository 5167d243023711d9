package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/pkg/logger"
)

func newTestEngine() *Engine {
	return NewEngine(NewPriceHistory(), logger.NewNop())
}

func TestEngine_Score_DeepDipSnapshot(t *testing.T) {
	engine := newTestEngine()

	// Price position 0.15, deviation -9%, RSI 28, recent drawdown -9%,
	// first observation so no cumulative drawdown yet.
	snapshot := &contracts.MarketSnapshot{
		Code:           "SPY",
		Price:          contracts.Float(415),
		W52High:        contracts.Float(500),
		W52Low:         contracts.Float(400),
		DeviationPct:   contracts.Float(-0.09),
		RSI14:          contracts.Float(28),
		RecentDrawdown: contracts.Float(-0.09),
	}

	result := engine.Score(snapshot)

	// valuation 15+10+10=35 clamps to 30, trend 15+15=30, special 15
	assert.InDelta(t, 30.0, result.Valuation, 0.001)
	assert.InDelta(t, 30.0, result.Trend, 0.001)
	assert.InDelta(t, 10.0, result.Volatility, 0.001)
	assert.InDelta(t, 15.0, result.SpecialEvent, 0.001)
	assert.InDelta(t, 85.0, result.Total, 0.001)
	assert.False(t, result.IsDefault)

	require.NotNil(t, result.Components.PricePosition)
	assert.InDelta(t, 0.15, *result.Components.PricePosition, 0.001)
	assert.Nil(t, result.Components.CumulativeDrawdown)
}

func TestEngine_Score_MissingSnapshot(t *testing.T) {
	engine := newTestEngine()

	result := engine.Score(nil)

	assert.True(t, result.IsDefault)
	assert.Equal(t, 45.0, result.Total)
	assert.Equal(t, 15.0, result.Valuation)
	assert.Equal(t, 15.0, result.Trend)
	assert.Equal(t, 10.0, result.Volatility)
	assert.Equal(t, 5.0, result.SpecialEvent)
	assert.Nil(t, result.Components.PricePosition)
}

func TestEngine_Score_EmptySnapshotTolerated(t *testing.T) {
	engine := newTestEngine()

	// All indicators absent: neutral midpoints only
	result := engine.Score(&contracts.MarketSnapshot{Code: "QQQ"})

	assert.False(t, result.IsDefault)
	assert.Equal(t, 15.0, result.Valuation)
	assert.Equal(t, 15.0, result.Trend)
	assert.Equal(t, 10.0, result.Volatility)
	assert.Equal(t, 0.0, result.SpecialEvent)
	assert.Equal(t, 40.0, result.Total)
}

func TestEngine_Score_IdempotentOnFreshCode(t *testing.T) {
	snapshot := &contracts.MarketSnapshot{
		Code:           "GLD",
		Price:          contracts.Float(180),
		W52High:        contracts.Float(200),
		W52Low:         contracts.Float(150),
		DeviationPct:   contracts.Float(-0.04),
		RSI14:          contracts.Float(45),
		RecentDrawdown: contracts.Float(-0.01),
	}

	engine := newTestEngine()
	first := engine.Score(snapshot)
	second := engine.Score(snapshot)

	// Identical prices mean zero cumulative drawdown, which contributes
	// nothing, so the first two calls agree.
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Valuation, second.Valuation)
	assert.Equal(t, first.Trend, second.Trend)
	assert.Equal(t, first.Volatility, second.Volatility)
	assert.Equal(t, first.SpecialEvent, second.SpecialEvent)
}

func TestEngine_Score_CumulativeDrawdownRaisesScore(t *testing.T) {
	engine := newTestEngine()

	base := func(price float64) *contracts.MarketSnapshot {
		return &contracts.MarketSnapshot{
			Code:    "IWM",
			Price:   contracts.Float(price),
			W52High: contracts.Float(250),
			W52Low:  contracts.Float(150),
			RSI14:   contracts.Float(50),
		}
	}

	flat := engine.Score(base(200))
	// 8% slide from the rolling high
	dipped := engine.Score(base(184))

	assert.Greater(t, dipped.Total, flat.Total)
	require.NotNil(t, dipped.Components.CumulativeDrawdown)
	assert.InDelta(t, -0.08, *dipped.Components.CumulativeDrawdown, 0.001)
}

func TestEngine_Score_BandsAlwaysRespected(t *testing.T) {
	engine := newTestEngine()
	rng := rand.New(rand.NewSource(7))

	maybe := func(lo, hi float64) *float64 {
		if rng.Intn(3) == 0 {
			return nil
		}
		v := lo + rng.Float64()*(hi-lo)
		return &v
	}

	for i := 0; i < 500; i++ {
		snapshot := &contracts.MarketSnapshot{
			Code:           "RND",
			Price:          maybe(50, 500),
			W52High:        maybe(400, 600),
			W52Low:         maybe(40, 120),
			MA20:           maybe(50, 500),
			MA50:           maybe(50, 500),
			MA200:          maybe(50, 500),
			DeviationPct:   maybe(-0.3, 0.3),
			ATR20:          maybe(0.5, 20),
			ATRBaseline:    maybe(0.5, 20),
			ATRPercentile:  maybe(0, 1),
			RSI14:          maybe(0, 100),
			RecentDrawdown: maybe(-0.3, 0),
			VolumeSurge:    maybe(0, 4),
		}

		result := engine.Score(snapshot)

		assert.GreaterOrEqual(t, result.Total, 0.0)
		assert.LessOrEqual(t, result.Total, 100.0)
		assert.GreaterOrEqual(t, result.Valuation, 0.0)
		assert.LessOrEqual(t, result.Valuation, contracts.ValuationMax)
		assert.GreaterOrEqual(t, result.Trend, 0.0)
		assert.LessOrEqual(t, result.Trend, contracts.TrendMax)
		assert.GreaterOrEqual(t, result.Volatility, 0.0)
		assert.LessOrEqual(t, result.Volatility, contracts.VolatilityMax)
		assert.GreaterOrEqual(t, result.SpecialEvent, 0.0)
		assert.LessOrEqual(t, result.SpecialEvent, contracts.SpecialEventMax)

		// Reconciliation invariant: floored components sum to floored total
		floorSum := math.Floor(result.Valuation) + math.Floor(result.Trend) +
			math.Floor(result.Volatility) + math.Floor(result.SpecialEvent)
		assert.Equal(t, math.Floor(result.Total), floorSum,
			"total=%v comps=%v/%v/%v/%v", result.Total,
			result.Valuation, result.Trend, result.Volatility, result.SpecialEvent)
	}
}

func TestEngine_Score_VolatilityFallbackRatio(t *testing.T) {
	engine := newTestEngine()

	// No percentile: the ATR/baseline ratio ladder applies (2.2 > 2.0 → +10)
	result := engine.Score(&contracts.MarketSnapshot{
		Code:        "VIXY",
		ATR20:       contracts.Float(11),
		ATRBaseline: contracts.Float(5),
	})
	assert.Equal(t, 20.0, result.Volatility)

	// Calm market: ratio below 0.8 subtracts
	result = engine.Score(&contracts.MarketSnapshot{
		Code:        "CALM",
		ATR20:       contracts.Float(3),
		ATRBaseline: contracts.Float(5),
	})
	assert.Equal(t, 8.0, result.Volatility)
}

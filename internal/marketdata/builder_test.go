package marketdata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticSeries builds n daily candles on a gentle sine wave so every
// indicator has signal to work with
func syntheticSeries(n int) Series {
	series := make(Series, n)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range series {
		price := 100 + 10*math.Sin(float64(i)/15)
		series[i] = Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.5,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000 + float64(i%7)*100,
		}
	}
	return series
}

func TestBuildSnapshot_FullSeries(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	series := syntheticSeries(300)

	snapshot := BuildSnapshot("SPY", series, now)

	assert.Equal(t, "SPY", snapshot.Code)
	assert.Equal(t, now, snapshot.UpdatedAt)

	require.NotNil(t, snapshot.Price)
	assert.Equal(t, series[299].Close, *snapshot.Price)

	require.NotNil(t, snapshot.W52High)
	require.NotNil(t, snapshot.W52Low)
	assert.Greater(t, *snapshot.W52High, *snapshot.W52Low)

	require.NotNil(t, snapshot.MA20)
	require.NotNil(t, snapshot.MA50)
	require.NotNil(t, snapshot.MA200)
	require.NotNil(t, snapshot.MACross)

	require.NotNil(t, snapshot.DeviationPct)
	assert.InDelta(t, *snapshot.Price / *snapshot.MA200-1, *snapshot.DeviationPct, 1e-9)

	require.NotNil(t, snapshot.RSI14)
	assert.GreaterOrEqual(t, *snapshot.RSI14, 0.0)
	assert.LessOrEqual(t, *snapshot.RSI14, 100.0)

	require.NotNil(t, snapshot.ATR20)
	require.NotNil(t, snapshot.ATRBaseline)
	require.NotNil(t, snapshot.ATRPercentile)
	assert.GreaterOrEqual(t, *snapshot.ATRPercentile, 0.0)
	assert.LessOrEqual(t, *snapshot.ATRPercentile, 1.0)

	require.NotNil(t, snapshot.RecentDrawdown)
	assert.LessOrEqual(t, *snapshot.RecentDrawdown, 0.0)

	require.NotNil(t, snapshot.VolumeSurge)
	assert.Greater(t, *snapshot.VolumeSurge, 0.0)
}

func TestBuildSnapshot_ShortSeriesLeavesGaps(t *testing.T) {
	now := time.Now()
	series := syntheticSeries(30)

	snapshot := BuildSnapshot("NEW", series, now)

	require.NotNil(t, snapshot.Price)
	require.NotNil(t, snapshot.MA20)
	require.NotNil(t, snapshot.RSI14)

	// Windows longer than the series stay unset
	assert.Nil(t, snapshot.MA50)
	assert.Nil(t, snapshot.MA200)
	assert.Nil(t, snapshot.DeviationPct)
	assert.Nil(t, snapshot.MACross)
}

func TestBuildSnapshot_EmptySeries(t *testing.T) {
	snapshot := BuildSnapshot("EMPTY", nil, time.Now())

	assert.Equal(t, "EMPTY", snapshot.Code)
	assert.Nil(t, snapshot.Price)
	assert.Nil(t, snapshot.RSI14)
}

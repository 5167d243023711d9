package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/drip/internal/contracts"
)

func flatSeries(n int, price float64) Series {
	series := make(Series, n)
	for i := range series {
		series[i] = Candle{Close: price, High: price, Low: price, Volume: 1000}
	}
	return series
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	avg, ok := sma(values, 5)
	require.True(t, ok)
	assert.Equal(t, 3.0, avg)

	avg, ok = sma(values, 2)
	require.True(t, ok)
	assert.Equal(t, 4.5, avg)

	_, ok = sma(values, 6)
	assert.False(t, ok)
}

func TestRSI_Extremes(t *testing.T) {
	up := make([]float64, 30)
	down := make([]float64, 30)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
	}

	v, ok := rsi(up, 14)
	require.True(t, ok)
	assert.Equal(t, 100.0, v)

	v, ok = rsi(down, 14)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = rsi(up[:10], 14)
	assert.False(t, ok)
}

func TestMedianAndPercentile(t *testing.T) {
	m, ok := median([]float64{5, 1, 3})
	require.True(t, ok)
	assert.Equal(t, 3.0, m)

	m, ok = median([]float64{4, 1, 3, 2})
	require.True(t, ok)
	assert.Equal(t, 2.5, m)

	p, ok := percentileRank([]float64{1, 2, 3, 4}, 3)
	require.True(t, ok)
	assert.Equal(t, 0.75, p)

	_, ok = median(nil)
	assert.False(t, ok)
}

func TestRecentDrawdown(t *testing.T) {
	closes := []float64{100, 110, 105, 99}

	dd, ok := recentDrawdown(closes, 20)
	require.True(t, ok)
	assert.InDelta(t, -0.1, dd, 0.001)

	// A series at its peak reads as zero, never positive
	dd, ok = recentDrawdown([]float64{100, 105, 110}, 20)
	require.True(t, ok)
	assert.Equal(t, 0.0, dd)
}

func TestVolumeSurge(t *testing.T) {
	volumes := make([]float64, 20)
	for i := range volumes {
		volumes[i] = 1000
	}
	volumes[19] = 3000 // average becomes 1100

	surge, ok := volumeSurge(volumes, 20)
	require.True(t, ok)
	assert.InDelta(t, 3000.0/1100.0, surge, 0.001)

	_, ok = volumeSurge(volumes[:10], 20)
	assert.False(t, ok)
}

func TestATRSeries_FlatMarket(t *testing.T) {
	atrs := atrSeries(flatSeries(40, 100), 20)

	require.NotEmpty(t, atrs)
	for _, v := range atrs {
		assert.Equal(t, 0.0, v)
	}
}

func TestMACross(t *testing.T) {
	base := make([]float64, 255)
	for i := range base {
		base[i] = 100
	}

	golden := append(append([]float64(nil), base...), 300, 300, 300, 300, 300)
	assert.Equal(t, contracts.MACrossGolden, maCross(golden))

	death := append(append([]float64(nil), base...), 20, 20, 20, 20, 20)
	assert.Equal(t, contracts.MACrossDeath, maCross(death))

	flat := append(append([]float64(nil), base...), 100, 100, 100, 100, 100)
	assert.Equal(t, contracts.MACrossNone, maCross(flat))
}

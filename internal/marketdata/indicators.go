package marketdata

import (
	"math"
	"sort"
)

// Indicator windows, in trading days
const (
	maShortWindow   = 20
	maMidWindow     = 50
	maLongWindow    = 200
	rsiWindow       = 14
	atrWindow       = 20
	yearWindow      = 252
	drawdownWindow  = 20
	volumeWindow    = 20
	maCrossLookback = 5
)

// smaAt returns the simple moving average of the window ending at index end
// (inclusive), or false when the series is too short.
func smaAt(values []float64, window, end int) (float64, bool) {
	if window <= 0 || end+1 < window || end >= len(values) {
		return 0, false
	}
	sum := 0.0
	for i := end - window + 1; i <= end; i++ {
		sum += values[i]
	}
	return sum / float64(window), true
}

// sma returns the trailing simple moving average
func sma(values []float64, window int) (float64, bool) {
	return smaAt(values, window, len(values)-1)
}

// rsi computes the Wilder-smoothed relative strength index
func rsi(closes []float64, window int) (float64, bool) {
	if len(closes) < window+1 {
		return 0, false
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= window; i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			avgGain += diff
		} else {
			avgLoss -= diff
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)

	for i := window + 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// trueRanges computes the daily true range series; the first bar uses
// high minus low only.
func trueRanges(series Series) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series))
	out[0] = barHigh(series[0]) - barLow(series[0])
	for i := 1; i < len(series); i++ {
		high, low := barHigh(series[i]), barLow(series[i])
		prevClose := series[i-1].Close
		out[i] = math.Max(high-low,
			math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
	}
	return out
}

// atrSeries computes the rolling simple-average ATR for every index with a
// full window
func atrSeries(series Series, window int) []float64 {
	tr := trueRanges(series)
	if len(tr) < window {
		return nil
	}
	out := make([]float64, 0, len(tr)-window+1)
	for end := window - 1; end < len(tr); end++ {
		v, _ := smaAt(tr, window, end)
		out = append(out, v)
	}
	return out
}

// median returns the middle value of a copy of values
func median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

// percentileRank returns the fraction of values at or below v
func percentileRank(values []float64, v float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	count := 0
	for _, x := range values {
		if x <= v {
			count++
		}
	}
	return float64(count) / float64(len(values)), true
}

// rangeHighLow returns the highest high and lowest low over the trailing
// window
func rangeHighLow(series Series, window int) (high, low float64, ok bool) {
	if len(series) == 0 {
		return 0, 0, false
	}
	start := len(series) - window
	if start < 0 {
		start = 0
	}
	high, low = math.Inf(-1), math.Inf(1)
	for _, c := range series[start:] {
		high = math.Max(high, barHigh(c))
		low = math.Min(low, barLow(c))
	}
	return high, low, high > low
}

// recentDrawdown returns the decline of the latest close from the trailing
// window's peak close, fractional and at most 0
func recentDrawdown(closes []float64, window int) (float64, bool) {
	if len(closes) < 2 {
		return 0, false
	}
	start := len(closes) - window
	if start < 0 {
		start = 0
	}
	peak := closes[start]
	for _, v := range closes[start:] {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		return 0, false
	}
	return math.Min(0, closes[len(closes)-1]/peak-1), true
}

// volumeSurge returns the latest volume relative to its trailing average
func volumeSurge(volumes []float64, window int) (float64, bool) {
	if len(volumes) < window {
		return 0, false
	}
	avg, ok := sma(volumes, window)
	if !ok || avg <= 0 {
		return 0, false
	}
	return volumes[len(volumes)-1] / avg, true
}

// barHigh and barLow fall back to the close when the intraday extremes are
// missing from the feed
func barHigh(c Candle) float64 {
	if c.High > 0 {
		return c.High
	}
	return c.Close
}

func barLow(c Candle) float64 {
	if c.Low > 0 {
		return c.Low
	}
	return c.Close
}

package scoring

import (
	"math"

	"github.com/wonny/drip/internal/contracts"
)

// rung is one row of an ordered threshold ladder
type rung struct {
	limit float64
	delta float64
}

// Threshold ladders, evaluated top to bottom; the first matching rung wins.
// Kept as data so each band is auditable in isolation.
var (
	valuationPositionLow  = []rung{{0.2, 10}, {0.3, 8}, {0.4, 5}}
	valuationPositionHigh = []rung{{0.8, -5}, {0.7, -4}, {0.6, -3}}
	valuationCumDrawdown  = []rung{{-0.07, 15}, {-0.05, 12}, {-0.03, 8}, {-0.02, 5}}
	valuationDeviationLow = []rung{{-0.08, 10}, {-0.05, 7}, {-0.03, 4}}
	valuationDeviationHi  = []rung{{0.08, 0}, {0.05, 2}, {0.03, 4}}

	trendRSI         = []rung{{30, 15}, {35, 12}, {40, 8}}
	trendCumDrawdown = []rung{{-0.06, 10}, {-0.04, 6}, {-0.02, 3}}

	volatilityPercentile = []rung{{0.9, 10}, {0.8, 8}, {0.7, 6}, {0.6, 4}, {0.5, 2}}
	volatilityRatio      = []rung{{2.0, 10}, {1.5, 7}, {1.2, 4}}

	specialDrawdown    = []rung{{-0.08, 15}, {-0.06, 12}, {-0.04, 8}, {-0.02, 4}}
	specialCumDrawdown = []rung{{-0.07, 5}, {-0.05, 3}, {-0.03, 2}}
)

// firstBelow returns the delta of the first rung v is strictly below
func firstBelow(v float64, rungs []rung) (float64, bool) {
	for _, r := range rungs {
		if v < r.limit {
			return r.delta, true
		}
	}
	return 0, false
}

// firstAbove returns the delta of the first rung v is strictly above
func firstAbove(v float64, rungs []rung) (float64, bool) {
	for _, r := range rungs {
		if v > r.limit {
			return r.delta, true
		}
	}
	return 0, false
}

// firstAtOrBelow returns the delta of the first rung v is at or below
func firstAtOrBelow(v float64, rungs []rung) (float64, bool) {
	for _, r := range rungs {
		if v <= r.limit {
			return r.delta, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// pricePosition locates the price in its 52-week range, or nil when the
// range is unknown or degenerate.
func pricePosition(s *contracts.MarketSnapshot) *float64 {
	if s.Price == nil || s.W52High == nil || s.W52Low == nil || *s.W52High <= *s.W52Low {
		return nil
	}
	pos := (*s.Price - *s.W52Low) / (*s.W52High - *s.W52Low)
	return &pos
}

// valuationScore computes the valuation component (0-30) from a neutral 15
func valuationScore(s *contracts.MarketSnapshot, cumDD *float64) float64 {
	score := 15.0

	if pos := pricePosition(s); pos != nil {
		if d, ok := firstBelow(*pos, valuationPositionLow); ok {
			score += d
		} else if d, ok := firstAbove(*pos, valuationPositionHigh); ok {
			score += d
		}
	}

	// Cumulative decline from the rolling high makes the engine more
	// sensitive to sustained dips.
	if cumDD != nil {
		if d, ok := firstBelow(*cumDD, valuationCumDrawdown); ok {
			score += d
		}
	}

	if s.DeviationPct != nil {
		if d, ok := firstBelow(*s.DeviationPct, valuationDeviationLow); ok {
			score += d
		} else if d, ok := firstAbove(*s.DeviationPct, valuationDeviationHi); ok {
			score += d
		} else {
			// near the long average
			score += 6
		}
	}

	return clamp(score, 0, contracts.ValuationMax)
}

// trendScore computes the trend component (0-30) from a neutral 15.
// Bearish alignments score higher than bullish ones: the engine buys dips.
func trendScore(s *contracts.MarketSnapshot, cumDD *float64) float64 {
	score := 15.0

	if s.Price != nil && s.MA20 != nil && s.MA50 != nil && s.MA200 != nil {
		price, ma20, ma50, ma200 := *s.Price, *s.MA20, *s.MA50, *s.MA200
		switch {
		case price > ma20 && ma20 > ma50 && ma50 > ma200:
			score += 2 // full bullish stack
		case price < ma20 && ma20 < ma50 && ma50 < ma200:
			score += 5 // full bearish stack
		case price > ma20 && ma20 > ma50:
			score += 3
		case price < ma20 && ma20 < ma50:
			score += 4
		}
	}

	if s.RSI14 != nil {
		if d, ok := firstAtOrBelow(*s.RSI14, trendRSI); ok {
			score += d
		} else {
			score += math.Max(0, (60-*s.RSI14)/20*7)
		}
	}

	if cumDD != nil {
		if d, ok := firstBelow(*cumDD, trendCumDrawdown); ok {
			score += d
		}
	}

	return clamp(score, 0, contracts.TrendMax)
}

// volatilityScore computes the volatility component (0-20) from a neutral 10.
// High volatility is treated as opportunity; the ATR ratio is the fallback
// when the percentile rank is unavailable.
func volatilityScore(s *contracts.MarketSnapshot) float64 {
	score := 10.0

	if s.ATRPercentile != nil {
		if d, ok := firstAbove(*s.ATRPercentile, volatilityPercentile); ok {
			score += d
		} else if *s.ATRPercentile < 0.3 {
			score -= 3 // quiet market, little to capture
		}
	} else if s.ATR20 != nil && s.ATRBaseline != nil && *s.ATRBaseline > 0 {
		ratio := *s.ATR20 / *s.ATRBaseline
		if d, ok := firstAbove(ratio, volatilityRatio); ok {
			score += d
		} else if ratio < 0.8 {
			score -= 2
		}
	}

	return clamp(score, 0, contracts.VolatilityMax)
}

// specialEventScore computes the event component (0-20) from 0
func specialEventScore(s *contracts.MarketSnapshot, cumDD *float64) float64 {
	score := 0.0

	if s.RecentDrawdown != nil {
		if d, ok := firstBelow(*s.RecentDrawdown, specialDrawdown); ok {
			score += d
		}
	}

	if cumDD != nil {
		if d, ok := firstBelow(*cumDD, specialCumDrawdown); ok {
			score += d
		}
	}

	// Volume surge into a decline reads as capitulation
	if s.VolumeSurge != nil && s.RecentDrawdown != nil && *s.RecentDrawdown < 0 {
		surge := *s.VolumeSurge
		if surge > 2.0 {
			score += math.Min(5, math.Trunc(surge*2))
		} else if surge > 1.5 {
			score += math.Min(3, math.Trunc(surge))
		}
	}

	return clamp(score, 0, contracts.SpecialEventMax)
}

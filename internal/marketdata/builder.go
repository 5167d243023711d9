package marketdata

import (
	"time"

	"github.com/wonny/drip/internal/contracts"
)

// BuildSnapshot derives the full indicator snapshot from a candle series.
// Indicators whose window exceeds the series stay nil; an empty series
// yields a snapshot with only the code set.
func BuildSnapshot(code string, series Series, now time.Time) *contracts.MarketSnapshot {
	snapshot := &contracts.MarketSnapshot{
		Code:      code,
		UpdatedAt: now,
	}
	if len(series) == 0 {
		return snapshot
	}

	closes := series.Closes()
	latest := closes[len(closes)-1]
	snapshot.Price = contracts.Float(latest)

	if high, low, ok := rangeHighLow(series, yearWindow); ok {
		snapshot.W52High = contracts.Float(high)
		snapshot.W52Low = contracts.Float(low)
	}

	var ma20, ma50, ma200 float64
	var has20, has50, has200 bool
	if ma20, has20 = sma(closes, maShortWindow); has20 {
		snapshot.MA20 = contracts.Float(ma20)
	}
	if ma50, has50 = sma(closes, maMidWindow); has50 {
		snapshot.MA50 = contracts.Float(ma50)
	}
	if ma200, has200 = sma(closes, maLongWindow); has200 {
		snapshot.MA200 = contracts.Float(ma200)
		if ma200 > 0 {
			snapshot.DeviationPct = contracts.Float(latest/ma200 - 1)
		}
	}
	if has50 && has200 {
		cross := maCross(closes)
		snapshot.MACross = &cross
	}

	if v, ok := rsi(closes, rsiWindow); ok {
		snapshot.RSI14 = contracts.Float(v)
	}

	if atrs := atrSeries(series, atrWindow); len(atrs) > 0 {
		latestATR := atrs[len(atrs)-1]
		snapshot.ATR20 = contracts.Float(latestATR)

		trailing := atrs
		if len(trailing) > yearWindow {
			trailing = trailing[len(trailing)-yearWindow:]
		}
		if m, ok := median(trailing); ok {
			snapshot.ATRBaseline = contracts.Float(m)
		}
		if p, ok := percentileRank(trailing, latestATR); ok {
			snapshot.ATRPercentile = contracts.Float(p)
		}
	}

	if v, ok := recentDrawdown(closes, drawdownWindow); ok {
		snapshot.RecentDrawdown = contracts.Float(v)
	}

	if v, ok := volumeSurge(series.Volumes(), volumeWindow); ok {
		snapshot.VolumeSurge = contracts.Float(v)
	}

	return snapshot
}

// maCross reports a golden or death cross of MA50 through MA200 within the
// recent lookback
func maCross(closes []float64) contracts.MACross {
	end := len(closes) - 1
	before := end - maCrossLookback

	nowMid, ok1 := smaAt(closes, maMidWindow, end)
	nowLong, ok2 := smaAt(closes, maLongWindow, end)
	prevMid, ok3 := smaAt(closes, maMidWindow, before)
	prevLong, ok4 := smaAt(closes, maLongWindow, before)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return contracts.MACrossNone
	}

	switch {
	case prevMid <= prevLong && nowMid > nowLong:
		return contracts.MACrossGolden
	case prevMid >= prevLong && nowMid < nowLong:
		return contracts.MACrossDeath
	default:
		return contracts.MACrossNone
	}
}

package contracts

import "time"

// MACross is the moving-average cross state of a snapshot
type MACross int

const (
	MACrossDeath  MACross = -1
	MACrossNone   MACross = 0
	MACrossGolden MACross = 1
)

// MarketSnapshot is one instrument's indicator snapshot, supplied by the
// market-data collector. Every indicator may be absent; the scoring engine
// treats a nil field as "no contribution", never as an error.
type MarketSnapshot struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`

	Price *float64 `json:"price,omitempty"`

	W52High *float64 `json:"w52_high,omitempty"`
	W52Low  *float64 `json:"w52_low,omitempty"`

	MA20    *float64 `json:"ma_20,omitempty"`
	MA50    *float64 `json:"ma_50,omitempty"`
	MA200   *float64 `json:"ma_200,omitempty"`
	MACross *MACross `json:"ma_cross,omitempty"`

	// Price deviation from MA200, fractional (price/ma200 - 1)
	DeviationPct *float64 `json:"deviation_percentage,omitempty"`

	ATR20         *float64 `json:"atr_20,omitempty"`
	ATRBaseline   *float64 `json:"atr_baseline,omitempty"`   // trailing-year ATR median
	ATRPercentile *float64 `json:"atr_percentile,omitempty"` // rank of ATR20 in trailing year [0,1]

	RSI14 *float64 `json:"rsi_14,omitempty"`

	// Short-window decline from a local high, fractional and <= 0
	RecentDrawdown *float64 `json:"recent_drawdown,omitempty"`

	// Current volume relative to its short-window average
	VolumeSurge *float64 `json:"volume_surge,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Float returns a pointer to v. Convenience for building snapshots.
func Float(v float64) *float64 { return &v }

package contracts

// Sub-score bands. Each component is clamped independently; the four clamped
// components sum to the total after integer reconciliation.
const (
	ValuationMax    = 30.0
	TrendMax        = 30.0
	VolatilityMax   = 20.0
	SpecialEventMax = 20.0
	TotalScoreMax   = 100.0
)

// ScoreComponents carries the raw diagnostics behind a score
type ScoreComponents struct {
	PricePosition      *float64 `json:"price_position,omitempty"` // (price-52wLow)/(52wHigh-52wLow)
	MADeviation        *float64 `json:"ma_deviation,omitempty"`
	RSI14              *float64 `json:"rsi_14,omitempty"`
	RecentDrawdown     *float64 `json:"recent_drawdown,omitempty"`
	CumulativeDrawdown *float64 `json:"cumulative_drawdown,omitempty"`
}

// ScoreResult is the outcome of scoring one snapshot.
// Invariant: 0 <= Total <= 100, each component within its band, and
// ⌊Valuation⌋+⌊Trend⌋+⌊Volatility⌋+⌊SpecialEvent⌋ == ⌊Total⌋.
type ScoreResult struct {
	Code string `json:"code,omitempty"`

	Total        float64 `json:"total_score"`
	Valuation    float64 `json:"valuation_score"`     // 0-30
	Trend        float64 `json:"trend_score"`         // 0-30
	Volatility   float64 `json:"volatility_score"`    // 0-20
	SpecialEvent float64 `json:"special_event_score"` // 0-20

	// IsDefault marks the fixed neutral result returned when no snapshot
	// was available for the instrument.
	IsDefault bool `json:"is_default,omitempty"`

	Components ScoreComponents `json:"score_components"`
}

// DefaultScoreResult is the canonical neutral result for a missing snapshot.
// 45/(15,15,10,5)를 기준 중립값으로 사용
func DefaultScoreResult(code string) ScoreResult {
	return ScoreResult{
		Code:         code,
		Total:        45,
		Valuation:    15,
		Trend:        15,
		Volatility:   10,
		SpecialEvent: 5,
		IsDefault:    true,
	}
}

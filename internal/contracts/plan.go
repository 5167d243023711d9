package contracts

import "time"

// SpecialCondition labels a recommendation funded outside the base allocation
type SpecialCondition string

const (
	ConditionNone    SpecialCondition = ""
	ConditionStrong  SpecialCondition = "strong_buy" // score >= 80, buffer release active
	ConditionProbing SpecialCondition = "probing"    // score in [60,65), supplemental tranche
)

// Recommendation is the per-asset outcome of a planning run
type Recommendation struct {
	Asset Asset `json:"asset"`

	// Sub-scores scaled to coefficient form (score/10) for display
	ValuationCoefficient  float64 `json:"valuation_coefficient"`
	TrendCoefficient      float64 `json:"trend_coefficient"`
	VolatilityCoefficient float64 `json:"volatility_coefficient"`

	Frequency       Cadence `json:"recommended_frequency"`
	FrequencyFactor float64 `json:"frequency_factor"`

	MonthlyAmount float64  `json:"monthly_amount"`
	SingleAmount  float64  `json:"single_amount"`
	Dates         []string `json:"investment_dates"`

	SpecialCondition SpecialCondition `json:"special_condition,omitempty"`
}

// InvestmentPlan is the full output of one planning run.
// ActualInvestmentAmount is reported as-is; a mismatch against the nominal
// budget caused by cadence multipliers is logged, never corrected.
type InvestmentPlan struct {
	ID          string    `json:"id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalMonthlyAmount     float64 `json:"total_monthly_amount"`
	EffectiveMonthlyAmount float64 `json:"effective_monthly_amount"`
	BufferAmount           float64 `json:"buffer_amount"`
	BufferPoolUsage        float64 `json:"buffer_pool_usage"`
	ActualInvestmentAmount float64 `json:"actual_investment_amount"`

	Recommendations []Recommendation `json:"recommendations"`

	// Retired feature; field retained for clients, always 0
	CircuitBreakerLevel int `json:"circuit_breaker_level"`

	Warnings      []string               `json:"warnings"`
	TrendAnalysis map[string]TrendReport `json:"trend_analysis"`
}

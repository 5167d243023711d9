package tuning

import (
	"github.com/wonny/drip/internal/contracts"
)

// Band is one row of the score-band table: score >= MinScore selects it.
// Rows are ordered high to low; the first match wins.
type Band struct {
	MinScore     float64             `yaml:"min_score" json:"min_score"`
	Level        contracts.ScoreBand `yaml:"level" json:"level"`
	Frequency    contracts.Cadence   `yaml:"frequency" json:"frequency"`
	AmountFactor float64             `yaml:"amount_factor" json:"amount_factor"`
	Description  string              `yaml:"description" json:"description"`
}

// Buffer holds the reserve-pool release ratios
type Buffer struct {
	// Fraction of the buffer released when any asset hits the strong-buy
	// threshold
	ExtremeReleaseRatio float64 `yaml:"extreme_release_ratio" json:"extreme_release_ratio"`
	// Probing tranche cap as a fraction of the monthly budget
	ProbingBudgetRatio float64 `yaml:"probing_budget_ratio" json:"probing_budget_ratio"`
	// Hard cap on total buffer consumption as a fraction of the buffer
	UsageCapRatio float64 `yaml:"usage_cap_ratio" json:"usage_cap_ratio"`
}

// Alerts holds the score thresholds that raise plan warnings
type Alerts struct {
	StrongBuy   float64 `yaml:"strong_buy" json:"strong_buy"`
	Buy         float64 `yaml:"buy" json:"buy"`
	Reduce      float64 `yaml:"reduce" json:"reduce"`
	ProbingLow  float64 `yaml:"probing_low" json:"probing_low"`
	ProbingHigh float64 `yaml:"probing_high" json:"probing_high"`
}

// Tuning is the complete set of planner tunables. Defaults are built in;
// a YAML file can override them for backtesting experiments.
// ⭐ SSOT: 전략 튜닝 값은 여기서만 정의
type Tuning struct {
	Bands  []Band                    `yaml:"bands" json:"bands"`
	Events map[contracts.Cadence]int `yaml:"events_per_month" json:"events_per_month"`
	Buffer Buffer                    `yaml:"buffer" json:"buffer"`
	Alerts Alerts                    `yaml:"alerts" json:"alerts"`

	// Retention caps for the per-code history stores
	ScoreHistoryCap int `yaml:"score_history_cap" json:"score_history_cap"`
}

// Default returns the built-in tunables
func Default() *Tuning {
	return &Tuning{
		Bands: []Band{
			{75, contracts.BandExtremeOversold, contracts.CadenceDaily, 1.5,
				"Market deeply oversold: invest daily at 150% of the standard amount"},
			{65, contracts.BandValueZone, contracts.CadenceWeekly, 1.2,
				"Market in the value zone: invest weekly at 120% of the standard amount"},
			{55, contracts.BandMildlyBullish, contracts.CadenceBiweekly, 1.1,
				"Market approaching the value zone: invest biweekly at 110% of the standard amount"},
			{40, contracts.BandNeutral, contracts.CadenceBiweekly, 1.0,
				"Market neutral: invest biweekly at the standard amount"},
			{20, contracts.BandOvervalued, contracts.CadenceMonthly, 0.8,
				"Market overvalued: invest monthly at 80% of the standard amount"},
			{0, contracts.BandExtremeBubble, contracts.CadenceMonthly, 0.5,
				"Market in bubble territory: invest monthly at 50% of the standard amount, or pause"},
		},
		Events: map[contracts.Cadence]int{
			contracts.CadenceDaily:    20,
			contracts.CadenceWeekly:   4,
			contracts.CadenceBiweekly: 2,
			contracts.CadenceMonthly:  1,
		},
		Buffer: Buffer{
			ExtremeReleaseRatio: 0.5,
			ProbingBudgetRatio:  0.15,
			UsageCapRatio:       0.5,
		},
		Alerts: Alerts{
			StrongBuy:   80,
			Buy:         65,
			Reduce:      25,
			ProbingLow:  60,
			ProbingHigh: 65,
		},
		ScoreHistoryCap: 120,
	}
}

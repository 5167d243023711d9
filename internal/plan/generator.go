package plan

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wonny/drip/internal/allocation"
	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/scoring"
	"github.com/wonny/drip/internal/strategy"
	"github.com/wonny/drip/internal/trend"
	"github.com/wonny/drip/internal/tuning"
	"github.com/wonny/drip/pkg/logger"
)

// ErrNoValidAssets is returned when the user configuration carries no assets
var ErrNoValidAssets = errors.New("no valid assets in configuration")

// Generator orchestrates one planning run: score, select, allocate, schedule.
// ⭐ SSOT: 투자 계획 생성은 여기서만
type Generator struct {
	engine    *scoring.Engine
	selector  *strategy.Selector
	allocator *allocation.Allocator
	analyzer  *trend.Analyzer
	scores    *trend.ScoreHistory
	tuning    *tuning.Tuning
	logger    *logger.Logger
	now       func() time.Time
}

// NewGenerator wires a plan generator over the shared history stores
func NewGenerator(
	engine *scoring.Engine,
	selector *strategy.Selector,
	allocator *allocation.Allocator,
	analyzer *trend.Analyzer,
	scores *trend.ScoreHistory,
	t *tuning.Tuning,
	log *logger.Logger,
) *Generator {
	return &Generator{
		engine:    engine,
		selector:  selector,
		allocator: allocator,
		analyzer:  analyzer,
		scores:    scores,
		tuning:    t,
		logger:    log,
		now:       time.Now,
	}
}

// WithClock overrides the generator's clock. Test hook.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces an investment plan from the user configuration and the
// latest market observations. A missing or nil snapshot degrades that asset
// to the default score; it never fails the run.
func (g *Generator) Generate(
	cfg *contracts.UserConfig,
	observations map[string]*contracts.MarketSnapshot,
) (*contracts.InvestmentPlan, error) {
	if cfg == nil || len(cfg.Assets) == 0 {
		return nil, ErrNoValidAssets
	}

	now := g.now()
	budget := cfg.MonthlyInvestment
	alerts := g.tuning.Alerts

	results := make(map[string]contracts.ScoreResult, len(cfg.Assets))
	scores := make(map[string]float64, len(cfg.Assets))
	trendReports := make(map[string]contracts.TrendReport, len(cfg.Assets))
	var warnings []string

	// Assets are walked in configuration order so warnings and
	// recommendations come out deterministic.
	for _, asset := range cfg.Assets {
		result := g.engine.Score(observations[asset.Code])
		if result.Code == "" {
			result.Code = asset.Code
		}
		results[asset.Code] = result
		scores[asset.Code] = result.Total

		g.scores.Append(asset.Code, now, result.Total)
		report := g.analyzer.Analyze(asset.Code)
		trendReports[asset.Code] = report

		switch {
		case result.Total >= alerts.StrongBuy:
			warnings = append(warnings, fmt.Sprintf(
				"%s: score %.1f, extreme oversold. Strong buy signal", asset.Code, result.Total))
		case result.Total >= alerts.Buy:
			warnings = append(warnings, fmt.Sprintf(
				"%s: score %.1f, value zone. Buy signal", asset.Code, result.Total))
		case result.Total <= alerts.Reduce:
			warnings = append(warnings, fmt.Sprintf(
				"%s: score %.1f, overvalued. Consider reducing exposure", asset.Code, result.Total))
		}

		if report.Status == "buying_opportunity" {
			warnings = append(warnings, fmt.Sprintf(
				"%s: score rebounding after a pullback. Potential buying opportunity", asset.Code))
		}
	}

	weights := g.allocator.Adjust(cfg.Assets, scores)

	// Buffer pool accounting. Total consumption, extra release plus probing
	// tranches combined, never exceeds UsageCapRatio of the buffer.
	usageCap := cfg.BufferAmount * g.tuning.Buffer.UsageCapRatio
	bufferUsed := 0.0

	extraFunding := 0.0
	for _, asset := range cfg.Assets {
		if scores[asset.Code] >= alerts.StrongBuy {
			extraFunding = math.Min(
				cfg.BufferAmount*g.tuning.Buffer.ExtremeReleaseRatio,
				usageCap,
			)
			break
		}
	}
	if extraFunding > 0 {
		bufferUsed += extraFunding
		warnings = append(warnings, fmt.Sprintf(
			"Releasing %.2f from the buffer pool on an extreme oversold signal", extraFunding))
	}

	probing := make(map[string]float64)
	for _, asset := range cfg.Assets {
		score := scores[asset.Code]
		if score < alerts.ProbingLow || score >= alerts.ProbingHigh {
			continue
		}

		tranche := math.Min(
			budget*g.tuning.Buffer.ProbingBudgetRatio,
			cfg.BufferAmount*g.tuning.Buffer.UsageCapRatio,
		)
		if remaining := usageCap - bufferUsed; tranche > remaining {
			tranche = math.Max(remaining, 0)
		}

		probing[asset.Code] = tranche
		bufferUsed += tranche
		warnings = append(warnings, fmt.Sprintf(
			"%s: score %.1f approaching the value zone. Allocating a probing tranche of %.2f from the buffer pool",
			asset.Code, score, tranche))
	}

	recommendations := make([]contracts.Recommendation, 0, len(cfg.Assets))
	actual := 0.0

	for _, asset := range cfg.Assets {
		weight, ok := weights[asset.Code]
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"%s: no adjusted weight, skipping", asset.Code))
			continue
		}

		result := results[asset.Code]
		strat := g.selector.Select(result.Total)

		events := g.tuning.Events[strat.Cadence]
		if events <= 0 {
			events = 1
		}

		monthly := budget*weight + probing[asset.Code]
		single := monthly / float64(events)
		if strat.AmountFactor != 1.0 {
			single *= strat.AmountFactor
		}

		condition := contracts.ConditionNone
		if result.Total >= alerts.StrongBuy && extraFunding > 0 {
			// The released buffer is spread over four events per asset
			single += extraFunding * weight / 4
			condition = contracts.ConditionStrong
		} else if _, ok := probing[asset.Code]; ok {
			condition = contracts.ConditionProbing
		}

		dates := Dates(strat.Cadence, now)
		scheduled := single * float64(len(dates))
		actual += scheduled

		recommendations = append(recommendations, contracts.Recommendation{
			Asset:                 asset,
			ValuationCoefficient:  result.Valuation / 10,
			TrendCoefficient:      result.Trend / 10,
			VolatilityCoefficient: result.Volatility / 10,
			Frequency:             strat.Cadence,
			FrequencyFactor:       strat.AmountFactor,
			MonthlyAmount:         scheduled,
			SingleAmount:          single,
			Dates:                 dates,
			SpecialCondition:      condition,
		})
	}

	if len(recommendations) == 0 {
		return nil, ErrNoValidAssets
	}

	if diff := actual - budget; math.Abs(diff) > 0.01 {
		// Cadence multipliers make the scheduled total drift from the nominal
		// budget. Reported, never corrected.
		g.logger.WithFields(map[string]interface{}{
			"budget":    budget,
			"scheduled": actual,
			"diff":      diff,
		}).Info("Scheduled total deviates from the nominal monthly budget")
	}

	plan := &contracts.InvestmentPlan{
		GeneratedAt:            now,
		TotalMonthlyAmount:     budget,
		EffectiveMonthlyAmount: budget,
		BufferAmount:           cfg.BufferAmount,
		BufferPoolUsage:        bufferUsed,
		ActualInvestmentAmount: actual,
		Recommendations:        recommendations,
		CircuitBreakerLevel:    0,
		Warnings:               warnings,
		TrendAnalysis:          trendReports,
	}

	g.logger.WithFields(map[string]interface{}{
		"assets":       len(recommendations),
		"warnings":     len(warnings),
		"buffer_usage": bufferUsed,
	}).Info("Investment plan generated")

	return plan, nil
}

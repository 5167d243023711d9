package scoring

import (
	"math"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/pkg/logger"
)

// Engine converts one instrument's indicator snapshot into a ScoreResult.
// The price history store is injected and owned by the caller, so score
// memory (cumulative-drawdown detection) survives across planning runs.
// ⭐ SSOT: 시장 점수 계산은 이 엔진에서만
type Engine struct {
	history *PriceHistory
	logger  *logger.Logger
}

// NewEngine creates a scoring engine backed by the given price history
func NewEngine(history *PriceHistory, log *logger.Logger) *Engine {
	return &Engine{
		history: history,
		logger:  log,
	}
}

// Score scores a snapshot. A nil snapshot yields the canonical default
// result; any internal fault while scoring is recovered and also yields the
// default, so one bad instrument never aborts a planning run.
func (e *Engine) Score(s *contracts.MarketSnapshot) (result contracts.ScoreResult) {
	if s == nil {
		return contracts.DefaultScoreResult("")
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(map[string]interface{}{
				"code":  s.Code,
				"panic": r,
			}).Error("Scoring fault recovered, using default score")
			result = contracts.DefaultScoreResult(s.Code)
		}
	}()

	if s.Price != nil {
		e.history.Append(s.Code, *s.Price)
	}
	cumDD := e.history.CumulativeDrawdown(s.Code)

	valuation := valuationScore(s, cumDD)
	trend := trendScore(s, cumDD)
	volatility := volatilityScore(s)
	special := specialEventScore(s, cumDD)

	total := clamp(valuation+trend+volatility+special, 0, contracts.TotalScoreMax)

	valuation, trend, volatility, special = Reconcile(
		valuation, trend, volatility, special, int(math.Floor(total)),
	)

	e.logger.WithFields(map[string]interface{}{
		"code":       s.Code,
		"total":      total,
		"valuation":  valuation,
		"trend":      trend,
		"volatility": volatility,
		"special":    special,
	}).Debug("Scored snapshot")

	return contracts.ScoreResult{
		Code:         s.Code,
		Total:        total,
		Valuation:    valuation,
		Trend:        trend,
		Volatility:   volatility,
		SpecialEvent: special,
		Components: contracts.ScoreComponents{
			PricePosition:      pricePosition(s),
			MADeviation:        s.DeviationPct,
			RSI14:              s.RSI14,
			RecentDrawdown:     s.RecentDrawdown,
			CumulativeDrawdown: cumDD,
		},
	}
}

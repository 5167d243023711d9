package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/tuning"
)

func newTestAnalyzer() (*Analyzer, *ScoreHistory) {
	history := NewScoreHistory(120)
	return NewAnalyzer(history, tuning.Default()), history
}

func record(h *ScoreHistory, code string, scores ...float64) {
	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for _, s := range scores {
		h.Append(code, at, s)
		at = at.Add(24 * time.Hour)
	}
}

func TestAnalyzer_InsufficientData(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	record(history, "SPY", 50)

	report := analyzer.Analyze("SPY")

	assert.Equal(t, 1, report.DataPoints)
	assert.Equal(t, "insufficient_data", report.Status)
	assert.Equal(t, contracts.TrendUnknown, report.Direction)
}

func TestAnalyzer_RisingDirection(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	record(history, "SPY", 40, 45, 52)

	report := analyzer.Analyze("SPY")

	assert.Equal(t, contracts.TrendRising, report.Direction)
	assert.Equal(t, 52.0, report.LatestScore)
}

func TestAnalyzer_FallingDirection(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	record(history, "SPY", 60, 52, 45)

	report := analyzer.Analyze("SPY")

	assert.Equal(t, contracts.TrendFalling, report.Direction)
}

func TestAnalyzer_MixedDirection(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	record(history, "SPY", 50, 55, 53)

	report := analyzer.Analyze("SPY")

	assert.Equal(t, contracts.TrendMixed, report.Direction)
}

func TestAnalyzer_BuyingOpportunityAfterPeak(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	// Peak at 62, a flat dip, then a surge to +11 versus the peak
	record(history, "QQQ", 40, 62, 50, 50, 73)

	report := analyzer.Analyze("QQQ")

	assert.Equal(t, contracts.TurnPeak, report.Turn)
	assert.Equal(t, "buying_opportunity", report.Status)
	assert.InDelta(t, 11.0, report.ScoreDelta, 1e-9)
	assert.Equal(t, 3, report.StepsSinceTurn)
}

func TestAnalyzer_StabilizingAfterTrough(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	// Trough at 35 then a modest recovery: +7 since the trough
	record(history, "GLD", 50, 44, 35, 38, 42)

	report := analyzer.Analyze("GLD")

	assert.Equal(t, contracts.TurnTrough, report.Turn)
	assert.Equal(t, "stabilizing", report.Status)
	assert.InDelta(t, 7.0, report.ScoreDelta, 1e-9)
	assert.Equal(t, 2, report.StepsSinceTurn)
}

func TestAnalyzer_BandFallbackWhenNoNarrative(t *testing.T) {
	analyzer, history := newTestAnalyzer()
	// Monotone series: no turning point, latest maps to the value zone
	record(history, "IWM", 50, 55, 60, 63, 68)

	report := analyzer.Analyze("IWM")

	assert.Equal(t, string(contracts.BandValueZone), report.Status)
	assert.NotEmpty(t, report.Suggestion)
}

func TestScoreHistory_CapEvictsOldest(t *testing.T) {
	history := NewScoreHistory(5)
	record(history, "SPY", 10, 20, 30, 40, 50, 60, 70)

	points := history.Points("SPY")

	assert.Len(t, points, 5)
	assert.Equal(t, 30.0, points[0].Score)
	assert.Equal(t, 70.0, points[4].Score)
}

func TestScoreHistory_Hydrate(t *testing.T) {
	history := NewScoreHistory(3)
	at := time.Now()
	history.Hydrate("SPY", []contracts.ScorePoint{
		{At: at, Score: 10}, {At: at, Score: 20}, {At: at, Score: 30}, {At: at, Score: 40},
	})

	points := history.Points("SPY")

	assert.Len(t, points, 3)
	assert.Equal(t, 20.0, points[0].Score)
}

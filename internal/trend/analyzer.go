package trend

import (
	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/tuning"
)

// Narrative thresholds over the score series
const (
	pullbackRiseMin = 10.0 // rise since a peak that reads as a buying window
	recoveryRiseMin = 5.0  // rise since a trough that reads as stabilization
)

// Analyzer derives a qualitative narrative from an instrument's score
// history. The history store is injected and owned by the caller.
// ⭐ SSOT: 점수 추세 분석은 여기서만
type Analyzer struct {
	history *ScoreHistory
	bands   []tuning.Band
}

// NewAnalyzer creates a trend analyzer over the given history store
func NewAnalyzer(history *ScoreHistory, t *tuning.Tuning) *Analyzer {
	return &Analyzer{
		history: history,
		bands:   t.Bands,
	}
}

// Analyze builds the trend report for code from its recorded score history
func (a *Analyzer) Analyze(code string) contracts.TrendReport {
	points := a.history.Points(code)

	report := contracts.TrendReport{
		Code:       code,
		DataPoints: len(points),
		Direction:  contracts.TrendUnknown,
	}

	if len(points) > 0 {
		report.LatestScore = points[len(points)-1].Score
	}

	if len(points) < 2 {
		report.Status = "insufficient_data"
		report.Suggestion = "Not enough score history yet; keep collecting observations"
		return report
	}

	latest := report.LatestScore

	if len(points) >= 3 {
		report.Direction = lastThreeDirection(points)
	}

	if len(points) >= 5 {
		if kind, idx, ok := latestTurningPoint(points); ok {
			report.Turn = kind
			report.StepsSinceTurn = len(points) - 1 - idx
			report.ScoreDelta = latest - points[idx].Score

			if kind == contracts.TurnPeak && report.ScoreDelta >= pullbackRiseMin {
				report.Status = "buying_opportunity"
				report.Suggestion = "Score has climbed sharply since the last peak; consider front-loading scheduled buys"
				return report
			}
			if kind == contracts.TurnTrough && report.ScoreDelta >= recoveryRiseMin {
				report.Status = "stabilizing"
				report.Suggestion = "Score is recovering from its trough; hold the current schedule"
				return report
			}
		}
	}

	// No turning-point narrative: fall back to the score band
	report.Status, report.Suggestion = a.bandStatus(latest)
	return report
}

// lastThreeDirection classifies the last three points as monotonically
// rising or falling
func lastThreeDirection(points []contracts.ScorePoint) contracts.TrendDirection {
	n := len(points)
	a, b, c := points[n-3].Score, points[n-2].Score, points[n-1].Score

	switch {
	case a < b && b < c:
		return contracts.TrendRising
	case a > b && b > c:
		return contracts.TrendFalling
	default:
		return contracts.TrendMixed
	}
}

// latestTurningPoint scans backward for the most recent local extremum.
// The endpoints are never extrema; idx is the position in the series.
func latestTurningPoint(points []contracts.ScorePoint) (contracts.TurnKind, int, bool) {
	for i := len(points) - 2; i >= 1; i-- {
		prev, cur, next := points[i-1].Score, points[i].Score, points[i+1].Score
		if cur > prev && cur > next {
			return contracts.TurnPeak, i, true
		}
		if cur < prev && cur < next {
			return contracts.TurnTrough, i, true
		}
	}
	return "", 0, false
}

// bandStatus maps the latest score to its band for a default narrative
func (a *Analyzer) bandStatus(score float64) (string, string) {
	for _, band := range a.bands {
		if score >= band.MinScore {
			return string(band.Level), band.Description
		}
	}
	last := a.bands[len(a.bands)-1]
	return string(last.Level), last.Description
}

package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/tuning"
)

func TestSelector_Select_Bands(t *testing.T) {
	selector := NewSelector(tuning.Default())

	tests := []struct {
		name    string
		score   float64
		band    contracts.ScoreBand
		cadence contracts.Cadence
		factor  float64
	}{
		{"extreme oversold at threshold", 75, contracts.BandExtremeOversold, contracts.CadenceDaily, 1.5},
		{"extreme oversold high", 80, contracts.BandExtremeOversold, contracts.CadenceDaily, 1.5},
		{"just below extreme oversold", 74.999, contracts.BandValueZone, contracts.CadenceWeekly, 1.2},
		{"value zone", 65, contracts.BandValueZone, contracts.CadenceWeekly, 1.2},
		{"mildly bullish", 55, contracts.BandMildlyBullish, contracts.CadenceBiweekly, 1.1},
		{"neutral", 40, contracts.BandNeutral, contracts.CadenceBiweekly, 1.0},
		{"neutral upper edge", 54.999, contracts.BandNeutral, contracts.CadenceBiweekly, 1.0},
		{"overvalued", 20, contracts.BandOvervalued, contracts.CadenceMonthly, 0.8},
		{"extreme bubble", 10, contracts.BandExtremeBubble, contracts.CadenceMonthly, 0.5},
		{"floor", 0, contracts.BandExtremeBubble, contracts.CadenceMonthly, 0.5},
		{"ceiling", 100, contracts.BandExtremeOversold, contracts.CadenceDaily, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := selector.Select(tt.score)

			assert.Equal(t, tt.band, result.Band)
			assert.Equal(t, tt.cadence, result.Cadence)
			assert.Equal(t, tt.factor, result.AmountFactor)
			assert.Equal(t, tt.score, result.Score)
			assert.NotEmpty(t, result.Description)
		})
	}
}

func TestSelector_Select_TotalOverRange(t *testing.T) {
	selector := NewSelector(tuning.Default())

	for score := 0.0; score <= 100.0; score += 0.25 {
		result := selector.Select(score)
		assert.True(t, result.Cadence.Valid(), "score %v produced invalid cadence", score)
		assert.NotEmpty(t, result.Band)
		assert.Greater(t, result.AmountFactor, 0.0)
	}
}

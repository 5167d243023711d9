package strategy

import (
	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/tuning"
)

// Selector maps a market score to an investment strategy. It is a pure,
// total function over [0,100]: bands are half-open, evaluated high to low,
// first match wins.
// ⭐ SSOT: 점수 → 전략 매핑은 여기서만
type Selector struct {
	bands []tuning.Band
}

// NewSelector creates a selector from a band table
func NewSelector(t *tuning.Tuning) *Selector {
	return &Selector{bands: t.Bands}
}

// Select returns the strategy for a score
func (s *Selector) Select(score float64) contracts.Strategy {
	for _, band := range s.bands {
		if score >= band.MinScore {
			return contracts.Strategy{
				Score:        score,
				Band:         band.Level,
				Cadence:      band.Frequency,
				AmountFactor: band.AmountFactor,
				Description:  band.Description,
			}
		}
	}

	// Scores below the lowest band boundary (including negatives from
	// defensive callers) fall into the last band.
	last := s.bands[len(s.bands)-1]
	return contracts.Strategy{
		Score:        score,
		Band:         last.Level,
		Cadence:      last.Frequency,
		AmountFactor: last.AmountFactor,
		Description:  last.Description,
	}
}

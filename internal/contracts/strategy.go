package contracts

// Cadence is the scheduling frequency of investment events
type Cadence string

const (
	CadenceDaily    Cadence = "daily"
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// Valid reports whether c is one of the four known cadences
func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	}
	return false
}

// ScoreBand is the qualitative label of a score range
type ScoreBand string

const (
	BandExtremeOversold ScoreBand = "extreme_oversold" // >= 75
	BandValueZone       ScoreBand = "value_zone"       // 65-74
	BandMildlyBullish   ScoreBand = "mildly_bullish"   // 55-64
	BandNeutral         ScoreBand = "neutral"          // 40-54
	BandOvervalued      ScoreBand = "overvalued"       // 20-39
	BandExtremeBubble   ScoreBand = "extreme_bubble"   // < 20
)

// Strategy is the cadence and sizing decision derived from a score
type Strategy struct {
	Score        float64   `json:"score"`
	Band         ScoreBand `json:"score_level"`
	Cadence      Cadence   `json:"frequency"`
	AmountFactor float64   `json:"amount_factor"`
	Description  string    `json:"description"`
}

package contracts

import "time"

// ScorePoint is one (timestamp, score) observation in an instrument's history
type ScorePoint struct {
	At    time.Time `json:"at"`
	Score float64   `json:"score"`
}

// TrendDirection is the short-horizon direction of the score series
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendMixed   TrendDirection = "mixed"
	TrendUnknown TrendDirection = "unknown"
)

// TurnKind classifies the most recent turning point in the score series
type TurnKind string

const (
	TurnPeak   TurnKind = "peak"   // local maximum, possible pullback start
	TurnTrough TurnKind = "trough" // local minimum, possible recovery start
)

// TrendReport is the qualitative narrative over an instrument's score history
type TrendReport struct {
	Code        string         `json:"code"`
	DataPoints  int            `json:"data_points"`
	LatestScore float64        `json:"latest_score,omitempty"`
	Direction   TrendDirection `json:"direction"`

	// Turning point, present with >= 5 data points when one is found
	Turn           TurnKind `json:"turn,omitempty"`
	StepsSinceTurn int      `json:"steps_since_turn,omitempty"`
	ScoreDelta     float64  `json:"score_delta,omitempty"`

	Status     string `json:"status"`
	Suggestion string `json:"suggestion"`
}

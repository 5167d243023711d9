package trend

import (
	"sync"
	"time"

	"github.com/wonny/drip/internal/contracts"
)

// ScoreHistory is an injected, process-lifetime store of (timestamp, score)
// points per instrument code. The cap bounds memory under long-running
// operation; per-code appends are serialized by the store's lock.
// ⭐ SSOT: 점수 히스토리는 이 저장소에서만 관리
type ScoreHistory struct {
	mu     sync.Mutex
	cap    int
	points map[string][]contracts.ScorePoint
}

// NewScoreHistory creates an empty score history bounded at cap points per code
func NewScoreHistory(cap int) *ScoreHistory {
	if cap < 2 {
		cap = 2
	}
	return &ScoreHistory{
		cap:    cap,
		points: make(map[string][]contracts.ScorePoint),
	}
}

// Append records a score for code, evicting the oldest point beyond the cap
func (h *ScoreHistory) Append(code string, at time.Time, score float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	series := h.points[code]
	if len(series) >= h.cap {
		series = series[1:]
	}
	h.points[code] = append(series, contracts.ScorePoint{At: at, Score: score})
}

// Hydrate replaces the series for code, oldest first. Used to reload
// persisted history on startup.
func (h *ScoreHistory) Hydrate(code string, series []contracts.ScorePoint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(series) > h.cap {
		series = series[len(series)-h.cap:]
	}
	h.points[code] = append([]contracts.ScorePoint(nil), series...)
}

// Points returns a copy of the series for code, oldest first
func (h *ScoreHistory) Points(code string) []contracts.ScorePoint {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]contracts.ScorePoint(nil), h.points[code]...)
}

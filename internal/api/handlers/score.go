package handlers

import (
	"net/http"
	"sort"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/scoring"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/pkg/logger"
)

// ScoreHandler handles the advisory scoring endpoint. Each request scores
// the stored snapshots with a fresh engine, so reads never feed the planner's
// cumulative-drawdown memory.
type ScoreHandler struct {
	snapshots *store.SnapshotRepository
	logger    *logger.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(snapshots *store.SnapshotRepository, log *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		snapshots: snapshots,
		logger:    log,
	}
}

// GetAll scores every stored snapshot
// GET /api/scores
func (h *ScoreHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshots.All(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshots for scoring")
		respondError(w, http.StatusInternalServerError, "Failed to compute scores")
		return
	}

	engine := scoring.NewEngine(scoring.NewPriceHistory(), h.logger)

	codes := make([]string, 0, len(snapshots))
	for code := range snapshots {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	results := make([]contracts.ScoreResult, 0, len(codes))
	for _, code := range codes {
		results = append(results, engine.Score(snapshots[code]))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    results,
	})
}

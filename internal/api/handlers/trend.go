package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/drip/internal/trend"
	"github.com/wonny/drip/pkg/logger"
)

// TrendHandler handles the score-trend endpoint
type TrendHandler struct {
	analyzer *trend.Analyzer
	logger   *logger.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(analyzer *trend.Analyzer, log *logger.Logger) *TrendHandler {
	return &TrendHandler{
		analyzer: analyzer,
		logger:   log,
	}
}

// Get returns the trend report for one instrument
// GET /api/trend/{code}
func (h *TrendHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		respondError(w, http.StatusBadRequest, "instrument code is required")
		return
	}

	report := h.analyzer.Analyze(code)
	if report.DataPoints == 0 {
		respondError(w, http.StatusNotFound, "No score history for "+code)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    report,
	})
}

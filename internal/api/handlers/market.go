package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/drip/internal/plan"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/pkg/logger"
)

// MarketHandler handles market data API endpoints
type MarketHandler struct {
	snapshots *store.SnapshotRepository
	service   *plan.Service
	logger    *logger.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(snapshots *store.SnapshotRepository, service *plan.Service, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		snapshots: snapshots,
		service:   service,
		logger:    log,
	}
}

// GetAll returns the latest stored snapshot for every instrument
// GET /api/market-data
func (h *MarketHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshots.All(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshots")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve market data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    snapshots,
	})
}

// Get returns the latest stored snapshot for one instrument
// GET /api/market-data/{code}
func (h *MarketHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		respondError(w, http.StatusBadRequest, "instrument code is required")
		return
	}

	snapshot, err := h.snapshots.Get(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No market data for "+code)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Error("Failed to load snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve market data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    snapshot,
	})
}

// Refresh fetches fresh snapshots for every configured asset
// POST /api/market-data/refresh
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.service.Refresh(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No configuration saved yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Market data refresh failed")
		respondError(w, http.StatusInternalServerError, "Failed to refresh market data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"refreshed": len(snapshots),
		},
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wonny/drip/internal/plan"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/pkg/logger"
)

// PlanHandler handles investment plan API endpoints
// ⭐ SSOT: 계획 API 핸들러는 이 구조체에서만
type PlanHandler struct {
	service *plan.Service
	plans   *store.PlanRepository
	logger  *logger.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(service *plan.Service, plans *store.PlanRepository, log *logger.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		plans:   plans,
		logger:  log,
	}
}

// List returns recent plans, newest first
// GET /api/plans?limit=20
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	plans, err := h.plans.List(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list plans")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    plans,
	})
}

// Latest returns the most recently generated plan
// GET /api/plans/latest
func (h *PlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.service.LatestPlan(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No plan generated yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest plan")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve latest plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    latest,
	})
}

// Generate runs a full planning cycle and persists the result
// POST /api/plans/generate
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	generated, err := h.service.GeneratePlan(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No configuration saved yet")
		return
	}
	if errors.Is(err, plan.ErrNoValidAssets) {
		respondError(w, http.StatusBadRequest, "Configuration carries no valid assets")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Plan generation failed")
		respondError(w, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    generated,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/internal/plan"
	"github.com/wonny/drip/internal/store"
	"github.com/wonny/drip/pkg/logger"
)

// ConfigHandler handles user configuration API endpoints
// ⭐ SSOT: 사용자 설정 API 핸들러는 이 구조체에서만
type ConfigHandler struct {
	configs *store.ConfigRepository
	logger  *logger.Logger
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configs *store.ConfigRepository, log *logger.Logger) *ConfigHandler {
	return &ConfigHandler{
		configs: configs,
		logger:  log,
	}
}

// Get returns the current planning configuration
// GET /api/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configs.Get(r.Context(), plan.DefaultUserID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No configuration saved yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load user config")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve configuration")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    cfg,
	})
}

// Save replaces the planning configuration
// POST /api/config
func (h *ConfigHandler) Save(w http.ResponseWriter, r *http.Request) {
	var cfg contracts.UserConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid configuration payload")
		return
	}

	if cfg.MonthlyInvestment <= 0 {
		respondError(w, http.StatusBadRequest, "monthly_investment must be positive")
		return
	}
	if cfg.BufferAmount < 0 {
		respondError(w, http.StatusBadRequest, "buffer_amount must not be negative")
		return
	}
	if len(cfg.Assets) == 0 {
		respondError(w, http.StatusBadRequest, "at least one asset is required")
		return
	}
	for _, asset := range cfg.Assets {
		if asset.Code == "" {
			respondError(w, http.StatusBadRequest, "every asset needs a code")
			return
		}
	}
	cfg.UserID = plan.DefaultUserID

	if err := h.configs.Save(r.Context(), &cfg); err != nil {
		h.logger.WithError(err).Error("Failed to save user config")
		respondError(w, http.StatusInternalServerError, "Failed to save configuration")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"monthly_investment": cfg.MonthlyInvestment,
		"assets":             len(cfg.Assets),
	}).Info("User configuration updated")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    cfg,
	})
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/drip/internal/api/handlers"
	"github.com/wonny/drip/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	configHandler *handlers.ConfigHandler,
	marketHandler *handlers.MarketHandler,
	scoreHandler *handlers.ScoreHandler,
	trendHandler *handlers.TrendHandler,
	planHandler *handlers.PlanHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// User configuration
	api.HandleFunc("/config", configHandler.Get).Methods("GET")
	api.HandleFunc("/config", configHandler.Save).Methods("POST")

	// Market data
	api.HandleFunc("/market-data", marketHandler.GetAll).Methods("GET")
	api.HandleFunc("/market-data/refresh", marketHandler.Refresh).Methods("POST")
	api.HandleFunc("/market-data/{code}", marketHandler.Get).Methods("GET")

	// Scoring and trend
	api.HandleFunc("/scores", scoreHandler.GetAll).Methods("GET")
	api.HandleFunc("/trend/{code}", trendHandler.Get).Methods("GET")

	// Investment plans
	api.HandleFunc("/plans", planHandler.List).Methods("GET")
	api.HandleFunc("/plans/latest", planHandler.Latest).Methods("GET")
	api.HandleFunc("/plans/generate", planHandler.Generate).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "drip-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"sda-backend/internal/health"
	"sda-backend/internal/monitoring"
)

type HealthHandler struct {
	Checker   *health.HealthChecker
	Collector *monitoring.Collector
}

func NewHealthHandler(checker *health.HealthChecker, collector *monitoring.Collector) *HealthHandler {
	return &HealthHandler{Checker: checker, Collector: collector}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

// Ready reports whether the service can take traffic. Only the database
// matters here; the cache is optional.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Database.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status.Database.Status})
}

// Detailed combines the health check with the full system stats payload
func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	stats := h.Collector.Collect()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"health": status,
		"system": stats,
	})
}

// SystemStats serves host and database metrics for the admin screen
func (h *HealthHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	stats := h.Collector.Collect()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

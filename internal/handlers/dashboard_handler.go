package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sda-backend/internal/cache"
	"sda-backend/internal/services"
	"sda-backend/internal/timeutil"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// parseRef reads the optional ?date= query; defaults to today
func parseRef(r *http.Request) (time.Time, error) {
	if d := r.URL.Query().Get("date"); d != "" {
		return timeutil.ParseDay(d)
	}
	return timeutil.Now(), nil
}

// GetDashboard serves the KPI payload for ?scope=my|others and an
// optional ?date= reference day. Cached for 5 minutes per scope and day.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = services.ScopeMy
	}
	ref, err := parseRef(r)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	cacheKey := fmt.Sprintf(cache.DashboardKeyFmt, scope, timeutil.FormatDay(ref))
	if data, ok := cache.GetCached(context.Background(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	m, err := h.Service.GetDashboard(context.Background(), scope, ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(context.Background(), cacheKey, payload, 5*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// GetDaySummary serves the record list and revenue for one calendar day
func (h *DashboardHandler) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("date")
	if day == "" {
		day = timeutil.FormatDay(timeutil.Now())
	}

	summary, err := h.Service.GetDaySummary(context.Background(), day)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

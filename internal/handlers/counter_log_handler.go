package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"sda-backend/internal/models"
	"sda-backend/internal/services"
	"sda-backend/internal/timeutil"
)

type CounterLogHandler struct {
	Service *services.CounterService
}

func NewCounterLogHandler(s *services.CounterService) *CounterLogHandler {
	return &CounterLogHandler{Service: s}
}

func (h *CounterLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.List(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

func (h *CounterLogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCounterLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	l, err := h.Service.Create(context.Background(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(l)
}

func (h *CounterLogHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(context.Background(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Log not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDaySummary serves per-category totals for ?date= (defaults to today)
func (h *CounterLogHandler) GetDaySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = timeutil.FormatDay(timeutil.Now())
	}

	summary, err := h.Service.DaySummary(context.Background(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

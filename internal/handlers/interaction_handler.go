package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"sda-backend/internal/cache"
	"sda-backend/internal/metrics"
	"sda-backend/internal/models"
	"sda-backend/internal/services"
)

type InteractionHandler struct {
	Service *services.InteractionService
}

func NewInteractionHandler(s *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{Service: s}
}

func (h *InteractionHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *InteractionHandler) GetInteraction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.Service.Get(context.Background(), id)
	if err != nil {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *InteractionHandler) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.Service.Create(context.Background(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.InteractionsCreated.WithLabelValues(rec.Type).Inc()
	cache.InvalidateMetricCaches(context.Background())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

func (h *InteractionHandler) UpdateInteraction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.Service.Update(context.Background(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cache.InvalidateMetricCaches(context.Background())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *InteractionHandler) DeleteInteraction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(context.Background(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.InvalidateMetricCaches(context.Background())

	w.WriteHeader(http.StatusNoContent)
}

// GetMeta returns the fixed picklists the entry forms use
func (h *InteractionHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"categories": models.ProductCategories,
		"brands":     models.Brands,
		"interaction_types": []string{
			models.TypeSale, models.TypeEnquiry, models.TypeLeave,
		},
		"leave_types": []string{
			models.LeaveWeekOff, models.LeaveSick, models.LeaveNone,
		},
	})
}

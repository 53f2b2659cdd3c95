package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"sda-backend/internal/cache"
	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
)

type ProfileHandler struct {
	Repo *repositories.ProfileRepository
}

func NewProfileHandler(repo *repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{Repo: repo}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Repo.Get(context.Background())
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateProfile replaces the display fields wholesale. Auth fields are
// untouched.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if profile.Name == "" || profile.EmpID == "" {
		http.Error(w, "name and emp_id are required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateProfile(context.Background(), &profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Targets feed the cached dashboard payloads
	cache.InvalidateMetricCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

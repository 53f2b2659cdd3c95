package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"sda-backend/internal/repositories"
	"sda-backend/internal/services"
	"sda-backend/pkg/utils"
)

type TOTPHandler struct {
	Service     *services.TOTPService
	ProfileRepo *repositories.ProfileRepository
}

func NewTOTPHandler(service *services.TOTPService, profileRepo *repositories.ProfileRepository) *TOTPHandler {
	return &TOTPHandler{Service: service, ProfileRepo: profileRepo}
}

// Setup generates a fresh TOTP secret and QR code
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileRepo.Get(context.Background())
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	resp, err := h.Service.GenerateSetup(context.Background(), profile)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// Verify checks the first code and enables 2FA
func (h *TOTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		utils.RespondError(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := h.Service.VerifyAndEnable(context.Background(), req.Code); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// Disable turns 2FA off after verifying the current code
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		utils.RespondError(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := h.Service.Disable(context.Background(), req.Code); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"enabled": false})
}

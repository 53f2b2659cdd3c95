package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"sda-backend/internal/auth"
	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
	"sda-backend/internal/services"
)

type AuthHandler struct {
	ProfileRepo *repositories.ProfileRepository
	JWTManager  *auth.JWTManager
	TOTPService *services.TOTPService
}

func NewAuthHandler(profileRepo *repositories.ProfileRepository, jwtManager *auth.JWTManager, totpService *services.TOTPService) *AuthHandler {
	return &AuthHandler{
		ProfileRepo: profileRepo,
		JWTManager:  jwtManager,
		TOTPService: totpService,
	}
}

// Register creates the associate profile and sets the login PIN. Only one
// profile exists; registering again is rejected.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Profile.Name == "" || req.Profile.EmpID == "" {
		http.Error(w, "name and emp_id are required", http.StatusBadRequest)
		return
	}
	if len(req.PIN) < 4 {
		http.Error(w, "PIN must be at least 4 digits", http.StatusBadRequest)
		return
	}

	if _, err := h.ProfileRepo.Get(context.Background()); err == nil {
		http.Error(w, "Account already registered", http.StatusConflict)
		return
	}

	hash, err := auth.HashPIN(req.PIN)
	if err != nil {
		http.Error(w, "Failed to hash PIN", http.StatusInternalServerError)
		return
	}
	profile := req.Profile
	profile.PINHash = hash

	if err := h.ProfileRepo.Save(context.Background(), &profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := h.JWTManager.GenerateToken(&profile)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

// Login authenticates with employee ID and PIN. When 2FA is enabled the
// response carries a short-lived temp token instead of a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.ProfileRepo.Get(context.Background())
	if err != nil || profile.EmpID != req.EmpID {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if !auth.VerifyPIN(profile.PINHash, req.PIN) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if profile.TOTPEnabled {
		tempToken, err := h.JWTManager.GenerateTempToken(profile)
		if err != nil {
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"requires_2fa": true,
			"temp_token":   tempToken,
		})
		return
	}

	token, err := h.JWTManager.GenerateToken(profile)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

// Verify2FA exchanges a temp token plus a TOTP code for a session token
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	claims, err := h.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	ok, err := h.TOTPService.Verify(context.Background(), req.Code)
	if err != nil || !ok {
		http.Error(w, "Invalid TOTP code", http.StatusUnauthorized)
		return
	}

	profile, err := h.ProfileRepo.Get(context.Background())
	if err != nil || profile.EmpID != claims.EmpID {
		http.Error(w, "Account not found", http.StatusUnauthorized)
		return
	}

	token, err := h.JWTManager.GenerateToken(profile)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

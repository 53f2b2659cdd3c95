package middleware

import (
	"context"
	"net/http"
	"strings"

	"sda-backend/internal/auth"
	"sda-backend/internal/repositories"
)

type contextKey string

const EmpIDKey contextKey = "emp_id"
const NameKey contextKey = "name"

type AuthMiddleware struct {
	jwtManager  *auth.JWTManager
	profileRepo *repositories.ProfileRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, profileRepo *repositories.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		profileRepo: profileRepo,
	}
}

// Authenticate is a middleware that validates JWT tokens. The token must
// belong to the registered associate.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Check the profile still exists and matches the token
		profile, err := m.profileRepo.Get(r.Context())
		if err != nil || profile.EmpID != claims.EmpID {
			http.Error(w, "Account not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), EmpIDKey, profile.EmpID)
		ctx = context.WithValue(ctx, NameKey, profile.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetEmpIDFromContext extracts the employee ID from request context
func GetEmpIDFromContext(ctx context.Context) (string, bool) {
	empID, ok := ctx.Value(EmpIDKey).(string)
	return empID, ok
}

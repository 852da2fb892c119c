package middleware

import (
	"context"
	"net/http"
	"strings"

	"eduagri-backend/internal/token"
	"eduagri-backend/utils/response"
)

type contextKey string

const UserContextKey contextKey = "user"

type AuthMiddleware struct {
	issuer *token.Issuer
}

func NewAuthMiddleware(issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth verifies the bearer token and injects the verified claims
// into the request context. The wrapped handler never runs on failure.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			response.Error(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := m.issuer.Verify(tokenString)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r.Context())
		if claims == nil || claims.Role != "admin" {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func GetUserFromContext(ctx context.Context) *token.Claims {
	claims, ok := ctx.Value(UserContextKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

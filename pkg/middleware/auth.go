package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fennwick/brasserie/pkg/auth"
	"github.com/fennwick/brasserie/pkg/response"
)

// identityKey is the unexported context key holding the authenticated claims.
type identityKey struct{}

// Auth validates the Bearer token, rejects revoked tokens, and stores the
// claims in the request context for ClaimsFromCtx / StaffIDFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			response.Error(w, http.StatusUnauthorized, "Authentication credentials were not provided")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if auth.IsRevoked(r.Context(), claims) {
			response.Error(w, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims, or nil outside Auth.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(identityKey{}).(*auth.Claims)
	return claims
}

// StaffIDFromCtx returns the authenticated staff ID, or 0 outside Auth.
func StaffIDFromCtx(ctx context.Context) uint {
	if claims := ClaimsFromCtx(ctx); claims != nil {
		return claims.StaffID
	}
	return 0
}

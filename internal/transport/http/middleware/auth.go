package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/storefront-api/internal/application/session"
	"github.com/storefront-api/internal/domain"
)

type contextKey string

const SessionKey contextKey = "session"

// Auth returns middleware that validates the Bearer session token and injects
// the decoded payload into context. The token is the unsigned credential
// minted by the OTP exchange; see the session service for its limits.
func Auth(svc session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			payload, err := svc.Validate(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired session token")
				return
			}
			ctx := context.WithValue(r.Context(), SessionKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the validated session payload from the request context.
func SessionFromContext(ctx context.Context) (*domain.SessionPayload, bool) {
	p, ok := ctx.Value(SessionKey).(*domain.SessionPayload)
	return p, ok
}

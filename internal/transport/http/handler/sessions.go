package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/storefront-api/internal/application/session"
	"github.com/storefront-api/internal/transport/http/middleware"
)

// SessionHandler handles session-token validation endpoints.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Validate checks a session token supplied either in the body or as a Bearer
// header. All validation failures surface as 401 with valid=false; only a
// missing token is a 400.
func (h *SessionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionToken string `json:"sessionToken"`
	}
	// Body is optional when the header carries the token.
	_ = json.NewDecoder(r.Body).Decode(&body)

	token := body.SessionToken
	if token == "" {
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		writeError(w, http.StatusBadRequest, "Session token is required")
		return
	}

	payload, err := h.svc.Validate(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, SessionEnvelope{
			Success: false,
			Message: err.Error(),
			Valid:   false,
		})
		return
	}

	writeJSON(w, http.StatusOK, SessionEnvelope{
		Success: true,
		Message: "Session is valid",
		Valid:   true,
		Data:    payload,
	})
}

// Current echoes the session injected by the auth middleware. Guarded route.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	payload, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{
		Success: true,
		Message: "Session is valid",
		Valid:   true,
		Data:    payload,
	})
}

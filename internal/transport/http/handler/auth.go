package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/storefront-api/internal/infrastructure/google"
)

// IdentityVerifier verifies third-party ID tokens. Implemented by the Google
// verifier; mocked in tests.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

// AuthHandler handles identity-provider token verification.
type AuthHandler struct {
	verifier IdentityVerifier
}

func NewAuthHandler(verifier IdentityVerifier) *AuthHandler {
	return &AuthHandler{verifier: verifier}
}

func (h *AuthHandler) VerifyGoogle(w http.ResponseWriter, r *http.Request) {
	if h.verifier == nil {
		writeError(w, http.StatusInternalServerError, "identity provider not configured")
		return
	}
	var body struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.IDToken == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}

	payload, err := h.verifier.Verify(r.Context(), body.IDToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, GoogleAuthEnvelope{
		Success: true,
		Message: "Token is valid",
		User:    payload,
	})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/storefront-api/internal/application/email"
	"github.com/storefront-api/internal/pkg/validate"
)

// EmailHandler handles the transactional-mail endpoint.
type EmailHandler struct {
	svc email.Service
}

func NewEmailHandler(svc email.Service) *EmailHandler {
	return &EmailHandler{svc: svc}
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req email.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Send(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "Email sent successfully"})
}

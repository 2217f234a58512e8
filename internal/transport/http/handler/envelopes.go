package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storefront-api/internal/application/payment"
	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/infrastructure/google"
)

// MessageEnvelope is the generic response wrapper. Every endpoint reports a
// success flag plus a human-readable message.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SendOTPEnvelope wraps /otp/send responses. OTP is echoed back only in
// development environments so the frontend can be tested without an SMS sink.
type SendOTPEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
	OTP       string `json:"otp,omitempty"`
}

// VerifyOTPEnvelope wraps /otp/verify responses.
type VerifyOTPEnvelope struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SessionToken string `json:"sessionToken,omitempty"`
	Verified     bool   `json:"verified"`
	Identifier   string `json:"identifier,omitempty"`
}

// SessionEnvelope wraps /otp/validate-session responses.
type SessionEnvelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Valid   bool                   `json:"valid"`
	Data    *domain.SessionPayload `json:"data,omitempty"`
}

// OrderEnvelope wraps order-creation responses. KeyID is returned so the
// frontend can open checkout without a second config round trip.
type OrderEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Order   *payment.Order `json:"order,omitempty"`
	KeyID   string         `json:"key_id,omitempty"`
}

// PaymentVerifyEnvelope wraps checkout signature verification responses.
type PaymentVerifyEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"payment_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
}

// GoogleAuthEnvelope wraps identity-provider verification responses.
type GoogleAuthEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *google.Payload `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Success: false, Message: msg})
}

// errorStatus maps domain sentinels to an HTTP status and client-facing
// message: client-input problems are 400, session problems 401, cooldown 429,
// collaborator failures 500.
func errorStatus(err error) (int, string) {
	var rle *domain.RateLimitError
	switch {
	case errors.As(err, &rle):
		return http.StatusTooManyRequests, rle.Error()
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMismatch),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrExpired),
		errors.Is(err, domain.ErrMaxAttempts):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrMalformedToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrDelivery):
		return http.StatusInternalServerError, err.Error()
	default:
		slog.Error("unhandled error", "err", err)
		return http.StatusInternalServerError, "internal server error"
	}
}

func httpError(w http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	writeError(w, status, msg)
}

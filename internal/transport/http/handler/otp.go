package handler

import (
	"encoding/json"
	"net/http"

	"github.com/storefront-api/internal/application/otp"
)

// OTPHandler handles the send/verify endpoints of the OTP exchange.
type OTPHandler struct {
	svc otp.Service
	// devMode echoes the generated code in the send response so the flow can
	// be exercised without a real SMS sink. Never enabled in production.
	devMode bool
}

func NewOTPHandler(svc otp.Service, devMode bool) *OTPHandler {
	return &OTPHandler{svc: svc, devMode: devMode}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identifier string `json:"identifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Identifier == "" {
		writeError(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	result, err := h.svc.RequestCode(r.Context(), body.Identifier)
	if err != nil {
		httpError(w, err)
		return
	}

	resp := SendOTPEnvelope{
		Success:   true,
		Message:   "OTP sent successfully to phone number",
		ExpiresIn: result.ExpiresIn,
	}
	if h.devMode {
		resp.OTP = result.Code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identifier string `json:"identifier"`
		OTP        string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Identifier == "" || body.OTP == "" {
		writeError(w, http.StatusBadRequest, "Phone number and OTP are required")
		return
	}

	token, err := h.svc.VerifyCode(r.Context(), body.Identifier, body.OTP)
	if err != nil {
		// Failed verifications keep the full envelope shape so clients can
		// read verified=false instead of just the success flag.
		status, msg := errorStatus(err)
		writeJSON(w, status, VerifyOTPEnvelope{Success: false, Message: msg, Verified: false})
		return
	}

	writeJSON(w, http.StatusOK, VerifyOTPEnvelope{
		Success:      true,
		Message:      "OTP verified successfully",
		SessionToken: token,
		Verified:     true,
		Identifier:   body.Identifier,
	})
}

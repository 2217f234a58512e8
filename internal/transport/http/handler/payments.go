package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/storefront-api/internal/application/payment"
	"github.com/storefront-api/internal/pkg/validate"
)

// PaymentHandler handles the payment-gateway glue endpoints.
type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req payment.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderEnvelope{
		Success: true,
		Order:   order,
		KeyID:   h.svc.KeyID(),
	})
}

func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.OrderID == "" || body.PaymentID == "" || body.Signature == "" {
		writeError(w, http.StatusBadRequest, "Missing required payment verification parameters")
		return
	}

	if err := h.svc.VerifySignature(body.OrderID, body.PaymentID, body.Signature); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment signature")
		return
	}

	writeJSON(w, http.StatusOK, PaymentVerifyEnvelope{
		Success:   true,
		Message:   "Payment verified successfully",
		PaymentID: body.PaymentID,
		OrderID:   body.OrderID,
	})
}

// Webhook verifies the gateway signature over the raw body before decoding.
// The gateway only needs an acknowledgement; event handling is logged.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	ev, err := h.svc.HandleWebhook(body, r.Header.Get("X-Razorpay-Signature"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	slog.Info("payment webhook received", "event", ev.Event)
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// Package payment is thin glue over the Razorpay gateway: order creation,
// checkout signature verification, and webhook signature verification. The
// order ledger itself lives at the gateway; nothing is persisted here.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/pkg/id"
)

// OrderCreator creates an order at the gateway. Implemented by the Razorpay
// client wrapper; mocked in tests.
type OrderCreator interface {
	CreateOrder(ctx context.Context, data map[string]interface{}) (map[string]interface{}, error)
}

type CreateOrderRequest struct {
	Amount   float64                `json:"amount" validate:"required,gt=0"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Notes    map[string]interface{} `json:"notes"`
}

// Order mirrors the subset of the gateway's order object the frontend needs.
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"` // paise
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// WebhookEvent is a decoded gateway webhook notification.
type WebhookEvent struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload"`
}

type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) error
	HandleWebhook(body []byte, signature string) (*WebhookEvent, error)
	KeyID() string
}

type service struct {
	orders        OrderCreator
	keyID         string
	keySecret     string
	webhookSecret string
}

// NewService wires the gateway client and credentials. orders may be nil when
// the gateway is not configured; every call then fails with a delivery error
// instead of panicking.
func NewService(orders OrderCreator, keyID, keySecret, webhookSecret string) Service {
	return &service{
		orders:        orders,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (s *service) KeyID() string { return s.keyID }

// CreateOrder converts the display amount to paise and delegates to the
// gateway. Receipts default to a ULID-suffixed tag so support can correlate
// orders without the frontend supplying one.
func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if s.orders == nil {
		return nil, fmt.Errorf("payment gateway not configured: %w", domain.ErrDelivery)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("valid amount is required (must be greater than 0): %w", domain.ErrValidation)
	}
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := req.Receipt
	if receipt == "" {
		receipt = "receipt_" + id.New()
	}
	notes := req.Notes
	if notes == nil {
		notes = map[string]interface{}{}
	}

	data := map[string]interface{}{
		"amount":   int64(math.Round(req.Amount * 100)),
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	raw, err := s.orders.CreateOrder(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &Order{
		ID:        asString(raw["id"]),
		Amount:    asInt64(raw["amount"]),
		Currency:  asString(raw["currency"]),
		Receipt:   asString(raw["receipt"]),
		Status:    asString(raw["status"]),
		CreatedAt: asInt64(raw["created_at"]),
	}, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "orderID|paymentID" keyed with the API secret, hex encoded.
func (s *service) VerifySignature(orderID, paymentID, signature string) error {
	expected := hmacHex(s.keySecret, orderID+"|"+paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("invalid payment signature: %w", domain.ErrMismatch)
	}
	return nil
}

// HandleWebhook verifies the X-Razorpay-Signature HMAC over the raw body and
// decodes the event. The webhook secret falls back to the API secret when a
// dedicated one was never provisioned.
func (s *service) HandleWebhook(body []byte, signature string) (*WebhookEvent, error) {
	secret := s.webhookSecret
	if secret == "" {
		secret = s.keySecret
	}
	expected := hmacHex(secret, string(body))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("invalid webhook signature: %w", domain.ErrMismatch)
	}
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", domain.ErrValidation)
	}
	return &ev, nil
}

func hmacHex(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt64 tolerates the number types json decoding produces for gateway sums.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}

// Package razorpay wraps the vendor SDK behind the narrow interface the
// payment service consumes, keeping the SDK out of application code.
package razorpay

import (
	"context"

	razorpaygo "github.com/razorpay/razorpay-go"
)

type Client struct {
	rz *razorpaygo.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{rz: razorpaygo.NewClient(keyID, keySecret)}
}

// CreateOrder creates an order at the gateway. The data map follows the
// Razorpay Orders API shape (amount in paise, currency, receipt, notes).
func (c *Client) CreateOrder(_ context.Context, data map[string]interface{}) (map[string]interface{}, error) {
	return c.rz.Order.Create(data, nil)
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrValidation     = errors.New("validation failed")
	ErrRateLimited    = errors.New("rate limited")
	ErrDelivery       = errors.New("delivery failed")
	ErrNotFound       = errors.New("not found")
	ErrExpired        = errors.New("expired")
	ErrMaxAttempts    = errors.New("maximum attempts exceeded")
	ErrMismatch       = errors.New("code mismatch")
	ErrMalformedToken = errors.New("malformed session token")
)

// RateLimitError reports a resend attempted before the cooldown elapsed.
// RetryAfter is the number of whole seconds left on the live code.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting new OTP", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

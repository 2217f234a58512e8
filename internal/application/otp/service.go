// Package otp implements the one-time-code exchange: issuing short-lived
// codes over SMS and trading a correct code for a bearer session token.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"time"

	"github.com/storefront-api/internal/domain"
	pkgtoken "github.com/storefront-api/internal/pkg/token"
)

// smsTemplate is the delivery text the frontend's users already know.
const smsTemplate = "Your OTP is: %s. Valid for 5 minutes. Do not share this code with anyone."

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	codeRe  = regexp.MustCompile(`^[0-9]{6}$`)
)

// Store is the keyed pending-code storage the service depends on. Put
// overwrites any live record and resets its attempt counter; Get returns
// domain.ErrNotFound for missing identifiers.
type Store interface {
	Put(ctx context.Context, identifier, code string) error
	Get(ctx context.Context, identifier string) (*domain.OTPRecord, error)
	RecordAttempt(ctx context.Context, identifier string) error
	Delete(ctx context.Context, identifier string) error
}

// SMSSender delivers the generated code. A failed delivery does not roll the
// stored code back; the identifier can still verify it within the TTL.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// IssueResult reports a successfully issued code.
type IssueResult struct {
	Code      string // echoed to the client in development only
	ExpiresIn int    // seconds until the code expires
}

type Service interface {
	RequestCode(ctx context.Context, identifier string) (*IssueResult, error)
	VerifyCode(ctx context.Context, identifier, code string) (string, error)
}

type service struct {
	store        Store
	sms          SMSSender
	ttl          time.Duration
	resendWindow time.Duration
	maxAttempts  int

	now func() time.Time
}

func NewService(store Store, sms SMSSender, ttl, resendWindow time.Duration, maxAttempts int) Service {
	return &service{
		store:        store,
		sms:          sms,
		ttl:          ttl,
		resendWindow: resendWindow,
		maxAttempts:  maxAttempts,
		now:          time.Now,
	}
}

// RequestCode validates the identifier, enforces the resend cooldown,
// generates and stores a fresh 6-digit code, and hands it to the SMS sender.
// A live code blocks reissue until it enters its final resendWindow of life.
func (s *service) RequestCode(ctx context.Context, identifier string) (*IssueResult, error) {
	if !phoneRe.MatchString(identifier) {
		return nil, fmt.Errorf("invalid phone number format: %w", domain.ErrValidation)
	}

	if rec, err := s.store.Get(ctx, identifier); err == nil {
		remaining := rec.ExpiresAt - s.now().Unix()
		if remaining > int64(s.resendWindow.Seconds()) {
			return nil, &domain.RateLimitError{RetryAfter: int(remaining)}
		}
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, identifier, code); err != nil {
		return nil, err
	}

	if err := s.sms.SendSMS(ctx, identifier, fmt.Sprintf(smsTemplate, code)); err != nil {
		// The stored code stays live: a client that somehow received the
		// message can still verify, and a resend is possible after cooldown.
		slog.Error("sms delivery failed", "identifier", identifier, "err", err)
		return nil, fmt.Errorf("failed to send OTP: %w", domain.ErrDelivery)
	}

	return &IssueResult{Code: code, ExpiresIn: int(s.ttl.Seconds())}, nil
}

// VerifyCode checks a submitted code and, on match, consumes the record and
// mints an unsigned session token. Check order is fixed: expiry before
// attempt count, attempt increment before the equality check. A record is
// deleted on success, on expiry detection, and on attempt exhaustion.
func (s *service) VerifyCode(ctx context.Context, identifier, code string) (string, error) {
	if !codeRe.MatchString(code) {
		return "", fmt.Errorf("OTP must be 6 digits: %w", domain.ErrValidation)
	}

	rec, err := s.store.Get(ctx, identifier)
	if err != nil {
		return "", fmt.Errorf("OTP not found or expired: %w", domain.ErrNotFound)
	}

	now := s.now()
	if now.Unix() > rec.ExpiresAt {
		s.deleteRecord(ctx, identifier)
		return "", fmt.Errorf("OTP has expired: %w", domain.ErrExpired)
	}
	if rec.Attempts >= s.maxAttempts {
		s.deleteRecord(ctx, identifier)
		return "", fmt.Errorf("maximum attempts exceeded: %w", domain.ErrMaxAttempts)
	}
	if err := s.store.RecordAttempt(ctx, identifier); err != nil {
		return "", err
	}

	if rec.Code != code {
		return "", fmt.Errorf("invalid OTP: %w", domain.ErrMismatch)
	}

	s.deleteRecord(ctx, identifier)

	sessionID, err := pkgtoken.NewSessionID()
	if err != nil {
		return "", err
	}
	return pkgtoken.Encode(&domain.SessionPayload{
		Identifier: identifier,
		Verified:   true,
		IssuedAt:   now.UnixMilli(),
		SessionID:  sessionID,
	})
}

func (s *service) deleteRecord(ctx context.Context, identifier string) {
	if err := s.store.Delete(ctx, identifier); err != nil {
		slog.Warn("failed to delete otp record", "identifier", identifier, "err", err)
	}
}

// generateCode draws a uniformly random 6-digit code (100000–999999).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// Package session validates the bearer tokens minted by the OTP exchange.
package session

import (
	"fmt"
	"time"

	"github.com/storefront-api/internal/domain"
	pkgtoken "github.com/storefront-api/internal/pkg/token"
)

type Service interface {
	Validate(token string) (*domain.SessionPayload, error)
}

type service struct {
	ttl time.Duration

	now func() time.Time
}

func NewService(ttl time.Duration) Service {
	return &service{ttl: ttl, now: time.Now}
}

// Validate decodes the token and checks age and shape, in that order. The
// age check only applies when a timestamp is present; a token without one is
// malformed, not expired. The token is not signed, so this proves possession,
// not authenticity. There is no revocation, only the age check against the
// configured lifetime.
func (s *service) Validate(token string) (*domain.SessionPayload, error) {
	p, err := pkgtoken.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", domain.ErrMalformedToken)
	}
	if p.IssuedAt != 0 && s.now().UnixMilli()-p.IssuedAt > s.ttl.Milliseconds() {
		return nil, fmt.Errorf("session expired: %w", domain.ErrExpired)
	}
	if p.Identifier == "" || !p.Verified || p.IssuedAt == 0 {
		return nil, fmt.Errorf("invalid session token format: %w", domain.ErrMalformedToken)
	}
	return p, nil
}

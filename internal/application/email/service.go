// Package email is delivery glue for the transactional-mail endpoint.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/infrastructure/smtp"
)

type SendRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html" validate:"required"`
}

type Service interface {
	Send(ctx context.Context, req SendRequest) error
}

type service struct {
	mailer     smtp.Mailer
	configured bool
}

// NewService wires the mailer. configured=false (missing SMTP credentials)
// turns every send into a delivery error rather than a dial timeout.
func NewService(mailer smtp.Mailer, configured bool) Service {
	return &service{mailer: mailer, configured: configured}
}

func (s *service) Send(_ context.Context, req SendRequest) error {
	if !s.configured {
		return fmt.Errorf("email service not configured: %w", domain.ErrDelivery)
	}
	if err := s.mailer.SendEmail(req.To, req.Subject, req.HTML); err != nil {
		slog.Error("email delivery failed", "to", req.To, "err", err)
		return fmt.Errorf("failed to send email: %w", domain.ErrDelivery)
	}
	return nil
}

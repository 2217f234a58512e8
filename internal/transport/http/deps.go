package http

import (
	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/application/payment"
	"github.com/storefront-api/internal/infrastructure/smtp"
	"github.com/storefront-api/internal/infrastructure/sns"
	"github.com/storefront-api/internal/transport/http/handler"
)

// Deps holds all infrastructure dependencies for the router. Every field is
// an interface so deployments can swap backings: the OTP store between
// in-process memory and DynamoDB, the SMS sender between SNS and the logging
// mock, the gateway client between the vendor SDK and nil (unconfigured).
type Deps struct {
	OTPStore         otp.Store
	SMSSender        sns.SMSSender
	Mailer           smtp.Mailer
	MailerConfigured bool
	OrderCreator     payment.OrderCreator // nil when the gateway is unconfigured
	IdentityVerifier handler.IdentityVerifier
}

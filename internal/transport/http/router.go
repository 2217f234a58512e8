package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/storefront-api/internal/application/email"
	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/application/payment"
	"github.com/storefront-api/internal/application/session"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/transport/http/handler"
	appmiddleware "github.com/storefront-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. CORS is a single
// consolidated allow-list from config; there are no per-route policies.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Razorpay-Signature"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.OTPStore, deps.SMSSender, cfg.OTPTTL, cfg.OTPResendWindow, cfg.OTPMaxAttempts)
	sessionSvc := session.NewService(cfg.SessionTTL)
	paymentSvc := payment.NewService(deps.OrderCreator, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)
	emailSvc := email.NewService(deps.Mailer, deps.MailerConfigured)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc, cfg.AppEnv == "development")
	sessionH := handler.NewSessionHandler(sessionSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	emailH := handler.NewEmailHandler(emailSvc)
	authH := handler.NewAuthHandler(deps.IdentityVerifier)

	authMw := appmiddleware.Auth(sessionSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes ────────────────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)

		r.With(sensitiveRL.Limit).Post("/otp/send", otpH.Send)
		r.Post("/otp/verify", otpH.Verify)
		r.Post("/otp/validate-session", sessionH.Validate)

		r.With(sensitiveRL.Limit).Post("/payments/orders", paymentH.CreateOrder)
		r.Post("/payments/verify", paymentH.VerifyPayment)
		r.Post("/payments/webhook", paymentH.Webhook)

		r.Post("/email/send", emailH.Send)
		r.Post("/auth/google/verify", authH.VerifyGoogle)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Get("/session", sessionH.Current)
		})
	})

	return r
}

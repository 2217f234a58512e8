package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/infrastructure/dynamo"
	"github.com/storefront-api/internal/infrastructure/google"
	"github.com/storefront-api/internal/infrastructure/memory"
	razorpayinfra "github.com/storefront-api/internal/infrastructure/razorpay"
	"github.com/storefront-api/internal/infrastructure/smtp"
	"github.com/storefront-api/internal/infrastructure/sns"
	transporthttp "github.com/storefront-api/internal/transport/http"
	"github.com/storefront-api/internal/transport/http/handler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// OTP store: process-local memory by default; DynamoDB when the service
	// runs more than one instance (a memory store is invisible across replicas).
	var otpStore otp.Store
	switch cfg.OTPStoreBackend {
	case "dynamo":
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTableOTPs)
		otpStore = dynamo.NewOTPRepo(client, cfg.DynamoTableOTPs, cfg.OTPTTL)
	default:
		otpStore = memory.NewStore(cfg.OTPTTL)
		log.Println("OTP store: in-memory (single instance only)")
	}

	// SMS sender (falls back to a logging mock without AWS credentials).
	var smsSender sns.SMSSender
	if cfg.AWSAccessKeyID == "" && cfg.AWSEndpointURL == "" {
		log.Println("WARN: SMS credentials not configured, deliveries will be logged only")
		smsSender = sns.NewLogSender()
	} else if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available (%v), deliveries will be logged only", err)
		smsSender = sns.NewLogSender()
	}

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)
	mailerConfigured := cfg.SMTPHost != "" && cfg.SMTPUsername != ""

	// Payment gateway client. Optional: without credentials the payment
	// endpoints answer with a not-configured error.
	var orderCreator *razorpayinfra.Client
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		orderCreator = razorpayinfra.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		log.Println("WARN: payment gateway credentials not configured")
	}

	// Identity provider verifier (optional).
	var identityVerifier handler.IdentityVerifier
	if cfg.GoogleClientID != "" {
		identityVerifier = google.NewVerifier(cfg.GoogleClientID)
	} else {
		log.Println("WARN: Google client ID not configured")
	}

	deps := &transporthttp.Deps{
		OTPStore:         otpStore,
		SMSSender:        smsSender,
		Mailer:           mailer,
		MailerConfigured: mailerConfigured,
		IdentityVerifier: identityVerifier,
	}
	if orderCreator != nil {
		deps.OrderCreator = orderCreator
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

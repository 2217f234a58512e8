package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockOTPSvc struct{ mock.Mock }

func (m *mockOTPSvc) RequestCode(ctx context.Context, identifier string) (*otp.IssueResult, error) {
	args := m.Called(ctx, identifier)
	if r, _ := args.Get(0).(*otp.IssueResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOTPSvc) VerifyCode(ctx context.Context, identifier, code string) (string, error) {
	args := m.Called(ctx, identifier, code)
	return args.String(0), args.Error(1)
}

func newRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func record(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	return record(h, newRequest(http.MethodPost, body))
}

// --- Send ---

func TestSendOTP_Success(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("RequestCode", mock.Anything, "+919876543210").
		Return(&otp.IssueResult{Code: "123456", ExpiresIn: 300}, nil)

	rec := postJSON(t, NewOTPHandler(svc, false).Send, `{"identifier":"+919876543210"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp SendOTPEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 300, resp.ExpiresIn)
	assert.Empty(t, resp.OTP, "code must not leak outside development")
}

func TestSendOTP_DevModeEchoesCode(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("RequestCode", mock.Anything, "+919876543210").
		Return(&otp.IssueResult{Code: "123456", ExpiresIn: 300}, nil)

	rec := postJSON(t, NewOTPHandler(svc, true).Send, `{"identifier":"+919876543210"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp SendOTPEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "123456", resp.OTP)
}

func TestSendOTP_MissingIdentifier(t *testing.T) {
	rec := postJSON(t, NewOTPHandler(&mockOTPSvc{}, false).Send, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phone number is required")
}

func TestSendOTP_InvalidIdentifier(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("RequestCode", mock.Anything, "garbage").
		Return(nil, domain.ErrValidation)

	rec := postJSON(t, NewOTPHandler(svc, false).Send, `{"identifier":"garbage"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendOTP_Cooldown(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("RequestCode", mock.Anything, "+919876543210").
		Return(nil, &domain.RateLimitError{RetryAfter: 180})

	rec := postJSON(t, NewOTPHandler(svc, false).Send, `{"identifier":"+919876543210"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "180 seconds")
}

func TestSendOTP_DeliveryFailure(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("RequestCode", mock.Anything, "+919876543210").
		Return(nil, domain.ErrDelivery)

	rec := postJSON(t, NewOTPHandler(svc, false).Send, `{"identifier":"+919876543210"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- Verify ---

func TestVerifyOTP_Success(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyCode", mock.Anything, "+919876543210", "123456").
		Return("tok123", nil)

	rec := postJSON(t, NewOTPHandler(svc, false).Verify,
		`{"identifier":"+919876543210","otp":"123456"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp VerifyOTPEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Verified)
	assert.Equal(t, "tok123", resp.SessionToken)
	assert.Equal(t, "+919876543210", resp.Identifier)
}

func TestVerifyOTP_MissingFields(t *testing.T) {
	for _, body := range []string{`{}`, `{"identifier":"+919876543210"}`, `{"otp":"123456"}`} {
		rec := postJSON(t, NewOTPHandler(&mockOTPSvc{}, false).Verify, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestVerifyOTP_FailureEnvelopeCarriesVerifiedFalse(t *testing.T) {
	svc := &mockOTPSvc{}
	svc.On("VerifyCode", mock.Anything, "+919876543210", "000000").
		Return("", domain.ErrMismatch)

	rec := postJSON(t, NewOTPHandler(svc, false).Verify,
		`{"identifier":"+919876543210","otp":"000000"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, false, fields["success"])
	verified, present := fields["verified"]
	assert.True(t, present, "failure envelope must carry an explicit verified flag")
	assert.Equal(t, false, verified)
	assert.NotContains(t, fields, "sessionToken")
}

func TestVerifyOTP_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"mismatch", domain.ErrMismatch, http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusBadRequest},
		{"expired", domain.ErrExpired, http.StatusBadRequest},
		{"max attempts", domain.ErrMaxAttempts, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockOTPSvc{}
			svc.On("VerifyCode", mock.Anything, "+919876543210", "000000").
				Return("", tc.err)

			rec := postJSON(t, NewOTPHandler(svc, false).Verify,
				`{"identifier":"+919876543210","otp":"000000"}`)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

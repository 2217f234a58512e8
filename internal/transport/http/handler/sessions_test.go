package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/storefront-api/internal/application/session"
	"github.com/storefront-api/internal/domain"
	pkgtoken "github.com/storefront-api/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgtoken.Encode(&domain.SessionPayload{
		Identifier: "+919876543210",
		Verified:   true,
		IssuedAt:   time.Now().UnixMilli(),
		SessionID:  "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)
	return tok
}

func TestValidateSession_FromBody(t *testing.T) {
	h := NewSessionHandler(session.NewService(24 * time.Hour))

	rec := postJSON(t, h.Validate, `{"sessionToken":"`+validToken(t)+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp SessionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "+919876543210", resp.Data.Identifier)
}

func TestValidateSession_FromBearerHeader(t *testing.T) {
	h := NewSessionHandler(session.NewService(24 * time.Hour))

	req := newRequest(http.MethodPost, `{}`)
	req.Header.Set("Authorization", "Bearer "+validToken(t))
	rec := record(h.Validate, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateSession_MissingToken(t *testing.T) {
	h := NewSessionHandler(session.NewService(24 * time.Hour))

	rec := postJSON(t, h.Validate, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session token is required")
}

func TestValidateSession_MalformedToken(t *testing.T) {
	h := NewSessionHandler(session.NewService(24 * time.Hour))

	rec := postJSON(t, h.Validate, `{"sessionToken":"not-a-token"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp SessionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Nil(t, resp.Data)
}

func TestValidateSession_ExpiredToken(t *testing.T) {
	h := NewSessionHandler(session.NewService(24 * time.Hour))

	old, err := pkgtoken.Encode(&domain.SessionPayload{
		Identifier: "+919876543210",
		Verified:   true,
		IssuedAt:   time.Now().Add(-25 * time.Hour).UnixMilli(),
		SessionID:  "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)

	rec := postJSON(t, h.Validate, `{"sessionToken":"`+old+`"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

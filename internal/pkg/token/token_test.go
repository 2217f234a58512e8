package token

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := &domain.SessionPayload{
		Identifier: "+919876543210",
		Verified:   true,
		IssuedAt:   1756500000000,
		SessionID:  "0123456789abcdef0123456789abcdef",
	}

	tok, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncode_WireFieldNames(t *testing.T) {
	// The frontend decodes tokens itself, so the JSON key names are load-bearing.
	tok, err := Encode(&domain.SessionPayload{
		Identifier: "+919876543210",
		Verified:   true,
		IssuedAt:   1756500000000,
		SessionID:  "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(tok)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "identifier")
	assert.Contains(t, fields, "verified")
	assert.Contains(t, fields, "timestamp")
	assert.Contains(t, fields, "sessionId")
}

func TestDecode_BadInput(t *testing.T) {
	_, err := Decode("%%% not base64 %%%")
	assert.Error(t, err)

	_, err = Decode(base64.StdEncoding.EncodeToString([]byte("{broken")))
	assert.Error(t, err)
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)

	assert.Regexp(t, `^[0-9a-f]{32}$`, a)
	assert.NotEqual(t, a, b)
}

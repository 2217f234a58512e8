package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/storefront-api/internal/domain"
)

// Encode serialises a session payload as base64(JSON). The token carries no
// signature: anyone holding the bytes can read and forge it. The existing
// frontend decodes these tokens directly, so the format is a wire contract.
func Encode(p *domain.SessionPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode session token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Callers map failures to domain.ErrMalformedToken.
func Decode(token string) (*domain.SessionPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode session token: %w", err)
	}
	var p domain.SessionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return &p, nil
}

// NewSessionID generates a cryptographically random 32-character hex session ID.
func NewSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

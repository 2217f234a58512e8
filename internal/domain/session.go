package domain

// SessionPayload is the decoded body of the bearer session token minted after
// a successful OTP verification. The token itself is base64-encoded JSON with
// no signature; validity is purely decode + age check. JSON keys match the
// wire contract the frontend already speaks: IssuedAt travels as "timestamp"
// in milliseconds since epoch.
type SessionPayload struct {
	Identifier string `json:"identifier"`
	Verified   bool   `json:"verified"`
	IssuedAt   int64  `json:"timestamp"`
	SessionID  string `json:"sessionId"`
}

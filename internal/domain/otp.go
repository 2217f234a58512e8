package domain

// OTPRecord is the pending one-time code for an identifier (phone number).
// PK: identifier. ExpiresAt is a Unix timestamp also used as DynamoDB TTL.
// At most one live record exists per identifier; issuing a new code overwrites
// any prior record. Records are owned exclusively by the OTP store.
type OTPRecord struct {
	Identifier string `json:"identifier" dynamodbav:"identifier"`
	Code       string `json:"code" dynamodbav:"code"`
	ExpiresAt  int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Attempts   int    `json:"attempts" dynamodbav:"attempts"`
	CreatedAt  int64  `json:"created_at" dynamodbav:"created_at"`
}

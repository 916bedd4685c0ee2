package domain

import "time"

// TokenPurpose is the single intended use of an email token, fixed at
// issuance and checked again at consumption.
type TokenPurpose string

const (
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposeChangeEmail   TokenPurpose = "change_email"
	PurposeResetPassword TokenPurpose = "reset_password"
)

// EmailToken is a persisted single-use token record.
// PK: token_hash. The raw secret is handed to the user out of band and never
// stored; only its one-way hash is. ExpiresAt doubles as the DynamoDB TTL
// attribute (Unix seconds) — physical deletion of expired rows is an
// optimization, expiry is always re-checked at consumption.
type EmailToken struct {
	TokenHash string       `json:"-" dynamodbav:"token_hash"`
	UserID    string       `json:"user_id" dynamodbav:"user_id"`
	// Email is the address the token is bound to. For change_email this is
	// the NEW address, not the account's current one.
	Email     string       `json:"email" dynamodbav:"email"`
	Purpose   TokenPurpose `json:"purpose" dynamodbav:"purpose"`
	ExpiresAt int64        `json:"expires_at" dynamodbav:"expires_at"`
	// UsedAt is nil until the token is consumed; it is set exactly once, in
	// the same conditional write that validates the record.
	UsedAt    *time.Time   `json:"used_at,omitempty" dynamodbav:"used_at,omitempty"`
	CreatedAt time.Time    `json:"created" dynamodbav:"created_at"`
}

package domain

import "time"

// SupplierInvite is a persisted role-elevation token.
// PK: token_hash — same hashed-secret discipline as EmailToken.
type SupplierInvite struct {
	TokenHash string `json:"-" dynamodbav:"token_hash"`
	// SupplierID, when present, binds the consuming account to an existing
	// supplier entity. When absent the account is flagged for later
	// supplier-profile creation instead.
	SupplierID *string `json:"supplier_id,omitempty" dynamodbav:"supplier_id,omitempty"`
	// Email is an advisory binding only: it records who the invite was meant
	// for but a mismatch does not block consumption.
	Email     *string    `json:"email,omitempty" dynamodbav:"email,omitempty"`
	Role      string     `json:"role" dynamodbav:"role"`
	ExpiresAt int64      `json:"expires_at" dynamodbav:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" dynamodbav:"used_at,omitempty"`
	UsedBy    string     `json:"used_by,omitempty" dynamodbav:"used_by,omitempty"`
	CreatedAt time.Time  `json:"created" dynamodbav:"created_at"`
}

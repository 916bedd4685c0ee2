package domain

import "time"

// Account roles. Customers place uniform orders; suppliers manage stock for
// their schools; admins run the platform.
const (
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         string     `json:"role" dynamodbav:"role"`
	FirstName    string     `json:"first_name" dynamodbav:"first_name"`
	LastName     string     `json:"last_name" dynamodbav:"last_name"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	// SupplierID is set when the account has been bound to a supplier entity
	// through an invite. SupplierPending marks accounts that accepted an
	// unbound invite and still need a supplier profile created.
	SupplierID      *string    `json:"supplier_id,omitempty" dynamodbav:"supplier_id,omitempty"`
	SupplierPending bool       `json:"supplier_pending" dynamodbav:"supplier_pending"`
	Enable          bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at,omitempty"`
	CreatedAt       time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

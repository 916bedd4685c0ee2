package domain

import "time"

// SupplierInput carries the fields an admin provides when creating a
// supplier profile.
type SupplierInput struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

type Supplier struct {
	SupplierID   string    `json:"id" dynamodbav:"supplier_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	ContactEmail string    `json:"contact_email" dynamodbav:"contact_email"`
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

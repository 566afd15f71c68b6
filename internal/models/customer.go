package models

import "time"

// Customer represents one persisted customer row, keyed by phone number.
type Customer struct {
	PhoneNumber string                 `json:"phoneNumber" db:"phone_number"`
	Name        string                 `json:"name,omitempty" db:"name"`
	Email       string                 `json:"email,omitempty" db:"email"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time              `json:"updatedAt" db:"updated_at"`
}

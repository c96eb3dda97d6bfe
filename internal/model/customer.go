package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the registered-user projection the engine needs: display name
// and contact details for labels and notifications. Account management
// itself lives outside this core.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

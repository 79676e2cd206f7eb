package model

import "github.com/google/uuid"

// Client is the person a booking was made for. A new row is written per booking.
type Client struct {
	Base
	TenantID uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name     string    `db:"name" json:"name"`
	Phone    string    `db:"phone" json:"phone"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Service is an entry of a tenant's catalog.
type Service struct {
	Base
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Duration    int       `db:"duration" json:"duration"` // in minutes
	IsActive    bool      `db:"is_active" json:"is_active"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ServiceNames returns the catalog names in catalog order.
func ServiceNames(services []*Service) []string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return names
}

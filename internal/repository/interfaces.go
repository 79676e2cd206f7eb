package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/zyra-api/internal/model"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	// TenantRepository reads tenant identities
	TenantRepository interface {
		GetBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	}

	// ServiceRepository reads a tenant's catalog
	ServiceRepository interface {
		ListActive(ctx context.Context, tenantID uuid.UUID) ([]*model.Service, error)
	}

	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
	}
)

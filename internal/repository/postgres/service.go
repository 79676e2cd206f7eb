package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/jwalitptl/zyra-api/internal/model"
)

// ListActive returns the tenant's active services ordered by name.
func (r *serviceRepository) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*model.Service, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "tenant_id", "name", "description", "price", "duration", "is_active", "created_at", "updated_at")
	sb.From("services")
	sb.Where(
		sb.Equal("tenant_id", tenantID),
		sb.Equal("is_active", true),
	)
	sb.OrderBy("name ASC")

	query, args := sb.Build()
	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/zyra-api/internal/model"
)

// Create inserts a client row; the id and created_at are generated by the database.
func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (tenant_id, name, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		client.TenantID,
		client.Name,
		client.Phone,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

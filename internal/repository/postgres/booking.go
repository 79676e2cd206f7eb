package postgres

import (
	"context"
	"fmt"

	"github.com/huandu/go-sqlbuilder"

	"github.com/jwalitptl/zyra-api/internal/model"
)

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("bookings")
	sb.Cols("tenant_id", "client_id", "service", "booking_date", "booking_time", "notes")
	sb.Values(booking.TenantID, booking.ClientID, booking.Service, booking.Date, booking.Time, booking.Notes)

	query, args := sb.Build()
	query += " RETURNING id, created_at"

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

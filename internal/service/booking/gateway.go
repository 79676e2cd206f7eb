package booking

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/internal/repository"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

type Persister interface {
	Persist(ctx context.Context, tenant *model.Tenant, intent model.BookingIntent) (*model.Booking, error)
}

// Gateway writes a client row and then a booking row pointing at it. The two
// inserts are not transactional: a failed booking insert leaves the client behind.
type Gateway struct {
	clients  repository.ClientRepository
	bookings repository.BookingRepository
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func NewGateway(clients repository.ClientRepository, bookings repository.BookingRepository, logger zerolog.Logger, m *metrics.Metrics) *Gateway {
	return &Gateway{
		clients:  clients,
		bookings: bookings,
		logger:   logger.With().Str("component", "persistence_gateway").Logger(),
		metrics:  m,
	}
}

func (g *Gateway) Persist(ctx context.Context, tenant *model.Tenant, intent model.BookingIntent) (*model.Booking, error) {
	client := &model.Client{
		TenantID: tenant.ID,
		Name:     intent.Name,
		Phone:    intent.Phone,
	}
	if err := g.clients.Create(ctx, client); err != nil {
		g.metrics.IncPersistenceFailure("client")
		g.logger.Error().Err(err).Str("tenant", tenant.Slug).Msg("failed to save client, skipping booking insert")
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	booking := &model.Booking{
		TenantID: tenant.ID,
		ClientID: client.ID,
		Service:  intent.Service,
		Date:     intent.Date,
		Time:     intent.Time,
		Notes:    intent.Notes,
	}
	if err := g.bookings.Create(ctx, booking); err != nil {
		g.metrics.IncPersistenceFailure("booking")
		g.logger.Error().
			Err(err).
			Str("tenant", tenant.Slug).
			Str("orphan_client_id", client.ID.String()).
			Msg("failed to save booking")
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	g.logger.Info().
		Str("tenant", tenant.Slug).
		Str("booking_id", booking.ID.String()).
		Str("client_id", client.ID.String()).
		Msg("booking saved")
	return booking, nil
}

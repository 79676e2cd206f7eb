package booking

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/internal/notifier"
	"github.com/jwalitptl/zyra-api/internal/service/matcher"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

type BookingFinalizer interface {
	Finalize(ctx context.Context, tenant *model.Tenant, services []*model.Service, intent model.BookingIntent) Result
}

// Result is what happened to one booking. Booking is nil when it was not stored.
type Result struct {
	Intent  model.BookingIntent
	Booking *model.Booking
	Reply   string
}

type Service struct {
	store    Persister
	notifier notifier.Notifier
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func NewService(store Persister, n notifier.Notifier, logger zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:    store,
		notifier: n,
		logger:   logger.With().Str("component", "booking_reconciler").Logger(),
		metrics:  m,
	}
}

// Finalize snaps the service name onto the catalog, stores the booking and
// forwards it. Storage and forwarding failures are logged only, so the caller
// always gets a confirmation.
func (s *Service) Finalize(ctx context.Context, tenant *model.Tenant, services []*model.Service, intent model.BookingIntent) Result {
	if len(services) > 0 {
		m := matcher.Match(intent.Service, model.ServiceNames(services))
		if m.Matched {
			s.metrics.IncServiceMatch("matched")
		} else {
			s.metrics.IncServiceMatch("unmatched")
			s.logger.Info().Str("service", intent.Service).Int("distance", m.Distance).Msg("service not in catalog, keeping raw text")
		}
		intent.Service = m.Name
	} else {
		s.metrics.IncServiceMatch("skipped")
	}

	booking, err := s.store.Persist(ctx, tenant, intent)
	if err != nil {
		s.logger.Warn().Err(err).Msg("booking not persisted")
	}

	if err := s.notifier.Forward(ctx, intent); err != nil {
		s.logger.Warn().Err(err).Msg("booking not forwarded")
	}

	s.metrics.IncBookingFinalized()
	return Result{
		Intent:  intent,
		Booking: booking,
		Reply:   Confirmation(intent),
	}
}

// Confirmation echoes the booking back verbatim.
func Confirmation(intent model.BookingIntent) string {
	return fmt.Sprintf("You're all set, %s! Your %s is booked for %s at %s. We'll see you then.",
		intent.Name, intent.Service, intent.Date, intent.Time)
}

package notifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/pkg/messaging"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

const EventBookingFinalized = "booking.finalized"

// Publisher broadcasts finalized bookings on a broker channel.
type Publisher struct {
	broker  messaging.Broker
	channel string
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewPublisher(broker messaging.Broker, channel string, logger zerolog.Logger, m *metrics.Metrics) *Publisher {
	return &Publisher{
		broker:  broker,
		channel: channel,
		logger:  logger.With().Str("component", "broker_notifier").Logger(),
		metrics: m,
	}
}

func (p *Publisher) Forward(ctx context.Context, intent model.BookingIntent) error {
	msg := messaging.Message{Type: EventBookingFinalized, Payload: intent}
	if err := p.broker.Publish(ctx, p.channel, msg); err != nil {
		p.metrics.IncNotification("broker", "error")
		p.logger.Error().Err(err).Str("channel", p.channel).Msg("failed to publish booking")
		return fmt.Errorf("failed to publish booking: %w", err)
	}
	p.metrics.IncNotification("broker", "ok")
	return nil
}

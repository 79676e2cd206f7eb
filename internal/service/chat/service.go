package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/llm"
	"github.com/jwalitptl/zyra-api/internal/service/booking"
	"github.com/jwalitptl/zyra-api/internal/service/extractor"
	"github.com/jwalitptl/zyra-api/internal/service/tenant"
	"github.com/jwalitptl/zyra-api/pkg/errors"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

// NoMessageReply is returned, without touching any collaborator, for an empty message.
const NoMessageReply = "You didn't send a message."

type Request struct {
	Message      string
	BusinessSlug string
}

type Response struct {
	Reply string
}

type ChatServicer interface {
	Reply(ctx context.Context, req Request) (Response, error)
}

type Service struct {
	tenants   tenant.TenantResolver
	generator llm.Generator
	bookings  booking.BookingFinalizer
	prompt    PromptConfig
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

func NewService(
	tenants tenant.TenantResolver,
	generator llm.Generator,
	bookings booking.BookingFinalizer,
	prompt PromptConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		tenants:   tenants,
		generator: generator,
		bookings:  bookings,
		prompt:    prompt,
		logger:    logger.With().Str("component", "chat").Logger(),
		metrics:   m,
	}
}

// Reply runs one stateless turn: resolve the tenant, ask the model, and either
// finalize the booking it summarised or pass its text straight back.
// Only a model failure (or a broken prompt template) is returned as an error.
func (s *Service) Reply(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Response{Reply: NoMessageReply}, nil
	}

	res := s.tenants.Resolve(ctx, req.BusinessSlug)
	logger := s.logger.With().
		Str("tenant", res.Tenant.Slug).
		Str("tenant_source", string(res.Source)).
		Logger()

	system, err := BuildSystemPrompt(s.prompt, res.Tenant, res.Services)
	if err != nil {
		return Response{}, errors.Internal(err)
	}

	text, err := s.generator.Generate(ctx, system, req.Message)
	if err != nil {
		logger.Error().Err(err).Msg("model generation failed")
		return Response{}, errors.Upstream("model generation failed", err)
	}

	intent, ok := extractor.Extract(text)
	s.metrics.IncIntent(ok)
	if !ok {
		logger.Debug().Msg("no booking intent in reply")
		return Response{Reply: text}, nil
	}

	result := s.bookings.Finalize(ctx, res.Tenant, res.Services, intent)
	logger.Info().
		Str("service", result.Intent.Service).
		Bool("persisted", result.Booking != nil).
		Msg("booking finalized")
	return Response{Reply: result.Reply}, nil
}

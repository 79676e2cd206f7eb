package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/internal/repository"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

// Source records which step of resolution produced the tenant.
type Source string

const (
	SourceRequested  Source = "requested"
	SourceFallback   Source = "fallback"
	SourceLastResort Source = "last_resort"
)

// Resolution is the tenant a conversation runs against plus its active catalog.
type Resolution struct {
	Tenant   *model.Tenant
	Services []*model.Service
	Source   Source
}

type Config struct {
	FallbackSlug string
	DefaultName  string
}

type TenantResolver interface {
	Resolve(ctx context.Context, slug string) Resolution
}

type Service struct {
	tenants  repository.TenantRepository
	services repository.ServiceRepository
	cfg      Config
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

func NewService(tenants repository.TenantRepository, services repository.ServiceRepository, cfg Config, logger zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		tenants:  tenants,
		services: services,
		cfg:      cfg,
		logger:   logger.With().Str("component", "tenant_resolver").Logger(),
		metrics:  m,
	}
}

// Resolve never fails. An unknown or blank slug falls back to the configured
// fallback tenant, and if that is missing too (or the store errors) to a
// built-in identity with no catalog.
func (s *Service) Resolve(ctx context.Context, slug string) Resolution {
	res := s.identify(ctx, strings.TrimSpace(slug))
	s.metrics.IncTenantResolution(string(res.Source))

	if res.Source == SourceLastResort {
		return res
	}

	services, err := s.services.ListActive(ctx, res.Tenant.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("tenant", res.Tenant.Slug).Msg("failed to load service catalog, continuing without it")
		return res
	}
	res.Services = services
	return res
}

func (s *Service) identify(ctx context.Context, slug string) Resolution {
	if slug != "" {
		t, err := s.tenants.GetBySlug(ctx, slug)
		switch {
		case err == nil:
			return Resolution{Tenant: t, Source: SourceRequested}
		case !errors.Is(err, repository.ErrNotFound):
			s.logger.Error().Err(err).Str("slug", slug).Msg("tenant lookup failed")
			return s.lastResort()
		}
		s.logger.Debug().Str("slug", slug).Msg("unknown tenant, using fallback")
		if slug == s.cfg.FallbackSlug {
			return s.lastResort()
		}
	}

	t, err := s.tenants.GetBySlug(ctx, s.cfg.FallbackSlug)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().Err(err).Str("slug", s.cfg.FallbackSlug).Msg("fallback tenant lookup failed")
		} else {
			s.logger.Warn().Str("slug", s.cfg.FallbackSlug).Msg("fallback tenant is not configured")
		}
		return s.lastResort()
	}
	return Resolution{Tenant: t, Source: SourceFallback}
}

func (s *Service) lastResort() Resolution {
	return Resolution{
		Tenant: &model.Tenant{
			Base: model.Base{ID: uuid.Nil},
			Name: s.cfg.DefaultName,
			Slug: s.cfg.FallbackSlug,
		},
		Source: SourceLastResort,
	}
}

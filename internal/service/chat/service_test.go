package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/internal/repository"
	"github.com/jwalitptl/zyra-api/internal/service/booking"
	"github.com/jwalitptl/zyra-api/internal/service/tenant"
	apperrors "github.com/jwalitptl/zyra-api/pkg/errors"
	"github.com/jwalitptl/zyra-api/pkg/logger"
)

type fakeGenerator struct {
	reply  string
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system, f.user = system, user
	return f.reply, f.err
}

type fakeResolver struct {
	res   tenant.Resolution
	calls int
}

func (f *fakeResolver) Resolve(context.Context, string) tenant.Resolution {
	f.calls++
	return f.res
}

type fakeFinalizer struct {
	calls  int
	intent model.BookingIntent
}

func (f *fakeFinalizer) Finalize(_ context.Context, _ *model.Tenant, _ []*model.Service, intent model.BookingIntent) booking.Result {
	f.calls++
	f.intent = intent
	return booking.Result{Intent: intent, Reply: booking.Confirmation(intent)}
}

var promptCfg = PromptConfig{AssistantName: "Zyra", TenantAware: true, CatalogAware: true, CurrencySymbol: "£"}

func glowResolution() tenant.Resolution {
	return tenant.Resolution{
		Tenant:   &model.Tenant{Base: model.Base{ID: uuid.New()}, Name: "Glow Studio", Slug: "glow"},
		Services: []*model.Service{{Name: "Haircut", Price: 25, Duration: 30}},
		Source:   tenant.SourceRequested,
	}
}

func TestReply_MissingMessage(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t"} {
		resolver := &fakeResolver{res: glowResolution()}
		gen := &fakeGenerator{}
		fin := &fakeFinalizer{}
		svc := NewService(resolver, gen, fin, promptCfg, logger.Nop(), nil)

		resp, err := svc.Reply(context.Background(), Request{Message: msg, BusinessSlug: "glow"})
		require.NoError(t, err)
		assert.Equal(t, NoMessageReply, resp.Reply)
		assert.Zero(t, resolver.calls)
		assert.Zero(t, gen.calls)
		assert.Zero(t, fin.calls)
	}
}

func TestReply_PlainAnswerPassesThrough(t *testing.T) {
	gen := &fakeGenerator{reply: "A haircut is £25 and takes 30 minutes."}
	fin := &fakeFinalizer{}
	svc := NewService(&fakeResolver{res: glowResolution()}, gen, fin, promptCfg, logger.Nop(), nil)

	resp, err := svc.Reply(context.Background(), Request{Message: "What are your prices?", BusinessSlug: "glow"})
	require.NoError(t, err)
	assert.Equal(t, gen.reply, resp.Reply)
	assert.Zero(t, fin.calls)

	assert.Equal(t, "What are your prices?", gen.user)
	assert.Contains(t, gen.system, "Glow Studio")
	assert.Contains(t, gen.system, "- Haircut (£25.00, 30 min)")
}

func TestReply_BookingIntentIsFinalized(t *testing.T) {
	gen := &fakeGenerator{reply: `Perfect! {"name":"Sam","phone":"07111222333","service":"haircut","date":"next Friday","time":"3pm","notes":""}`}
	fin := &fakeFinalizer{}
	svc := NewService(&fakeResolver{res: glowResolution()}, gen, fin, promptCfg, logger.Nop(), nil)

	resp, err := svc.Reply(context.Background(), Request{Message: "Book me in"})
	require.NoError(t, err)
	assert.Equal(t, 1, fin.calls)
	assert.Equal(t, "Sam", fin.intent.Name)
	assert.Equal(t, booking.Confirmation(fin.intent), resp.Reply)
}

func TestReply_ModelFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("context deadline exceeded")}
	fin := &fakeFinalizer{}
	svc := NewService(&fakeResolver{res: glowResolution()}, gen, fin, promptCfg, logger.Nop(), nil)

	_, err := svc.Reply(context.Background(), Request{Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUpstream, apperrors.CodeOf(err))
	assert.Zero(t, fin.calls)
}

// Wires the real resolver and reconciler over in-memory repositories.

type memTenants map[string]*model.Tenant

func (m memTenants) GetBySlug(_ context.Context, slug string) (*model.Tenant, error) {
	if t, ok := m[slug]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("tenant %q: %w", slug, repository.ErrNotFound)
}

type memServices map[uuid.UUID][]*model.Service

func (m memServices) ListActive(_ context.Context, id uuid.UUID) ([]*model.Service, error) {
	return m[id], nil
}

type memStore struct {
	err      error
	bookings []model.BookingIntent
}

func (m *memStore) Persist(_ context.Context, _ *model.Tenant, intent model.BookingIntent) (*model.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.bookings = append(m.bookings, intent)
	return &model.Booking{Service: intent.Service}, nil
}

type memNotifier struct{ sent []model.BookingIntent }

func (m *memNotifier) Forward(_ context.Context, intent model.BookingIntent) error {
	m.sent = append(m.sent, intent)
	return nil
}

func TestReply_EndToEndBooking(t *testing.T) {
	demo := &model.Tenant{Base: model.Base{ID: uuid.New()}, Name: "Demo Salon", Slug: "demo"}
	catalog := []*model.Service{{Name: "Haircut"}, {Name: "Hair Colour"}}

	resolver := tenant.NewService(
		memTenants{"demo": demo},
		memServices{demo.ID: catalog},
		tenant.Config{FallbackSlug: "demo", DefaultName: "our salon"},
		logger.Nop(), nil,
	)
	store := &memStore{err: errors.New("db down")}
	notifier := &memNotifier{}
	reconciler := booking.NewService(store, notifier, logger.Nop(), nil)
	gen := &fakeGenerator{reply: `{"name":"Sam","phone":"07111222333","service":"hair cut","date":"next Friday","time":"3pm"}`}

	svc := NewService(resolver, gen, reconciler, promptCfg, logger.Nop(), nil)
	resp, err := svc.Reply(context.Background(), Request{
		Message:      "Book a haircut next Friday at 3pm, I'm Sam, 07111222333",
		BusinessSlug: "unknown-salon",
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Haircut")
	assert.Contains(t, resp.Reply, "next Friday")
	assert.Contains(t, resp.Reply, "3pm")
	assert.Contains(t, resp.Reply, "Sam")
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Haircut", notifier.sent[0].Service)
	assert.Contains(t, gen.system, "Demo Salon")
}

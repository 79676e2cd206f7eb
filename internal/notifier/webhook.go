package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

const (
	defaultWebhookTimeout = 10 * time.Second

	// maxLoggedBody caps how much of a downstream response ends up in the logs.
	maxLoggedBody = 1024
)

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// Webhook POSTs the booking JSON to a fixed scheduling endpoint.
type Webhook struct {
	url     string
	client  *http.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewWebhook(cfg WebhookConfig, logger zerolog.Logger, m *metrics.Metrics) *Webhook {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultWebhookTimeout
	}
	return &Webhook{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With().Str("component", "webhook_notifier").Logger(),
		metrics: m,
	}
}

// Enabled is false when no URL is configured; Forward is then a no-op.
func (w *Webhook) Enabled() bool {
	return w.url != ""
}

func (w *Webhook) Forward(ctx context.Context, intent model.BookingIntent) error {
	if !w.Enabled() {
		return nil
	}

	body, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.metrics.IncNotification("webhook", "error")
		w.logger.Error().Err(err).Str("url", w.url).Msg("failed to forward booking")
		return fmt.Errorf("failed to forward booking: %w", err)
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		w.metrics.IncNotification("webhook", "rejected")
		w.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("webhook rejected booking")
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	w.metrics.IncNotification("webhook", "ok")
	w.logger.Info().
		Int("status", resp.StatusCode).
		Str("body", string(snippet)).
		Msg("booking forwarded")
	return nil
}

// Package llm wraps the text-generation providers the assistant can talk to.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrMissingAPIKey   = errors.New("llm: api key is not set")
	ErrEmptyResponse   = errors.New("llm: model returned no content")
	ErrUnknownProvider = errors.New("llm: unknown provider")
)

// Generator produces one completion for a system context and a user message.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type Config struct {
	Provider    string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// New builds the generator for cfg.Provider. Gemini generators hold a client
// that should be closed on shutdown; they implement io.Closer.
func New(ctx context.Context, cfg Config, m *metrics.Metrics) (Generator, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAI(cfg, m)
	case ProviderGemini:
		return NewGemini(ctx, cfg, m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

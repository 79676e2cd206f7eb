package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

const DefaultGeminiModel = "gemini-1.5-flash"

type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	metrics     *metrics.Metrics
}

func NewGemini(ctx context.Context, cfg Config, m *metrics.Metrics) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = DefaultGeminiModel
	}
	return &Gemini{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		metrics:     m,
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, system, user string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// GenerativeModel is mutable, so each call gets its own.
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))

	started := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(user))
	g.metrics.ObserveModel(ProviderGemini, started, err)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := joinText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func joinText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

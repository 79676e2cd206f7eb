package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

const DefaultOpenAIModel = "gpt-4.1-mini"

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAI struct {
	client      chatClient
	model       string
	temperature float32
	metrics     *metrics.Metrics
}

func NewOpenAI(cfg Config, m *metrics.Metrics) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return newOpenAI(openai.NewClientWithConfig(clientCfg), cfg, m), nil
}

func newOpenAI(client chatClient, cfg Config, m *metrics.Metrics) *OpenAI {
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		metrics:     m,
	}
}

func (o *OpenAI) Generate(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	started := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, req)
	o.metrics.ObserveModel(ProviderOpenAI, started, err)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

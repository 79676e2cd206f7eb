package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

type fakeChatClient struct {
	req  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestOpenAI_Generate(t *testing.T) {
	fake := &fakeChatClient{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "Hi, I'm Zyra!"}}},
	}}
	m := metrics.New("test", prometheus.NewRegistry())
	gen := newOpenAI(fake, Config{Temperature: 0.3}, m)

	out, err := gen.Generate(context.Background(), "be nice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi, I'm Zyra!", out)

	assert.Equal(t, DefaultOpenAIModel, fake.req.Model)
	require.Len(t, fake.req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.req.Messages[0].Role)
	assert.Equal(t, "be nice", fake.req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, fake.req.Messages[1].Role)
	assert.Equal(t, "hello", fake.req.Messages[1].Content)

	assert.Equal(t, 1, testutil.CollectAndCount(m.ModelLatency))
}

func TestOpenAI_Errors(t *testing.T) {
	gen := newOpenAI(&fakeChatClient{err: errors.New("429 rate limited")}, Config{Model: "gpt-4o"}, nil)
	_, err := gen.Generate(context.Background(), "sys", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	gen = newOpenAI(&fakeChatClient{}, Config{}, nil)
	_, err = gen.Generate(context.Background(), "sys", "hi")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "llama", APIKey: "k"}, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = New(context.Background(), Config{Provider: ProviderOpenAI}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(context.Background(), Config{Provider: ProviderGemini}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	gen, err := New(context.Background(), Config{APIKey: "sk-test"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, gen)
}

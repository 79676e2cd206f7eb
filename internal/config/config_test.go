package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	assert.Equal(t, "demo", cfg.Tenant.FallbackSlug)
	assert.Equal(t, "Zyra", cfg.Prompt.AssistantName)
	assert.Equal(t, "bookings", cfg.Redis.Channel)
	assert.Empty(t, cfg.Notifier.WebhookURL)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodySize)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8081
llm:
  provider: gemini
  model: gemini-1.5-flash
tenant:
  fallback_slug: house
notifier:
  webhook_url: http://scheduler.local/hook
`)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ZYRA_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, "house", cfg.Tenant.FallbackSlug)
	assert.Equal(t, "http://scheduler.local/hook", cfg.Notifier.WebhookURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	dir := writeConfig(t, `
llm:
  provider: llama
`)
	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadConfig_WriteTimeoutBudget(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "equal to model plus webhook",
			body:    "server:\n  write_timeout: 70s\nllm:\n  timeout: 60s\nnotifier:\n  timeout: 10s\n",
			wantErr: true,
		},
		{
			name:    "shorter than model",
			body:    "server:\n  write_timeout: 30s\n",
			wantErr: true,
		},
		{
			name: "room to spare",
			body: "server:\n  write_timeout: 75s\nllm:\n  timeout: 60s\nnotifier:\n  timeout: 10s\n",
		},
		{
			name: "disabled",
			body: "server:\n  write_timeout: 0s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "server.write_timeout")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "zyra",
		Password: "p@ss",
		Name:     "bookings",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://zyra:p%40ss@db:5432/bookings?sslmode=disable", cfg.URL())

	cfg.DSN = "postgres://override/db"
	assert.Equal(t, "postgres://override/db", cfg.URL())
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/zyra-api/internal/handler"
	chathandler "github.com/jwalitptl/zyra-api/internal/handler/chat"
	"github.com/jwalitptl/zyra-api/internal/handler/health"
	"github.com/jwalitptl/zyra-api/internal/middleware"
	"github.com/jwalitptl/zyra-api/internal/model"
	"github.com/jwalitptl/zyra-api/internal/service/chat"
)

type echoChat struct{}

func (echoChat) Reply(_ context.Context, req chat.Request) (chat.Response, error) {
	if req.Message == "panic" {
		panic("unexpected")
	}
	return chat.Response{Reply: "echo: " + req.Message}, nil
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T, rateLimited bool) *gin.Engine {
	return newTestRouterWithBodyLimit(t, rateLimited, 0)
}

func newTestRouterWithBodyLimit(t *testing.T, rateLimited bool, maxBody int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	r := NewRouter(
		chathandler.NewHandler(echoChat{}),
		health.NewHandler(okPinger{}),
		handler.NewHandler(reg),
		RouterConfig{
			RateLimitEnabled: rateLimited,
			RateLimit:        rate.Limit(0.001),
			RateBurst:        1,
			CORSConfig:       middleware.DefaultCORSConfig(),
			MaxBodySize:      maxBody,
			MetricsPrefix:    "test",
			Registerer:       reg,
			Logger:           zerolog.Nop(),
		},
	)
	r.Setup()
	return r.Engine()
}

func do(e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRouter_ChatRoutes(t *testing.T) {
	e := newTestRouter(t, false)

	for _, path := range []string{"/chat", "/api/v1/chat"} {
		w := do(e, http.MethodPost, path, `{"message":"hi"}`)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"reply":"echo: hi"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))
		assert.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
	}
}

func TestRouter_PanicReturnsApology(t *testing.T) {
	e := newTestRouter(t, false)

	w := do(e, http.MethodPost, "/chat", `{"message":"panic"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, something went wrong")
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newTestRouter(t, false)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/v1/health/live", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/v1/health/ready", "").Code)

	w := do(e, http.MethodGet, "/api/v1/health/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

func TestRouter_RateLimitOnlyAppliesToChat(t *testing.T) {
	e := newTestRouter(t, true)

	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/v1/chat", `{"message":"hi"}`).Code)
	w := do(e, http.MethodPost, "/api/v1/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"reply":"`+model.RateLimitedReply+`"}`, w.Body.String())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/v1/health/live", "").Code)
	}
}

func TestRouter_OversizeChatBodyGetsReply(t *testing.T) {
	e := newTestRouterWithBodyLimit(t, false, 32)

	for _, path := range []string{"/chat", "/api/v1/chat"} {
		w := do(e, http.MethodPost, path, `{"message":"`+strings.Repeat("a", 64)+`"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, path)
		assert.JSONEq(t, `{"reply":"`+model.TooLargeReply+`"}`, w.Body.String())
	}

	w := do(e, http.MethodPost, "/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

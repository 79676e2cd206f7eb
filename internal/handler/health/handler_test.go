package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		path   string
		pinger fakePinger
		want   int
	}{
		{name: "live", path: "/api/v1/health/live", want: http.StatusOK},
		{name: "ready", path: "/api/v1/health/ready", want: http.StatusOK},
		{name: "db down", path: "/api/v1/health/ready", pinger: fakePinger{err: errors.New("refused")}, want: http.StatusServiceUnavailable},
		{name: "live while db down", path: "/api/v1/health/live", pinger: fakePinger{err: errors.New("refused")}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHandler(tt.pinger).RegisterRoutes(r.Group("/api/v1"))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

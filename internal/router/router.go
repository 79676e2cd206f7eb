package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/zyra-api/internal/handler"
	"github.com/jwalitptl/zyra-api/internal/middleware"
	"github.com/jwalitptl/zyra-api/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouteHandler interface {
	RegisterRoutes(gin.IRoutes)
}

type Router struct {
	engine      *gin.Engine
	chatH       RouteHandler
	healthH     Handler
	h           *handler.Handler
	rateLimiter *middleware.RateLimiter
	maxBodySize int64
	metrics     *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MaxBodySize      int64
	MetricsPrefix    string
	Registerer       prometheus.Registerer
	Logger           zerolog.Logger
}

func NewRouter(
	chatH RouteHandler,
	healthH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	engine := gin.New()

	r := &Router{
		engine:      engine,
		chatH:       chatH,
		healthH:     healthH,
		h:           h,
		maxBodySize: config.MaxBodySize,
		metrics:     initRouterMetrics(config.MetricsPrefix, config.Registerer),
	}

	engine.Use(
		middleware.RequestID(config.Logger),
		middleware.Recovery(config.Logger, model.ChatResponse{Reply: model.ErrorReply}),
		middleware.Logger(config.Logger),
		r.metricsMiddleware(),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
			Body:  model.ChatResponse{Reply: model.RateLimitedReply},
		})
	}

	return r
}

func (r *Router) Setup() {
	// Legacy unversioned route used by older widget builds.
	r.chatH.RegisterRoutes(r.engine.Group("", r.chatMiddleware()...))

	api := r.engine.Group("/api/v1")

	// Add version header
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.chatH.RegisterRoutes(api.Group("", r.chatMiddleware()...))
}

// chatMiddleware rejects with the {reply} shape the widget renders.
func (r *Router) chatMiddleware() []gin.HandlerFunc {
	mw := []gin.HandlerFunc{
		middleware.CacheControl(middleware.NoStoreConfig()),
		middleware.SizeLimit(r.maxBodySize, model.ChatResponse{Reply: model.TooLargeReply}),
	}
	if r.rateLimiter != nil {
		mw = append(mw, r.rateLimiter.RateLimit())
	}
	return mw
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("", middleware.CacheControl(middleware.CacheConfig{NoCache: true}))
	r.healthH.RegisterRoutes(health)
	health.GET("/health/metrics", r.h.MetricsHandler)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string, reg prometheus.Registerer) *routerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if prefix == "" {
		prefix = "zyra"
	}
	factory := promauto.With(reg)

	return &routerMetrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 500 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "server").Inc()
		} else if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/zyra-api/internal/config"
	"github.com/jwalitptl/zyra-api/internal/handler"
	chatHandler "github.com/jwalitptl/zyra-api/internal/handler/chat"
	"github.com/jwalitptl/zyra-api/internal/handler/health"
	"github.com/jwalitptl/zyra-api/internal/llm"
	"github.com/jwalitptl/zyra-api/internal/middleware"
	"github.com/jwalitptl/zyra-api/internal/notifier"
	"github.com/jwalitptl/zyra-api/internal/repository/postgres"
	"github.com/jwalitptl/zyra-api/internal/router"
	bookingService "github.com/jwalitptl/zyra-api/internal/service/booking"
	chatService "github.com/jwalitptl/zyra-api/internal/service/chat"
	tenantService "github.com/jwalitptl/zyra-api/internal/service/tenant"
	"github.com/jwalitptl/zyra-api/pkg/logger"
	"github.com/jwalitptl/zyra-api/pkg/messaging/redis"
	"github.com/jwalitptl/zyra-api/pkg/metrics"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New(cfg.Metrics.Namespace, reg)
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(cfg.Database.URL(), appLogger); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// Model provider
	generator, err := llm.New(context.Background(), llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, appMetrics)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.LLM.Provider).Msg("failed to initialize model provider")
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}

	// Downstream notification sinks
	webhook := notifier.NewWebhook(notifier.WebhookConfig{
		URL:     cfg.Notifier.WebhookURL,
		Timeout: cfg.Notifier.Timeout,
	}, appLogger, appMetrics)
	if !webhook.Enabled() {
		appLogger.Warn().Msg("notifier.webhook_url is empty, bookings will not be forwarded to a scheduler")
	}
	sinks := []notifier.Notifier{webhook}

	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL}, appLogger)
		if err != nil {
			appLogger.Warn().Err(err).Msg("redis unavailable, booking broadcast disabled")
		} else {
			defer broker.Close()
			sinks = append(sinks, notifier.NewPublisher(broker, cfg.Redis.Channel, appLogger, appMetrics))
		}
	}

	// Initialize services
	tenantSvc := tenantService.NewService(tenantRepo, serviceRepo, tenantService.Config{
		FallbackSlug: cfg.Tenant.FallbackSlug,
		DefaultName:  cfg.Tenant.DefaultName,
	}, appLogger, appMetrics)
	gateway := bookingService.NewGateway(clientRepo, bookingRepo, appLogger, appMetrics)
	bookingSvc := bookingService.NewService(gateway, notifier.NewMulti(sinks...), appLogger, appMetrics)
	chatSvc := chatService.NewService(tenantSvc, generator, bookingSvc, chatService.PromptConfig{
		AssistantName:  cfg.Prompt.AssistantName,
		TenantAware:    cfg.Prompt.TenantAware,
		CatalogAware:   cfg.Prompt.CatalogAware,
		CurrencySymbol: cfg.Prompt.CurrencySymbol,
	}, appLogger, appMetrics)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	if len(cfg.CORS.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.CORS.AllowedMethods
	}
	if len(cfg.CORS.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.CORS.AllowedHeaders
	}

	r := router.NewRouter(
		chatHandler.NewHandler(chatSvc),
		health.NewHandler(db),
		handler.NewHandler(reg),
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       corsCfg,
			MaxBodySize:      cfg.Server.MaxBodySize,
			MetricsPrefix:    cfg.Metrics.Namespace,
			Registerer:       reg,
			Logger:           appLogger,
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("provider", cfg.LLM.Provider).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	appLogger.Info().Msg("server exited properly")
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Model related metrics
	ModelLatency *prometheus.HistogramVec

	// Pipeline metrics
	Intents            *prometheus.CounterVec
	ServiceMatches     *prometheus.CounterVec
	TenantResolutions  *prometheus.CounterVec
	BookingsFinalized  prometheus.Counter
	PersistenceFailure *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
}

// New creates and registers all application metrics on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ModelLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "generation_duration_seconds",
			Help:      "Latency of model text generation calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 3, 5, 8, 13, 20, 30},
		}, []string{"provider", "status"}),
		Intents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "intents_total",
			Help:      "Model replies by whether a complete booking intent was extracted",
		}, []string{"outcome"}),
		ServiceMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "service_matches_total",
			Help:      "Service name reconciliation results",
		}, []string{"result"}),
		TenantResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tenant",
			Name:      "resolutions_total",
			Help:      "Tenant resolutions by the source that produced the tenant",
		}, []string{"source"}),
		BookingsFinalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "finalized_total",
			Help:      "Total number of bookings confirmed to the user",
		}),
		PersistenceFailure: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "persistence_failures_total",
			Help:      "Failed inserts by pipeline step",
		}, []string{"step"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "deliveries_total",
			Help:      "Outbound booking notifications by sink and status",
		}, []string{"sink", "status"}),
	}
}

func (m *Metrics) ObserveModel(provider string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ModelLatency.WithLabelValues(provider, status).Observe(time.Since(started).Seconds())
}

func (m *Metrics) IncIntent(detected bool) {
	if m == nil {
		return
	}
	outcome := "none"
	if detected {
		outcome = "detected"
	}
	m.Intents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncServiceMatch(result string) {
	if m == nil {
		return
	}
	m.ServiceMatches.WithLabelValues(result).Inc()
}

func (m *Metrics) IncTenantResolution(source string) {
	if m == nil {
		return
	}
	m.TenantResolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) IncBookingFinalized() {
	if m == nil {
		return
	}
	m.BookingsFinalized.Inc()
}

func (m *Metrics) IncPersistenceFailure(step string) {
	if m == nil {
		return
	}
	m.PersistenceFailure.WithLabelValues(step).Inc()
}

func (m *Metrics) IncNotification(sink, status string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(sink, status).Inc()
}

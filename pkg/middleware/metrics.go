package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/client360/pkg/router"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// unmatchedRoute labels navigations that never matched a route.
const unmatchedRoute = "none"

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "client360").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "client360",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation collectors.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	notFoundTotal      prometheus.Counter
	activeSessions     prometheus.Gauge
}

// NewMetrics registers the navigation collectors. It panics if they are
// already registered with the chosen registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigation transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "direction", "outcome"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation transition duration in seconds, mount included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"direction"}),

		notFoundTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "not_found_total",
			Help:        "Total number of navigations that matched no route",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open navigation sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Middleware returns the navigation middleware recording into m.
func (m *Metrics) Middleware() router.Middleware {
	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()

		direction := nav.Direction.String()
		m.navigationDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())

		route := unmatchedRoute
		if nav.Result != nil {
			route = nav.Result.Route.Name
		}
		outcome := Outcome(err)
		if outcome == OutcomeNotFound {
			m.notFoundTotal.Inc()
		}
		m.navigationsTotal.WithLabelValues(route, direction, outcome).Inc()

		return err
	})
}

// SessionOpened records a new navigation session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records a closed navigation session.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// Prometheus creates navigation metrics middleware with a fresh set of
// collectors. Use NewMetrics to share collectors across navigators.
func Prometheus(opts ...MetricsOption) router.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Outcome classifies a transition error into a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case router.IsNotFound(err):
		return OutcomeNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

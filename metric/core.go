package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics (not request-specific state).
type Metrics struct {
	// HTTP metrics
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	RateLimitRejects   prometheus.Counter
	AuthFailures       prometheus.Counter

	// Schema pipeline metrics
	SchemasGenerated    *prometheus.CounterVec
	ValidationsRun      *prometheus.CounterVec
	CompletenessScore   *prometheus.HistogramVec
	GenerationDuration  *prometheus.HistogramVec

	// CMS metrics
	CMSRequests   *prometheus.CounterVec
	CMSInjections *prometheus.CounterVec

	// Error and health metrics
	ErrorsTotal       *prometheus.CounterVec
	HealthCheckStatus *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semschema",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitRejects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "http",
				Name:      "rate_limit_rejects_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),

		AuthFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "http",
				Name:      "auth_failures_total",
				Help:      "Total number of rejected API key checks",
			},
		),

		SchemasGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "generator",
				Name:      "schemas_total",
				Help:      "Total number of schema generations",
			},
			[]string{"schema_type", "status"},
		),

		ValidationsRun: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "validator",
				Name:      "validations_total",
				Help:      "Total number of schema validations",
			},
			[]string{"schema_type", "result"},
		),

		CompletenessScore: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semschema",
				Subsystem: "validator",
				Name:      "completeness_score",
				Help:      "Completeness score distribution per schema type",
				Buckets:   []float64{0, 10, 25, 50, 75, 90, 100},
			},
			[]string{"schema_type"},
		),

		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semschema",
				Subsystem: "generator",
				Name:      "duration_seconds",
				Help:      "Schema generation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"schema_type"},
		),

		CMSRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "cms",
				Name:      "requests_total",
				Help:      "Total number of CMS API requests",
			},
			[]string{"operation", "status"},
		),

		CMSInjections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "cms",
				Name:      "injections_total",
				Help:      "Total number of schema injections into CMS posts",
			},
			[]string{"status"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semschema",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component", "class"},
		),

		HealthCheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "semschema",
				Subsystem: "health",
				Name:      "status",
				Help:      "Health check status (0=unhealthy, 1=healthy)",
			},
			[]string{"component"},
		),
	}
}

// RecordHTTPRequest increments the request counter and observes its duration.
func (c *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, path, status).Inc()
	c.HTTPDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRateLimitReject increments the rate limiter rejection counter.
func (c *Metrics) RecordRateLimitReject() {
	c.RateLimitRejects.Inc()
}

// RecordAuthFailure increments the failed authentication counter.
func (c *Metrics) RecordAuthFailure() {
	c.AuthFailures.Inc()
}

// RecordGeneration counts one schema generation and its duration.
func (c *Metrics) RecordGeneration(schemaType, status string, duration time.Duration) {
	c.SchemasGenerated.WithLabelValues(schemaType, status).Inc()
	c.GenerationDuration.WithLabelValues(schemaType).Observe(duration.Seconds())
}

// RecordValidation counts one validation and observes its completeness score.
func (c *Metrics) RecordValidation(schemaType string, valid bool, score float64) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	c.ValidationsRun.WithLabelValues(schemaType, result).Inc()
	c.CompletenessScore.WithLabelValues(schemaType).Observe(score)
}

// RecordCMSRequest counts one CMS API call.
func (c *Metrics) RecordCMSRequest(operation, status string) {
	c.CMSRequests.WithLabelValues(operation, status).Inc()
}

// RecordCMSInjection counts one schema injection attempt.
func (c *Metrics) RecordCMSInjection(status string) {
	c.CMSInjections.WithLabelValues(status).Inc()
}

// RecordError increments the error counter for a component and error class.
func (c *Metrics) RecordError(component, class string) {
	c.ErrorsTotal.WithLabelValues(component, class).Inc()
}

// RecordHealthStatus updates health check status
func (c *Metrics) RecordHealthStatus(component string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	c.HealthCheckStatus.WithLabelValues(component).Set(value)
}

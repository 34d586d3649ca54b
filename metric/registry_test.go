package metric

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.NotNil(t, registry.CoreMetrics())
}

func TestMetricsRegistry_Register(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.Register("wordpress", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_counter" {
			found = true
			break
		}
	}
	assert.True(t, found, "Counter should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterDuplicate(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dup_counter",
		Help: "A test counter",
	})

	require.NoError(t, registry.Register("wordpress", "dup_counter", counter))

	err := registry.Register("wordpress", "dup_counter", counter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMetricsRegistry_Unregister(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})
	require.NoError(t, registry.Register("wordpress", "test_gauge", gauge))

	assert.True(t, registry.Unregister("wordpress", "test_gauge"))
	assert.False(t, registry.Unregister("wordpress", "test_gauge"))

	// Re-registration after unregister should succeed.
	require.NoError(t, registry.Register("wordpress", "test_gauge", gauge))
}

func TestMetricsRegistry_ConcurrentRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", n),
				Help: "A test counter",
			})
			assert.NoError(t, registry.Register("gateway", fmt.Sprintf("counter_%d", n), counter))
		}(i)
	}
	wg.Wait()
}

func TestMetrics_RecordHelpers(t *testing.T) {
	registry := NewMetricsRegistry()
	core := registry.CoreMetrics()

	core.RecordHTTPRequest("POST", "/api/v1/schema/generate", "200", 25*time.Millisecond)
	core.RecordGeneration("Article", "success", 3*time.Millisecond)
	core.RecordValidation("Product", false, 62.5)
	core.RecordCMSRequest("get_post", "success")
	core.RecordCMSInjection("failure")
	core.RecordError("gateway", "invalid")
	core.RecordHealthStatus("gateway", true)
	core.RecordRateLimitReject()
	core.RecordAuthFailure()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"semschema_http_requests_total",
		"semschema_http_request_duration_seconds",
		"semschema_generator_schemas_total",
		"semschema_generator_duration_seconds",
		"semschema_validator_validations_total",
		"semschema_validator_completeness_score",
		"semschema_cms_requests_total",
		"semschema_cms_injections_total",
		"semschema_errors_total",
		"semschema_health_status",
		"semschema_http_rate_limit_rejects_total",
		"semschema_http_auth_failures_total",
	} {
		assert.True(t, names[want], "missing metric family %s", want)
	}

	for name := range names {
		if strings.HasPrefix(name, "go_") || strings.HasPrefix(name, "process_") {
			continue
		}
		assert.True(t, strings.HasPrefix(name, "semschema_"), "unexpected namespace for %s", name)
	}
}

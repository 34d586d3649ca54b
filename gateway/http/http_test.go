package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semschema/config"
	"github.com/c360/semschema/generator"
	"github.com/c360/semschema/health"
	"github.com/c360/semschema/validator"
)

func testConfig() Config {
	return Config{
		Port:        8000,
		CORSOrigins: []string{"*"},
		Limits: config.LimitsConfig{
			MaxContentChars: 1_000_000,
			MaxFieldKeys:    50,
			MaxSchemaKeys:   100,
			MaxBodyBytes:    4 << 20,
		},
	}
}

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	gen := generator.New(generator.SiteDefaults{}, nil)
	srv := NewServer(cfg, gen, validator.New(nil), nil, health.NewMonitor(), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestGenerateEndpoint(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/v1/schema/generate", map[string]any{
		"schema_type": "Article",
		"content":     "My Title\nBody text here.",
		"url":         "https://example.com/post",
		"metadata":    map[string]any{"author": "Jane"},
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body struct {
		Schema            map[string]any `json:"schema"`
		CompletenessScore float64        `json:"completeness_score"`
		Warnings          []string       `json:"warnings"`
	}
	decodeInto(t, resp, &body)

	assert.Equal(t, "Article", body.Schema["@type"])
	assert.Equal(t, "My Title", body.Schema["headline"])
	assert.Greater(t, body.CompletenessScore, 0.0)
	assert.NotNil(t, body.Warnings)
}

func TestGenerateEndpoint_UnsupportedType(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/v1/schema/generate", map[string]any{
		"schema_type": "Widget",
		"content":     "some content",
	}, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validation_error", body["error"])
	assert.Contains(t, body["message"], "Unsupported schema type: Widget")
	assert.Equal(t, false, body["retryable"])
}

func TestGenerateEndpoint_MissingFields(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/v1/schema/generate", map[string]any{}, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error   string `json:"error"`
		Details []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validation_error", body.Error)

	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"schema_type", "content"}, fields)
}

func TestValidateEndpoint_CompatMode(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/v1/schema/validate", map[string]any{
		"schema": map[string]any{
			"@type":    "Article",
			"headline": "Missing context",
		},
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		IsValid           bool     `json:"is_valid"`
		Errors            []string `json:"errors"`
		Warnings          []string `json:"warnings"`
		CompletenessScore float64  `json:"completeness_score"`
		Suggestions       []string `json:"suggestions"`
	}
	decodeInto(t, resp, &body)

	assert.False(t, body.IsValid)
	assert.NotEmpty(t, body.Errors)
	for _, msg := range body.Errors {
		assert.IsType(t, "", msg)
	}
}

func TestValidateEndpoint_StructuredMode(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/v1/schema/validate?structured=true", map[string]any{
		"schema": map[string]any{
			"@type":    "Article",
			"headline": "Missing context",
		},
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		IsValid bool `json:"is_valid"`
		Errors  []struct {
			Path     string `json:"path"`
			Code     string `json:"code"`
			Severity string `json:"severity"`
		} `json:"errors"`
	}
	decodeInto(t, resp, &body)

	assert.False(t, body.IsValid)
	require.NotEmpty(t, body.Errors)

	found := false
	for _, issue := range body.Errors {
		if issue.Code == "MISSING_CONTEXT" {
			found = true
			assert.Equal(t, "ERROR", issue.Severity)
		}
	}
	assert.True(t, found, "expected a MISSING_CONTEXT issue")
}

func TestValidateEndpoint_BadStructuredFlag(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/v1/schema/validate?structured=banana", map[string]any{
		"schema": map[string]any{"@type": "Article"},
	}, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTypesEndpoint(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/v1/schema/types")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Types []string `json:"types"`
		Count int      `json:"count"`
	}
	decodeInto(t, resp, &body)

	assert.Equal(t, 9, body.Count)
	assert.Len(t, body.Types, 9)
	assert.Contains(t, body.Types, "Article")
	assert.Contains(t, body.Types, "HowTo")
}

func TestTemplateEndpoint(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/v1/schema/template/Product")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		SchemaType string `json:"schema_type"`
		Template   struct {
			Required []string `json:"required"`
			Optional []string `json:"optional"`
		} `json:"template"`
	}
	decodeInto(t, resp, &body)

	assert.Equal(t, "Product", body.SchemaType)
	assert.ElementsMatch(t, []string{"name", "description"}, body.Template.Required)
	assert.Contains(t, body.Template.Optional, "offers")
}

func TestTemplateEndpoint_UnknownType(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/v1/schema/template/Widget")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Error          string   `json:"error"`
		SupportedTypes []string `json:"supported_types"`
	}
	decodeInto(t, resp, &body)

	assert.Equal(t, "Unknown schema type: Widget", body.Error)
	assert.Len(t, body.SupportedTypes, 9)
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{Enabled: true, APIKeys: []string{"secret-key"}}
	ts := newTestServer(t, cfg)

	t.Run("missing key rejected", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/schema/types")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "ApiKey", resp.Header.Get("WWW-Authenticate"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid or missing API key", body["detail"])
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/schema/types", nil)
		req.Header.Set("X-API-Key", "wrong")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid key accepted", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/schema/types", nil)
		req.Header.Set("X-API-Key", "secret-key")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("health stays public", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 2}
	ts := newTestServer(t, cfg)

	var rejected bool
	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/api/v1/schema/types")
		require.NoError(t, err)
		if resp.StatusCode == http.StatusTooManyRequests {
			rejected = true
			assert.Equal(t, "60", resp.Header.Get("Retry-After"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "rate_limit_exceeded", body["error"])
			assert.Equal(t, true, body["retryable"])
			assert.Equal(t, float64(60), body["retry_after"])
		}
		resp.Body.Close()
	}
	assert.True(t, rejected, "expected at least one 429 after the burst")
}

func TestBodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Limits.MaxBodyBytes = 256
	ts := newTestServer(t, cfg)

	huge := strings.Repeat("x", 1024)
	resp := postJSON(t, ts.URL+"/api/v1/schema/generate", map[string]any{
		"schema_type": "Article",
		"content":     huge,
	}, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/v1/schema/generate")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/schema/types", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/schema/generate", nil)
	req.Header.Set("Origin", "https://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownPath(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

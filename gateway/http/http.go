// Package http binds the gateway envelopes to a REST/JSON API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/c360/semschema/config"
	"github.com/c360/semschema/errors"
	"github.com/c360/semschema/generator"
	"github.com/c360/semschema/health"
	"github.com/c360/semschema/metric"
	"github.com/c360/semschema/validator"
)

// Config carries the settings the HTTP gateway needs. Build one from the
// application config with ConfigFrom.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
	Auth         config.AuthConfig
	Limits       config.LimitsConfig
	RateLimit    config.RateLimitConfig
}

// ConfigFrom projects the gateway-relevant sections out of the application
// config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Auth:         cfg.Auth,
		Limits:       cfg.Limits,
		RateLimit:    cfg.RateLimit,
	}
}

// Server is the REST gateway in front of the generator and validator.
type Server struct {
	config    Config
	generator *generator.Generator
	validator *validator.Validator
	metrics   *metric.Metrics
	monitor   *health.Monitor
	logger    *slog.Logger

	server  *http.Server
	running atomic.Bool

	// Per-client rate limiters, keyed by client IP
	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter

	mu        sync.Mutex
	startTime time.Time

	requestsTotal   atomic.Uint64
	requestsSuccess atomic.Uint64
	requestsFailed  atomic.Uint64
}

// NewServer creates the gateway. A nil monitor gets a fresh one; a nil
// logger falls back to slog's default.
func NewServer(cfg Config, gen *generator.Generator, val *validator.Validator,
	metrics *metric.Metrics, monitor *health.Monitor, logger *slog.Logger) *Server {
	if monitor == nil {
		monitor = health.NewMonitor()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:    cfg,
		generator: gen,
		validator: val,
		metrics:   metrics,
		monitor:   monitor,
		logger:    logger.With("component", "gateway"),
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Handler returns the fully wired route tree. Exposed separately from Start
// so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/schema/generate", s.handleGenerate)
	mux.HandleFunc("/api/v1/schema/validate", s.handleValidate)
	mux.HandleFunc("/api/v1/schema/types", s.handleTypes)
	mux.HandleFunc("/api/v1/schema/template/", s.handleTemplate)
	return s.withMiddleware(mux)
}

// Start runs the server and blocks until it stops. Call Stop from another
// goroutine to shut down.
func (s *Server) Start(_ context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.WrapInvalid(
			fmt.Errorf("server already running"),
			"Server", "Start", "check state")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.mu.Lock()
	s.startTime = time.Now()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	srv := s.server
	s.mu.Unlock()

	s.monitor.UpdateHealthy("gateway", "serving")
	s.logger.Info("HTTP gateway listening", "addr", addr)

	err := srv.ListenAndServe()
	s.running.Store(false)
	if err != nil && err != http.ErrServerClosed {
		s.monitor.Update("gateway", health.FromError("gateway", err))
		return errors.WrapTransient(err, "Server", "Start", "serve HTTP")
	}
	return nil
}

// Stop shuts the server down gracefully, honoring the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	s.logger.Info("HTTP gateway stopping",
		"requests_total", s.requestsTotal.Load(),
		"requests_failed", s.requestsFailed.Load())

	if err := srv.Shutdown(ctx); err != nil {
		return errors.WrapTransient(err, "Server", "Stop", "shutdown HTTP server")
	}
	return nil
}

// Uptime reports how long the server has been running.
func (s *Server) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

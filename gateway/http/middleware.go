package http

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/c360/semschema/gateway"
)

type ctxKey int

const requestIDKey ctxKey = iota

// publicPaths are reachable without an API key even when auth is enabled.
var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// getOrGenerateRequestID extracts the request ID from headers or generates
// a new one so every response can be traced back through the logs.
func getOrGenerateRequestID(r *http.Request) string {
	if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
		return reqID
	}
	return uuid.NewString()
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withMiddleware wraps the route tree with request ID propagation, CORS,
// rate limiting, API key auth, and per-request metrics, in that order.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := getOrGenerateRequestID(r)
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

		s.applyCORS(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		s.requestsTotal.Add(1)

		if !s.allowClient(clientKey(r)) {
			s.requestsFailed.Add(1)
			if s.metrics != nil {
				s.metrics.RecordRateLimitReject()
				s.metrics.RecordHTTPRequest(r.Method, routePattern(r.URL.Path),
					strconv.Itoa(http.StatusTooManyRequests), time.Since(start))
			}
			w.Header().Set("Retry-After", "60")
			s.writeJSON(w, http.StatusTooManyRequests,
				gateway.NewErrorResponse("rate_limit_exceeded", "Too many requests", requestID))
			return
		}

		if !s.authorize(r) {
			s.requestsFailed.Add(1)
			if s.metrics != nil {
				s.metrics.RecordAuthFailure()
				s.metrics.RecordHTTPRequest(r.Method, routePattern(r.URL.Path),
					strconv.Itoa(http.StatusUnauthorized), time.Since(start))
			}
			w.Header().Set("WWW-Authenticate", "ApiKey")
			s.writeJSON(w, http.StatusUnauthorized,
				map[string]string{"detail": "Invalid or missing API key"})
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status < http.StatusBadRequest {
			s.requestsSuccess.Add(1)
		} else {
			s.requestsFailed.Add(1)
		}

		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(r.Method, routePattern(r.URL.Path),
				strconv.Itoa(rec.status), time.Since(start))
		}

		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID)
	})
}

// applyCORS applies CORS headers when the origin is allowed.
func (s *Server) applyCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")

	allowed := false
	for _, allowedOrigin := range s.config.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			allowed = true
			break
		}
	}

	if allowed {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "3600")
	}
}

// authorize checks the X-API-Key header against the configured keys using
// constant-time comparison. Public paths skip the check.
func (s *Server) authorize(r *http.Request) bool {
	if !s.config.Auth.Enabled {
		return true
	}
	if publicPaths[r.URL.Path] {
		return true
	}

	key := r.Header.Get("X-API-Key")
	if key == "" {
		return false
	}

	match := false
	for _, configured := range s.config.Auth.APIKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(configured)) == 1 {
			match = true
		}
	}
	return match
}

// allowClient checks the per-client token bucket.
func (s *Server) allowClient(key string) bool {
	if !s.config.RateLimit.Enabled {
		return true
	}

	s.limiterMu.Lock()
	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(
			rate.Limit(s.config.RateLimit.RequestsPerSecond),
			s.config.RateLimit.Burst)
		s.limiters[key] = limiter
	}
	s.limiterMu.Unlock()

	return limiter.Allow()
}

// clientKey identifies a client for rate limiting purposes.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// routePattern collapses path parameters so metric labels stay bounded.
func routePattern(path string) string {
	if strings.HasPrefix(path, "/api/v1/schema/template/") {
		return "/api/v1/schema/template/{type}"
	}
	return path
}

package http

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/c360/semschema/errors"
	"github.com/c360/semschema/gateway"
	"github.com/c360/semschema/generator"
	"github.com/c360/semschema/health"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.writeJSON(w, status, gateway.NewErrorResponse(code, message, requestIDFrom(r.Context())))
}

// decodeBody reads and unmarshals the request body, enforcing the byte cap.
// It writes the error response itself and reports whether decoding worked.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	maxBytes := s.config.Limits.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}

	// Read one byte past the cap to distinguish at-limit from over-limit
	body, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBytes)+1))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "validation_error", "Failed to read request body")
		return false
	}
	if len(body) > maxBytes {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("Request body exceeds %d bytes", maxBytes))
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "validation_error", "Invalid JSON body")
		return false
	}
	return true
}

// mapErrorStatus maps classified errors to HTTP status codes.
func mapErrorStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if errors.IsInvalid(err) {
		return http.StatusBadRequest
	}
	if errors.IsTransient(err) {
		if strings.Contains(err.Error(), "timeout") {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	}
	if errors.IsFatal(err) {
		return http.StatusInternalServerError
	}
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	case http.StatusGatewayTimeout:
		return "timeout"
	default:
		return "internal_error"
	}
}

// clientMessage returns the message safe to expose for err. Invalid-class
// errors are caller mistakes, so their root cause is shown verbatim;
// everything else gets a generic message to avoid leaking internals.
func clientMessage(err error) string {
	status := mapErrorStatus(err)
	if status == http.StatusBadRequest {
		cause := err
		for {
			unwrapped := stderrors.Unwrap(cause)
			if unwrapped == nil {
				break
			}
			cause = unwrapped
		}
		return cause.Error()
	}

	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	case http.StatusGatewayTimeout:
		return "request timeout"
	default:
		return "internal server error"
	}
}

func (s *Server) writeMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFrom(r.Context()))
	}
	s.writeError(w, r, status, codeForStatus(status), clientMessage(err))
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	s.writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed",
		fmt.Sprintf("Method %s not allowed", r.Method))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, r, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "semschema",
		"status":  "ok",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	status := s.monitor.AggregateHealth("semschema")
	status = status.WithMetrics(&health.Metrics{
		Uptime:     s.Uptime(),
		ErrorCount: int(s.requestsFailed.Load()),
	})

	code := http.StatusOK
	if status.IsUnhealthy() {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, status)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req gateway.GenerateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if details := req.Validate(s.config.Limits); len(details) > 0 {
		resp := gateway.NewErrorResponse("validation_error", "Request validation failed",
			requestIDFrom(r.Context())).WithDetails(details)
		s.writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	start := time.Now()
	schema, err := s.generator.Generate(req.SchemaType, req.Content, req.URL, generator.Fields(req.Metadata))
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordGeneration(req.SchemaType, "error", time.Since(start))
		}
		s.writeMappedError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordGeneration(req.SchemaType, "success", time.Since(start))
	}

	_, _, warnings := s.validator.Validate(schema)
	if warnings == nil {
		warnings = []string{}
	}

	s.writeJSON(w, http.StatusOK, gateway.GenerateResponse{
		Schema:            schema,
		CompletenessScore: s.validator.CompletenessScore(schema),
		Warnings:          warnings,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	structured := false
	if raw := r.URL.Query().Get("structured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "validation_error",
				"structured must be a boolean")
			return
		}
		structured = parsed
	}

	var req gateway.ValidateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if details := req.Validate(s.config.Limits); len(details) > 0 {
		resp := gateway.NewErrorResponse("validation_error", "Request validation failed",
			requestIDFrom(r.Context())).WithDetails(details)
		s.writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	schemaType, _ := req.Schema["@type"].(string)
	if schemaType == "" {
		schemaType = "unknown"
	}

	if structured {
		result := s.validator.ValidateStructured(req.Schema)
		if s.metrics != nil {
			s.metrics.RecordValidation(schemaType, result.IsValid, result.CompletenessScore)
		}
		s.writeJSON(w, http.StatusOK, result)
		return
	}

	valid, errMessages, warnMessages := s.validator.Validate(req.Schema)
	score := s.validator.CompletenessScore(req.Schema)
	if s.metrics != nil {
		s.metrics.RecordValidation(schemaType, valid, score)
	}
	if errMessages == nil {
		errMessages = []string{}
	}
	if warnMessages == nil {
		warnMessages = []string{}
	}

	s.writeJSON(w, http.StatusOK, gateway.ValidateResponse{
		IsValid:           valid,
		Errors:            errMessages,
		Warnings:          warnMessages,
		CompletenessScore: score,
		Suggestions:       s.validator.Suggestions(req.Schema),
	})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	types := generator.SupportedTypes()
	s.writeJSON(w, http.StatusOK, gateway.TypesResponse{
		Types: types,
		Count: len(types),
	})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	schemaType := strings.TrimPrefix(r.URL.Path, "/api/v1/schema/template/")
	if schemaType == "" || strings.Contains(schemaType, "/") {
		s.writeError(w, r, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	tpl, err := s.generator.Template(schemaType)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, gateway.UnknownTypeResponse{
			Error:          fmt.Sprintf("Unknown schema type: %s", schemaType),
			SupportedTypes: generator.SupportedTypes(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, gateway.TemplateResponse{
		SchemaType: schemaType,
		Template:   tpl,
	})
}

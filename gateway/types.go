package gateway

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/c360/semschema/config"
	"github.com/c360/semschema/generator"
	"github.com/c360/semschema/validator"
)

// GenerateRequest asks for a JSON-LD document to be generated from page
// content plus an open metadata bag.
type GenerateRequest struct {
	SchemaType string         `json:"schema_type"`
	Content    string         `json:"content"`
	URL        string         `json:"url,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// maxSchemaTypeLen and maxURLLen cap the fixed-size request fields; the
// content and metadata caps come from config.LimitsConfig.
const (
	maxSchemaTypeLen = 100
	maxURLLen        = 2048
)

// Validate checks shape and size caps, returning one detail per violation.
// An empty result means the request is acceptable.
func (r *GenerateRequest) Validate(limits config.LimitsConfig) []ErrorDetail {
	var details []ErrorDetail

	if r.SchemaType == "" {
		details = append(details, ErrorDetail{
			Field: "schema_type", Message: "schema_type is required", Code: "required",
		})
	} else if len(r.SchemaType) > maxSchemaTypeLen {
		details = append(details, ErrorDetail{
			Field:   "schema_type",
			Message: fmt.Sprintf("schema_type must be at most %d characters", maxSchemaTypeLen),
			Code:    "max_length",
		})
	}

	if r.Content == "" {
		details = append(details, ErrorDetail{
			Field: "content", Message: "content is required", Code: "required",
		})
	} else if limits.MaxContentChars > 0 && utf8.RuneCountInString(r.Content) > limits.MaxContentChars {
		details = append(details, ErrorDetail{
			Field:   "content",
			Message: fmt.Sprintf("content must be at most %d characters", limits.MaxContentChars),
			Code:    "max_length",
		})
	}

	if len(r.URL) > maxURLLen {
		details = append(details, ErrorDetail{
			Field:   "url",
			Message: fmt.Sprintf("url must be at most %d characters", maxURLLen),
			Code:    "max_length",
		})
	}

	if limits.MaxFieldKeys > 0 && len(r.Metadata) > limits.MaxFieldKeys {
		details = append(details, ErrorDetail{
			Field:   "metadata",
			Message: fmt.Sprintf("metadata must have at most %d keys", limits.MaxFieldKeys),
			Code:    "max_items",
			Value:   len(r.Metadata),
		})
	}

	return details
}

// GenerateResponse carries the generated document plus the post-generation
// quality assessment.
type GenerateResponse struct {
	Schema            map[string]any `json:"schema"`
	CompletenessScore float64        `json:"completeness_score"`
	Warnings          []string       `json:"warnings"`
}

// ValidateRequest asks for an existing JSON-LD document to be checked.
type ValidateRequest struct {
	Schema map[string]any `json:"schema"`
}

// Validate checks shape and size caps for a validation request.
func (r *ValidateRequest) Validate(limits config.LimitsConfig) []ErrorDetail {
	var details []ErrorDetail

	if r.Schema == nil {
		details = append(details, ErrorDetail{
			Field: "schema", Message: "schema is required", Code: "required",
		})
	} else if limits.MaxSchemaKeys > 0 && len(r.Schema) > limits.MaxSchemaKeys {
		details = append(details, ErrorDetail{
			Field:   "schema",
			Message: fmt.Sprintf("schema must have at most %d top-level keys", limits.MaxSchemaKeys),
			Code:    "max_items",
			Value:   len(r.Schema),
		})
	}

	return details
}

// ValidateResponse is the compatibility-mode validation result with plain
// string messages. Structured mode returns validator.Result instead.
type ValidateResponse struct {
	IsValid           bool     `json:"is_valid"`
	Errors            []string `json:"errors"`
	Warnings          []string `json:"warnings"`
	CompletenessScore float64  `json:"completeness_score"`
	Suggestions       []string `json:"suggestions"`
}

// StructuredValidateResponse is the structured-mode validation result.
type StructuredValidateResponse = validator.Result

// TypesResponse lists the supported schema types.
type TypesResponse struct {
	Types []string `json:"types"`
	Count int      `json:"count"`
}

// TemplateResponse carries the field template for one schema type.
type TemplateResponse struct {
	SchemaType string             `json:"schema_type"`
	Template   generator.Template `json:"template"`
}

// UnknownTypeResponse is the 404 body for template lookups against an
// unregistered type.
type UnknownTypeResponse struct {
	Error          string   `json:"error"`
	SupportedTypes []string `json:"supported_types"`
}

// ErrorDetail pinpoints one field-level problem inside a rejected request.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Value   any    `json:"value,omitempty"`
}

// ErrorResponse is the uniform error envelope for every non-2xx response
// except auth rejections, which keep their own fixed shape.
type ErrorResponse struct {
	Error      string        `json:"error"`
	Message    string        `json:"message"`
	Details    []ErrorDetail `json:"details,omitempty"`
	Retryable  bool          `json:"retryable"`
	RetryAfter int           `json:"retry_after,omitempty"`
	RequestID  string        `json:"request_id,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// retryDelays maps retryable error codes to the advised wait in seconds.
// Codes absent from the map are terminal.
var retryDelays = map[string]int{
	"internal_error":      5,
	"service_unavailable": 30,
	"timeout":             10,
	"rate_limit_exceeded": 60,
}

// NewErrorResponse builds an error envelope, filling the retry advice from
// the code's classification.
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	delay, retryable := retryDelays[code]
	return ErrorResponse{
		Error:      code,
		Message:    message,
		Retryable:  retryable,
		RetryAfter: delay,
		RequestID:  requestID,
		Timestamp:  time.Now().UTC(),
	}
}

// WithDetails attaches field-level details and returns the envelope.
func (e ErrorResponse) WithDetails(details []ErrorDetail) ErrorResponse {
	e.Details = details
	return e
}

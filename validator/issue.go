// Package validator checks Schema.org JSON-LD documents against the shared
// registry rules, scores their completeness, and suggests SEO improvements.
package validator

import "strings"

// Severity levels for a validation issue. Errors make a document invalid;
// warnings are recommendations.
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
)

// Issue codes. The wire form is the code itself; MessageKey carries the
// i18n key derived from code and severity.
const (
	CodeMissingContext          = "MISSING_CONTEXT"
	CodeInvalidContext          = "INVALID_CONTEXT"
	CodeMissingType             = "MISSING_TYPE"
	CodeMissingRequiredField    = "MISSING_REQUIRED_FIELD"
	CodeMissingRecommendedField = "MISSING_RECOMMENDED_FIELD"
	CodeInvalidType             = "INVALID_TYPE"
	CodeNestedMissingField      = "NESTED_MISSING_FIELD"
	CodeInvalidValueType        = "INVALID_VALUE_TYPE"
	CodeNestedInvalidType       = "NESTED_INVALID_TYPE"
	CodeNestedMissingType       = "NESTED_MISSING_TYPE"
	CodeInvalidArrayItem        = "INVALID_ARRAY_ITEM"
	CodeEmptyRequiredField      = "EMPTY_REQUIRED_FIELD"
)

// Issue is one structured validation finding. Path is a JSON-pointer-style
// location ("" means the document root). Context carries expected/actual
// details for type mismatches.
type Issue struct {
	Path       string         `json:"path"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	MessageKey string         `json:"message_key"`
	Severity   string         `json:"severity"`
	Context    map[string]any `json:"context,omitempty"`
}

func newIssue(severity, path, code, message string, context map[string]any) Issue {
	prefix := "error"
	if severity == SeverityWarning {
		prefix = "warning"
	}
	return Issue{
		Path:       path,
		Code:       code,
		Message:    message,
		MessageKey: prefix + "." + strings.ToLower(code),
		Severity:   severity,
		Context:    context,
	}
}

func errorIssue(path, code, message string) Issue {
	return newIssue(SeverityError, path, code, message, nil)
}

func errorIssueCtx(path, code, message string, expected, actual any) Issue {
	return newIssue(SeverityError, path, code, message, map[string]any{
		"expected": expected,
		"actual":   actual,
	})
}

func warningIssue(path, code, message string) Issue {
	return newIssue(SeverityWarning, path, code, message, nil)
}

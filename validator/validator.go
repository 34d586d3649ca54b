package validator

import (
	"github.com/c360/semschema/registry"
)

// Result is the structured validation output.
type Result struct {
	IsValid           bool     `json:"is_valid"`
	Errors            []Issue  `json:"errors"`
	Warnings          []Issue  `json:"warnings"`
	CompletenessScore float64  `json:"completeness_score"`
	Suggestions       []string `json:"suggestions"`
}

// Validator checks documents against the registry's per-type rules. It holds
// no per-call state and is safe for concurrent use.
type Validator struct {
	registry *registry.Registry
}

// New creates a validator reading rules from reg. A nil registry falls back
// to the default rule set.
func New(reg *registry.Registry) *Validator {
	if reg == nil {
		reg = registry.Default()
	}
	return &Validator{registry: reg}
}

// Validate runs validation in compatibility mode: a valid flag plus plain
// error and warning message lists.
func (v *Validator) Validate(schema map[string]any) (bool, []string, []string) {
	valid, errs, warns := v.run(schema)

	errMessages := make([]string, len(errs))
	for i, issue := range errs {
		errMessages[i] = issue.Message
	}
	warnMessages := make([]string, len(warns))
	for i, issue := range warns {
		warnMessages[i] = issue.Message
	}
	return valid, errMessages, warnMessages
}

// ValidateStructured runs validation and returns the full structured result
// including completeness score and optimization suggestions.
func (v *Validator) ValidateStructured(schema map[string]any) Result {
	valid, errs, warns := v.run(schema)
	return Result{
		IsValid:           valid,
		Errors:            errs,
		Warnings:          warns,
		CompletenessScore: v.CompletenessScore(schema),
		Suggestions:       v.Suggestions(schema),
	}
}

// run is the single validation pass both output modes project from.
func (v *Validator) run(schema map[string]any) (bool, []Issue, []Issue) {
	errs := []Issue{}
	warns := []Issue{}

	if _, ok := schema["@context"]; !ok {
		errs = append(errs, errorIssue("", CodeMissingContext, "Missing @context field"))
	} else if schema["@context"] != "https://schema.org" {
		warns = append(warns, warningIssue("/@context", CodeInvalidContext,
			"@context should be 'https://schema.org'"))
	}

	schemaType, hasType := schema["@type"].(string)
	if _, ok := schema["@type"]; !ok {
		errs = append(errs, errorIssue("", CodeMissingType, "Missing @type field"))
		return false, errs, warns
	}
	if !hasType {
		// Non-string @type: treat as an unregistered type, only structural
		// checks below apply.
		schemaType = ""
	}

	if v.registry.HasType(schemaType) {
		required, _ := v.registry.GetRequiredFields(schemaType)
		for _, field := range required {
			if _, ok := schema[field]; !ok {
				errs = append(errs, errorIssue("/"+field, CodeMissingRequiredField,
					"Missing required field: "+field))
			}
		}
	}

	errs = append(errs, checkFieldTypes(schema, schemaType)...)

	if v.registry.HasType(schemaType) {
		recommended, _ := v.registry.GetRecommendedFields(schemaType)
		count := 0
		for _, field := range recommended {
			if _, ok := schema[field]; ok {
				continue
			}
			// Cap per-document recommendation warnings.
			if count >= 5 {
				break
			}
			warns = append(warns, warningIssue("/"+field, CodeMissingRecommendedField,
				"Missing recommended field: "+field))
			count++
		}
	}

	return len(errs) == 0, errs, warns
}

// Package registry is the single source of truth for per-type field rules
// shared by the schema generator and validator. A Registry is populated once
// at startup and treated as immutable afterwards, so concurrent readers need
// no synchronization.
package registry

import (
	"fmt"
	"sort"

	"github.com/c360/semschema/errors"
)

// Rule holds the field rules for one Schema.org type.
//
// TemplateRequired/TemplateOptional come from the generator templates and do
// not include the JSON-LD framing keys. ValidatorRequired always includes
// @context and @type. NestedRules is reserved for future nested rules and is
// not consulted by current logic.
type Rule struct {
	TemplateRequired     []string
	TemplateOptional     []string
	ValidatorRequired    []string
	ValidatorRecommended []string
	NestedRules          map[string]any
}

// Template describes the generation-side field lists for a type.
type Template struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

// Registry maps Schema.org type names to their field rules.
type Registry struct {
	types map[string]Rule
}

// New creates an empty registry. Most callers want Default instead.
func New() *Registry {
	return &Registry{types: make(map[string]Rule)}
}

// RegisterType stores or overwrites the rule for a type. All slices and maps
// are copied so the registry never aliases caller-owned data.
func (r *Registry) RegisterType(name string, rule Rule) error {
	if name == "" {
		return errors.WrapInvalid(
			fmt.Errorf("schema type name must be non-empty"),
			"Registry", "RegisterType", "validate name")
	}

	stored := Rule{
		TemplateRequired:     append([]string(nil), rule.TemplateRequired...),
		TemplateOptional:     append([]string(nil), rule.TemplateOptional...),
		ValidatorRequired:    append([]string(nil), rule.ValidatorRequired...),
		ValidatorRecommended: append([]string(nil), rule.ValidatorRecommended...),
		NestedRules:          make(map[string]any, len(rule.NestedRules)),
	}
	for k, v := range rule.NestedRules {
		stored.NestedRules[k] = v
	}

	r.types[name] = stored
	return nil
}

// HasType reports whether a type is registered.
func (r *Registry) HasType(name string) bool {
	_, ok := r.types[name]
	return ok
}

// ListTypes returns all registered type names in sorted order.
func (r *Registry) ListTypes() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTemplate returns the generation template for a type.
func (r *Registry) GetTemplate(name string) (Template, error) {
	rule, ok := r.types[name]
	if !ok {
		return Template{}, r.unknownType("GetTemplate", name)
	}
	return Template{
		Required: append([]string(nil), rule.TemplateRequired...),
		Optional: append([]string(nil), rule.TemplateOptional...),
	}, nil
}

// GetRequiredFields returns the validator-required fields for a type,
// including the JSON-LD framing keys.
func (r *Registry) GetRequiredFields(name string) ([]string, error) {
	rule, ok := r.types[name]
	if !ok {
		return nil, r.unknownType("GetRequiredFields", name)
	}
	return append([]string(nil), rule.ValidatorRequired...), nil
}

// GetRecommendedFields returns the validator-recommended fields for a type.
func (r *Registry) GetRecommendedFields(name string) ([]string, error) {
	rule, ok := r.types[name]
	if !ok {
		return nil, r.unknownType("GetRecommendedFields", name)
	}
	return append([]string(nil), rule.ValidatorRecommended...), nil
}

func (r *Registry) unknownType(op, name string) error {
	return errors.WrapInvalid(
		fmt.Errorf("unknown schema type: %s", name),
		"Registry", op, "lookup type")
}

// Package generator produces Schema.org JSON-LD markup for nine content
// types. A Generator is stateless per call: it reads content, a canonical
// URL, and an open field bag, and returns a new JSON-LD document without
// mutating its inputs.
package generator

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/c360/semschema/errors"
)

// Fields is the open bag of named field values supplied per call.
// Unrecognized keys are ignored in the output and logged at debug level.
type Fields map[string]any

// Template describes the required and optional field lists for one type.
type Template struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

// schemaTemplates is the generator's own per-type field table. It must stay
// byte-for-byte consistent with the default registry entries; the registry
// tests enforce this.
var schemaTemplates = map[string]Template{
	"Article": {
		Required: []string{"headline", "author"},
		Optional: []string{"description", "image", "publisher", "dateModified", "articleBody", "datePublished"},
	},
	"Product": {
		Required: []string{"name", "description"},
		Optional: []string{"brand", "offers", "image", "review", "aggregateRating", "sku"},
	},
	"Organization": {
		Required: []string{"name"},
		Optional: []string{"url", "logo", "description", "address", "contactPoint"},
	},
	"Event": {
		Required: []string{"name", "startDate", "location"},
		Optional: []string{
			"endDate", "description", "image", "organizer",
			"performer", "offers", "eventStatus", "eventAttendanceMode",
		},
	},
	"Person": {
		Required: []string{"name"},
		Optional: []string{
			"jobTitle", "worksFor", "url", "image", "sameAs",
			"alumniOf", "birthDate", "email", "telephone", "address",
		},
	},
	"Recipe": {
		Required: []string{"name", "recipeIngredient", "recipeInstructions"},
		Optional: []string{
			"image", "author", "datePublished", "description",
			"prepTime", "cookTime", "totalTime", "recipeYield",
			"recipeCategory", "recipeCuisine", "nutrition",
			"aggregateRating", "keywords",
		},
	},
	"FAQPage": {
		Required: []string{"mainEntity"},
		Optional: []string{"about", "description", "name"},
	},
	"HowTo": {
		Required: []string{"name", "step"},
		Optional: []string{
			"description", "image", "totalTime",
			"estimatedCost", "supply", "tool", "video",
		},
	},
	"Course": {
		Required: []string{"name", "description", "provider"},
		Optional: []string{
			"url", "courseCode", "hasCourseInstance", "offers",
			"aggregateRating", "review", "educationalLevel",
			"timeRequired", "inLanguage",
		},
	},
}

// extraFieldKeys are field-bag keys a strategy consumes beyond its template
// lists (aliases, site-default overrides, pass-through extras). Used only to
// decide which keys are worth a debug log when they go unused.
var extraFieldKeys = map[string][]string{
	"Article":      {"headline", "publisher_name", "publisher_logo", "wordCount", "mainEntityOfPage"},
	"Product":      {"name", "brand_name", "gtin13", "mpn", "manufacturer"},
	"Organization": {"name", "sameAs", "foundingDate"},
	"Event":        {"name", "locationName", "locationAddress"},
	"Person":       {"name"},
	"Recipe":       {"name", "cookingMethod"},
	"FAQPage":      {"questions", "mainEntity"},
	"HowTo":        {"name", "steps", "step"},
	"Course":       {"name", "instructor", "image"},
}

// SiteDefaults carries site-level metadata consulted with lower priority
// than per-call fields.
type SiteDefaults struct {
	PublisherName string   `json:"publisher_name"`
	PublisherLogo string   `json:"publisher_logo"`
	BrandName     string   `json:"brand_name"`
	SameAs        []string `json:"same_as"`
	Language      string   `json:"language"`
}

func (sd SiteDefaults) lookup(key string) any {
	switch key {
	case "publisher_name":
		if sd.PublisherName != "" {
			return sd.PublisherName
		}
	case "publisher_logo":
		if sd.PublisherLogo != "" {
			return sd.PublisherLogo
		}
	case "brand_name":
		if sd.BrandName != "" {
			return sd.BrandName
		}
	case "sameAs":
		if len(sd.SameAs) > 0 {
			return sd.SameAs
		}
	case "inLanguage":
		if sd.Language != "" {
			return normalizeLanguage(sd.Language)
		}
	}
	return nil
}

// Generator builds Schema.org JSON-LD documents.
type Generator struct {
	defaults SiteDefaults
	logger   *slog.Logger
}

// New creates a generator with the given site defaults. A nil logger
// disables the unused-field-key debug logging.
func New(defaults SiteDefaults, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{defaults: defaults, logger: logger}
}

// SupportedTypes returns the supported schema type names in sorted order.
func SupportedTypes() []string {
	names := make([]string, 0, len(schemaTemplates))
	for name := range schemaTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns a copy of the generator's per-type field table.
func Templates() map[string]Template {
	out := make(map[string]Template, len(schemaTemplates))
	for name, tpl := range schemaTemplates {
		out[name] = Template{
			Required: append([]string(nil), tpl.Required...),
			Optional: append([]string(nil), tpl.Optional...),
		}
	}
	return out
}

// Template returns the field template for one schema type.
func (g *Generator) Template(schemaType string) (Template, error) {
	tpl, ok := schemaTemplates[schemaType]
	if !ok {
		return Template{}, errors.WrapInvalid(
			fmt.Errorf("unknown schema type: %s", schemaType),
			"Generator", "Template", "lookup type")
	}
	return Template{
		Required: append([]string(nil), tpl.Required...),
		Optional: append([]string(nil), tpl.Optional...),
	}, nil
}

// Generate builds a JSON-LD document for schemaType from free-text content,
// an optional canonical URL, and an open field bag. It fails only for an
// unsupported schema type; malformed field values are normalized where a
// documented normalizer applies and otherwise treated as absent or passed
// through.
func (g *Generator) Generate(schemaType, content, pageURL string, fields Fields) (map[string]any, error) {
	if _, ok := schemaTemplates[schemaType]; !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("Unsupported schema type: %s. Supported types: %s",
				schemaType, strings.Join(SupportedTypes(), ", ")),
			"Generator", "Generate", "dispatch")
	}

	if fields == nil {
		fields = Fields{}
	}

	var schema map[string]any
	switch schemaType {
	case "Article":
		schema = g.generateArticle(content, pageURL, fields)
	case "Product":
		schema = g.generateProduct(content, pageURL, fields)
	case "Organization":
		schema = g.generateOrganization(content, pageURL, fields)
	case "Event":
		schema = g.generateEvent(content, pageURL, fields)
	case "Person":
		schema = g.generatePerson(content, pageURL, fields)
	case "Recipe":
		schema = g.generateRecipe(content, pageURL, fields)
	case "FAQPage":
		schema = g.generateFAQPage(content, pageURL, fields)
	case "HowTo":
		schema = g.generateHowTo(content, pageURL, fields)
	case "Course":
		schema = g.generateCourse(content, pageURL, fields)
	}

	g.logUnusedKeys(schemaType, fields)

	return schema, nil
}

// logUnusedKeys surfaces likely field-name typos without failing generation.
func (g *Generator) logUnusedKeys(schemaType string, fields Fields) {
	if len(fields) == 0 {
		return
	}

	known := make(map[string]struct{})
	tpl := schemaTemplates[schemaType]
	for _, key := range tpl.Required {
		known[key] = struct{}{}
	}
	for _, key := range tpl.Optional {
		known[key] = struct{}{}
	}
	for _, key := range extraFieldKeys[schemaType] {
		known[key] = struct{}{}
	}

	for key := range fields {
		if _, ok := known[key]; !ok {
			g.logger.Debug("ignoring unrecognized schema field",
				"schema_type", schemaType, "field", key)
		}
	}
}

// newDocument starts a JSON-LD document with the framing keys.
func newDocument(schemaType string) map[string]any {
	return map[string]any{
		"@context": "https://schema.org",
		"@type":    schemaType,
	}
}

// resolve looks a key up with priority: per-call field, then site default,
// then nil.
func (g *Generator) resolve(key string, fields Fields) any {
	if v, ok := fields[key]; ok {
		return v
	}
	return g.defaults.lookup(key)
}

// stringField returns the field value as a string when present and
// string-typed.
func stringField(fields Fields, key string) (string, bool) {
	v, ok := fields[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// copyFields copies the listed keys verbatim from the bag into the document.
func copyFields(schema map[string]any, fields Fields, keys ...string) {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			schema[key] = v
		}
	}
}

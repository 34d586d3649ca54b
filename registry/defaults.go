package registry

// defaultRules is the fixed 9-type table shared by the generator and the
// validator. The template lists must stay byte-for-byte consistent with the
// generator's own templates; registry_test.go checks this.
var defaultRules = map[string]Rule{
	"Article": {
		TemplateRequired: []string{"headline", "author"},
		TemplateOptional: []string{
			"description", "image", "publisher", "dateModified", "articleBody", "datePublished",
		},
		ValidatorRequired:    []string{"@context", "@type", "headline", "author"},
		ValidatorRecommended: []string{"image", "datePublished", "publisher", "description"},
	},
	"Product": {
		TemplateRequired:     []string{"name", "description"},
		TemplateOptional:     []string{"brand", "offers", "image", "review", "aggregateRating", "sku"},
		ValidatorRequired:    []string{"@context", "@type", "name"},
		ValidatorRecommended: []string{"image", "brand", "offers", "aggregateRating", "review"},
	},
	"Organization": {
		TemplateRequired:     []string{"name"},
		TemplateOptional:     []string{"url", "logo", "description", "address", "contactPoint"},
		ValidatorRequired:    []string{"@context", "@type", "name"},
		ValidatorRecommended: []string{"url", "logo", "description"},
	},
	"Event": {
		TemplateRequired: []string{"name", "startDate", "location"},
		TemplateOptional: []string{
			"endDate", "description", "image", "organizer", "performer", "offers",
			"eventStatus", "eventAttendanceMode",
		},
		ValidatorRequired:    []string{"@context", "@type", "name", "startDate", "location"},
		ValidatorRecommended: []string{"image", "description", "offers", "organizer"},
	},
	"Person": {
		TemplateRequired: []string{"name"},
		TemplateOptional: []string{
			"jobTitle", "worksFor", "url", "image", "sameAs", "alumniOf",
			"birthDate", "email", "telephone", "address",
		},
		ValidatorRequired:    []string{"@context", "@type", "name"},
		ValidatorRecommended: []string{"url", "image", "jobTitle"},
	},
	"Recipe": {
		TemplateRequired: []string{"name", "recipeIngredient", "recipeInstructions"},
		TemplateOptional: []string{
			"image", "author", "datePublished", "description", "prepTime", "cookTime",
			"totalTime", "recipeYield", "recipeCategory", "recipeCuisine", "nutrition",
			"aggregateRating", "keywords",
		},
		ValidatorRequired:    []string{"@context", "@type", "name", "recipeIngredient", "recipeInstructions"},
		ValidatorRecommended: []string{"image", "author", "prepTime", "cookTime", "aggregateRating"},
	},
	"FAQPage": {
		TemplateRequired:     []string{"mainEntity"},
		TemplateOptional:     []string{"about", "description", "name"},
		ValidatorRequired:    []string{"@context", "@type", "mainEntity"},
		ValidatorRecommended: []string{"description", "name"},
	},
	"HowTo": {
		TemplateRequired: []string{"name", "step"},
		TemplateOptional: []string{
			"description", "image", "totalTime", "estimatedCost", "supply", "tool", "video",
		},
		ValidatorRequired:    []string{"@context", "@type", "name", "step"},
		ValidatorRecommended: []string{"image", "description", "totalTime"},
	},
	"Course": {
		TemplateRequired: []string{"name", "description", "provider"},
		TemplateOptional: []string{
			"url", "courseCode", "hasCourseInstance", "offers", "aggregateRating",
			"review", "educationalLevel", "timeRequired", "inLanguage",
		},
		ValidatorRequired:    []string{"@context", "@type", "name", "description", "provider"},
		ValidatorRecommended: []string{"url", "offers", "aggregateRating"},
	},
}

// Default returns a registry pre-populated with the fixed 9-type table.
func Default() *Registry {
	r := New()
	for name, rule := range defaultRules {
		// Names in the fixed table are never empty, so this cannot fail.
		_ = r.RegisterType(name, rule)
	}
	return r
}

package validator

import "math"

// CompletenessScore rates a document from 0 to 100: half the score for
// required-field coverage, half for recommended-field coverage. A document
// without @type scores 0; an unregistered type scores 100.
func (v *Validator) CompletenessScore(schema map[string]any) float64 {
	raw, ok := schema["@type"]
	if !ok {
		return 0.0
	}
	schemaType, _ := raw.(string)
	if !v.registry.HasType(schemaType) {
		return 100.0
	}

	required, _ := v.registry.GetRequiredFields(schemaType)
	recommended, _ := v.registry.GetRecommendedFields(schemaType)

	requiredScore := 50.0
	if len(required) > 0 {
		present := 0
		for _, field := range required {
			if _, ok := schema[field]; ok {
				present++
			}
		}
		requiredScore = float64(present) / float64(len(required)) * 50
	}

	recommendedScore := 0.0
	if len(recommended) > 0 {
		present := 0
		for _, field := range recommended {
			if _, ok := schema[field]; ok {
				present++
			}
		}
		recommendedScore = float64(present) / float64(len(recommended)) * 50
	}

	return math.Round((requiredScore+recommendedScore)*100) / 100
}

// Suggestions returns SEO optimization hints for fields worth adding. The
// list is empty when @type is absent.
func (v *Validator) Suggestions(schema map[string]any) []string {
	suggestions := []string{}

	raw, ok := schema["@type"]
	if !ok || raw == "" {
		return suggestions
	}
	schemaType, _ := raw.(string)

	has := func(field string) bool {
		_, ok := schema[field]
		return ok
	}

	switch schemaType {
	case "Article":
		if !has("image") {
			suggestions = append(suggestions, "Add 'image' field to improve search result appearance")
		}
		if !has("datePublished") {
			suggestions = append(suggestions, "Add 'datePublished' field for better content freshness signals")
		}
		if !has("publisher") {
			suggestions = append(suggestions, "Add 'publisher' field to establish content authority")
		}
		if !has("description") {
			suggestions = append(suggestions, "Add 'description' field for better search snippets")
		}
	case "Product":
		if !has("image") {
			suggestions = append(suggestions, "Add 'image' field to enable rich product results")
		}
		if !has("brand") {
			suggestions = append(suggestions, "Add 'brand' field to improve product visibility")
		}
		if !has("aggregateRating") {
			suggestions = append(suggestions, "Add 'aggregateRating' field to display star ratings in search")
		}
		// An absent offers field still earns the offer-level suggestions.
		offers, isMap := schema["offers"].(map[string]any)
		if isMap || !has("offers") {
			if _, ok := offers["availability"]; !ok {
				suggestions = append(suggestions, "Add 'availability' to offers for stock status display")
			}
			if _, ok := offers["priceCurrency"]; !ok {
				suggestions = append(suggestions, "Add 'priceCurrency' to offers for proper price display")
			}
		}
	case "Event":
		if !has("image") {
			suggestions = append(suggestions, "Add 'image' field for visual event listings")
		}
		if !has("description") {
			suggestions = append(suggestions, "Add 'description' field for detailed event information")
		}
		if !has("offers") {
			suggestions = append(suggestions, "Add 'offers' field if event has ticketing")
		}
		if !has("organizer") {
			suggestions = append(suggestions, "Add 'organizer' field to show event host")
		}
	case "Recipe":
		if !has("image") {
			suggestions = append(suggestions, "Add 'image' field for visual recipe cards")
		}
		if !has("aggregateRating") {
			suggestions = append(suggestions, "Add 'aggregateRating' field to display recipe ratings")
		}
		if !has("prepTime") || !has("cookTime") {
			suggestions = append(suggestions, "Add 'prepTime' and 'cookTime' fields for time estimates")
		}
		if !has("nutrition") {
			suggestions = append(suggestions, "Add 'nutrition' field for nutritional information")
		}
	}

	if !has("url") {
		suggestions = append(suggestions, "Add 'url' field to link to the canonical page")
	}

	return suggestions
}

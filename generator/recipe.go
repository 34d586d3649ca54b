package generator

import "strings"

// generateRecipe builds a Recipe document. Instructions are normalized into
// a HowToStep array whether they arrive as free text, a list of strings, or
// a list of step objects.
func (g *Generator) generateRecipe(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("Recipe")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = firstLine(content, 120)
	}

	if v, ok := fields["recipeIngredient"]; ok {
		schema["recipeIngredient"] = v
	} else {
		schema["recipeIngredient"] = []any{"Ingredients TBD"}
	}

	schema["recipeInstructions"] = recipeInstructions(fields)

	if author, ok := fields["author"]; ok {
		if entity, ok := asEntity("Person", author); ok {
			schema["author"] = entity
		}
	}

	if nutrition, ok := fields["nutrition"]; ok {
		if m, ok := nutrition.(map[string]any); ok {
			schema["nutrition"] = mergeEntity("NutritionInformation", m)
		} else {
			schema["nutrition"] = nutrition
		}
	}

	if image, ok := fields["image"]; ok {
		schema["image"] = imageList(image, pageURL)
	}

	if pageURL != "" {
		schema["url"] = normalizeURL(pageURL, "")
	}
	if v, ok := fields["datePublished"]; ok {
		schema["datePublished"] = normalizeDate(v)
	}
	copyFields(schema, fields,
		"description", "prepTime", "cookTime", "totalTime",
		"recipeYield", "recipeCategory", "recipeCuisine",
		"cookingMethod", "keywords")

	if rating, ok := fields["aggregateRating"]; ok {
		if m, ok := rating.(map[string]any); ok {
			schema["aggregateRating"] = mergeEntity("AggregateRating", m)
		} else {
			schema["aggregateRating"] = rating
		}
	}

	return schema
}

func recipeInstructions(fields Fields) any {
	instructions, ok := fields["recipeInstructions"]
	if !ok {
		return []any{map[string]any{
			"@type":    "HowToStep",
			"text":     "Instructions TBD",
			"position": 1,
		}}
	}

	switch v := instructions.(type) {
	case string:
		steps := []any{}
		position := 0
		for _, line := range strings.Split(v, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			position++
			steps = append(steps, howToStep(line, stepName(position), position))
		}
		return steps
	case []any:
		steps := make([]any, 0, len(v))
		for i, item := range v {
			text := ""
			name := stepName(i + 1)
			if s, ok := item.(string); ok {
				text = s
			} else if m, ok := item.(map[string]any); ok {
				if t, ok := m["text"].(string); ok {
					text = t
				}
				if n, ok := m["name"].(string); ok {
					name = n
				}
			}
			steps = append(steps, howToStep(text, name, i+1))
		}
		return steps
	default:
		return instructions
	}
}

package generator

import "strings"

// generateCourse builds a Course document with educational metadata. The
// provider is required and defaults to a generic institution.
func (g *Generator) generateCourse(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("Course")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = firstLine(content, 120)
	}
	if v, ok := fields["description"]; ok {
		schema["description"] = v
	} else if lines := strings.Split(content, "\n"); len(lines) > 1 {
		schema["description"] = lines[1]
	} else {
		schema["description"] = "Educational course"
	}

	if provider, ok := fields["provider"]; ok {
		if m, ok := provider.(map[string]any); ok {
			schema["provider"] = mergeEntity("Organization", m)
		} else {
			schema["provider"] = provider
		}
	} else {
		schema["provider"] = map[string]any{
			"@type": "Organization",
			"name":  "Educational Institution",
		}
	}

	if instructor, ok := fields["instructor"]; ok {
		if m, ok := instructor.(map[string]any); ok {
			schema["instructor"] = mergeEntity("Person", m)
		} else {
			schema["instructor"] = instructor
		}
	}
	if offers, ok := fields["offers"]; ok {
		if m, ok := offers.(map[string]any); ok {
			schema["offers"] = mergeEntity("Offer", m)
		} else {
			schema["offers"] = offers
		}
	}
	if instance, ok := fields["hasCourseInstance"]; ok {
		if m, ok := instance.(map[string]any); ok {
			schema["hasCourseInstance"] = mergeEntity("CourseInstance", m)
		} else {
			schema["hasCourseInstance"] = instance
		}
	}

	if pageURL != "" {
		schema["url"] = pageURL
	}
	copyFields(schema, fields,
		"courseCode", "image", "aggregateRating", "review",
		"educationalLevel", "timeRequired", "inLanguage")

	return schema
}

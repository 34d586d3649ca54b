package generator

// generateEvent builds an Event document. startDate and location are
// required and default to the current moment and a TBD Place respectively.
func (g *Generator) generateEvent(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("Event")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = firstLine(content, 120)
	}

	if v, ok := fields["startDate"]; ok {
		schema["startDate"] = normalizeDate(v)
	} else {
		schema["startDate"] = normalizeDate(nowDateTime())
	}

	if location, ok := fields["location"]; ok {
		if m, ok := location.(map[string]any); ok {
			schema["location"] = buildPlace(m)
		} else {
			schema["location"] = location
		}
	} else {
		name := "TBD"
		if v, ok := stringField(fields, "locationName"); ok {
			name = v
		}
		street := "TBD"
		if v, ok := stringField(fields, "locationAddress"); ok {
			street = v
		}
		schema["location"] = map[string]any{
			"@type": "Place",
			"name":  name,
			"address": map[string]any{
				"@type":         "PostalAddress",
				"streetAddress": street,
			},
		}
	}

	if pageURL != "" {
		schema["url"] = normalizeURL(pageURL, "")
	}

	if v, ok := fields["endDate"]; ok {
		schema["endDate"] = normalizeDate(v)
	}
	copyFields(schema, fields, "description")

	if image, ok := fields["image"]; ok {
		schema["image"] = imageList(image, pageURL)
	}

	if organizer, ok := fields["organizer"]; ok {
		if entity, ok := asEntity("Organization", organizer); ok {
			schema["organizer"] = entity
		}
	}
	if performer, ok := fields["performer"]; ok {
		if entity, ok := asEntity("Person", performer); ok {
			schema["performer"] = entity
		}
	}

	copyFields(schema, fields, "offers")

	if v, ok := fields["eventStatus"]; ok {
		schema["eventStatus"] = v
	} else {
		schema["eventStatus"] = "https://schema.org/EventScheduled"
	}
	copyFields(schema, fields, "eventAttendanceMode")

	return schema
}

// buildPlace keeps only the Place name and address from a caller-supplied
// location mapping.
func buildPlace(location map[string]any) map[string]any {
	place := map[string]any{
		"@type": "Place",
		"name":  "TBD",
	}
	if name, ok := location["name"].(string); ok && name != "" {
		place["name"] = name
	}
	if address, ok := location["address"]; ok {
		if entity, ok := postalAddress(address); ok {
			place["address"] = entity
		}
	}
	return place
}

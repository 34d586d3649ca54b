package generator

// generateOrganization builds an Organization document with a structured
// address and contact point.
func (g *Generator) generateOrganization(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("Organization")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = firstLine(content, 120)
	}

	if pageURL != "" {
		schema["url"] = normalizeURL(pageURL, "")
	}

	if logo, ok := fields["logo"]; ok {
		schema["logo"] = imageObject(logo, pageURL)
	}

	copyFields(schema, fields, "description")

	if address, ok := fields["address"]; ok {
		if entity, ok := postalAddress(address); ok {
			schema["address"] = entity
		}
	}

	if contact, ok := fields["contactPoint"]; ok {
		if m, ok := contact.(map[string]any); ok {
			if entity, ok := asEntity("ContactPoint", m); ok {
				schema["contactPoint"] = entity
			}
		} else {
			schema["contactPoint"] = contact
		}
	}

	copyFields(schema, fields, "sameAs")

	if v, ok := fields["foundingDate"]; ok {
		schema["foundingDate"] = normalizeDate(v)
	}

	return schema
}

// generatePerson builds a Person document with structured address and
// employer.
func (g *Generator) generatePerson(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("Person")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = firstLine(content, 120)
	}

	if pageURL != "" {
		schema["url"] = normalizeURL(pageURL, "")
	} else if u, ok := stringField(fields, "url"); ok {
		schema["url"] = normalizeURL(u, "")
	}

	copyFields(schema, fields, "jobTitle")

	if worksFor, ok := fields["worksFor"]; ok {
		if entity, ok := asEntity("Organization", worksFor); ok {
			schema["worksFor"] = entity
		}
	}

	// Person images are a single ImageObject, not an array.
	if image, ok := fields["image"]; ok {
		schema["image"] = imageObject(image, pageURL)
	}

	copyFields(schema, fields, "sameAs")

	if alumniOf, ok := fields["alumniOf"]; ok {
		if entity, ok := asEntity("Organization", alumniOf); ok {
			schema["alumniOf"] = entity
		}
	}

	if v, ok := fields["birthDate"]; ok {
		schema["birthDate"] = normalizeDate(v)
	}

	copyFields(schema, fields, "email", "telephone")

	if address, ok := fields["address"]; ok {
		if entity, ok := postalAddress(address); ok {
			schema["address"] = entity
		}
	}

	return schema
}

// postalAddress wraps a string as a PostalAddress with streetAddress and
// merges a mapping with a defaulted @type. Other shapes are unusable.
func postalAddress(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return map[string]any{"@type": "PostalAddress", "streetAddress": v}, true
	case map[string]any:
		entity, _ := asEntity("PostalAddress", v)
		return entity, true
	}
	return nil, false
}

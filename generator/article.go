package generator

import "strings"

// generateArticle builds an Article document. The first content line becomes
// the headline and the remainder the articleBody unless the field bag
// overrides either.
func (g *Generator) generateArticle(content, pageURL string, fields Fields) map[string]any {
	lines := strings.Split(content, "\n")
	headline := firstLine(content, 120)

	// Everything after the headline is the default article body. For
	// single-line content the body falls back to the content itself.
	articleBody := content
	if len(lines) > 1 {
		articleBody = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}

	schema := newDocument("Article")
	if v, ok := stringField(fields, "headline"); ok {
		schema["headline"] = v
	} else {
		schema["headline"] = headline
	}

	if author, ok := fields["author"]; ok {
		if entity, ok := asEntity("Person", author); ok {
			schema["author"] = entity
		} else {
			schema["author"] = map[string]any{"@type": "Person", "name": "Unknown"}
		}
	} else {
		schema["author"] = map[string]any{"@type": "Person", "name": "Unknown"}
	}

	if v, ok := fields["datePublished"]; ok {
		schema["datePublished"] = normalizeDate(v)
	} else {
		schema["datePublished"] = normalizeDate(nowDateTime())
	}
	if v, ok := fields["dateModified"]; ok {
		schema["dateModified"] = normalizeDate(v)
	}

	if name, ok := g.resolve("publisher_name", fields).(string); ok && name != "" {
		publisher := map[string]any{
			"@type": "Organization",
			"name":  name,
		}
		if logo, ok := g.resolve("publisher_logo", fields).(string); ok && logo != "" {
			publisher["logo"] = map[string]any{
				"@type": "ImageObject",
				"url":   normalizeURL(logo, pageURL),
			}
		}
		schema["publisher"] = publisher
	}

	if image, ok := fields["image"]; ok {
		schema["image"] = imageList(image, pageURL)
	}

	if pageURL != "" {
		schema["url"] = normalizeURL(pageURL, "")
	}
	copyFields(schema, fields, "description")

	if body, ok := fields["articleBody"]; ok {
		schema["articleBody"] = body
	} else if articleBody != "" {
		schema["articleBody"] = articleBody
	}

	copyFields(schema, fields, "wordCount", "mainEntityOfPage")

	return schema
}

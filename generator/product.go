package generator

import "strings"

// generateProduct builds a Product document with a normalized Offer and
// AggregateRating when the field bag supplies them as mappings.
func (g *Generator) generateProduct(content, pageURL string, fields Fields) map[string]any {
	lines := strings.Split(content, "\n")
	name := firstLine(content, 120)
	description := "Product description"
	if len(lines) > 1 {
		description = lines[1]
	}

	schema := newDocument("Product")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = name
	}
	if v, ok := fields["description"]; ok {
		schema["description"] = v
	} else {
		schema["description"] = description
	}

	if pageURL != "" {
		schema["url"] = normalizeURL(pageURL, "")
	}

	if brand := g.resolve("brand_name", fields); brand != nil {
		if entity, ok := asEntity("Brand", brand); ok {
			schema["brand"] = entity
		}
	}

	if image, ok := fields["image"]; ok {
		schema["image"] = imageList(image, pageURL)
	}

	copyFields(schema, fields, "sku", "gtin13", "mpn")

	if offers, ok := fields["offers"]; ok {
		if m, ok := offers.(map[string]any); ok {
			schema["offers"] = g.buildOffer(m, pageURL)
		} else {
			schema["offers"] = offers
		}
	}

	if rating, ok := fields["aggregateRating"]; ok {
		if m, ok := rating.(map[string]any); ok {
			schema["aggregateRating"] = buildAggregateRating(m)
		} else {
			schema["aggregateRating"] = rating
		}
	}

	if manufacturer, ok := fields["manufacturer"]; ok {
		if entity, ok := asEntity("Organization", manufacturer); ok {
			schema["manufacturer"] = entity
		}
	}

	return schema
}

// buildOffer normalizes an offer mapping: currency is whitelisted,
// availability defaults to InStock, and the URL resolves against the page
// URL. Absent values stay absent.
func (g *Generator) buildOffer(offer map[string]any, pageURL string) map[string]any {
	out := map[string]any{"@type": "Offer"}

	if price, ok := offer["price"]; ok && price != nil {
		out["price"] = price
	}

	currency := "USD"
	if c, ok := offer["priceCurrency"].(string); ok {
		currency = c
	}
	out["priceCurrency"] = normalizeCurrency(currency)

	if availability, ok := offer["availability"]; ok && availability != nil {
		out["availability"] = availability
	} else {
		out["availability"] = "https://schema.org/InStock"
	}

	offerURL, _ := offer["url"].(string)
	if offerURL != "" {
		out["url"] = normalizeURL(offerURL, pageURL)
	} else if pageURL != "" {
		out["url"] = normalizeURL(pageURL, pageURL)
	}

	return out
}

// buildAggregateRating normalizes a rating mapping with best/worst bounds
// defaulted to the conventional 5/1.
func buildAggregateRating(rating map[string]any) map[string]any {
	out := map[string]any{"@type": "AggregateRating"}

	if v, ok := rating["ratingValue"]; ok && v != nil {
		out["ratingValue"] = v
	}
	if v, ok := rating["reviewCount"]; ok && v != nil {
		out["reviewCount"] = v
	}
	if v, ok := rating["bestRating"]; ok && v != nil {
		out["bestRating"] = v
	} else {
		out["bestRating"] = 5
	}
	if v, ok := rating["worstRating"]; ok && v != nil {
		out["worstRating"] = v
	} else {
		out["worstRating"] = 1
	}

	return out
}

package validator

import "fmt"

// Nested entity validators shared across the per-type checks. Each takes the
// JSON-pointer path of the value it is inspecting.

func nestedOffer(offer map[string]any, path string) []Issue {
	var errs []Issue

	if offer["@type"] != "Offer" {
		errs = append(errs, errorIssueCtx(path+"/@type", CodeNestedInvalidType,
			"offers must be of type Offer", "Offer", offer["@type"]))
	}

	_, hasPrice := offer["price"]
	_, hasSpec := offer["priceSpecification"]
	if !hasPrice && !hasSpec {
		errs = append(errs, errorIssue(path+"/price", CodeNestedMissingField,
			"offers must have price or priceSpecification"))
	}

	return errs
}

// nestedAddress accepts a bare string or a PostalAddress mapping.
func nestedAddress(address any, path string) []Issue {
	switch a := address.(type) {
	case string:
		return nil
	case map[string]any:
		if t, ok := a["@type"]; ok && t != "PostalAddress" {
			return []Issue{errorIssueCtx(path+"/@type", CodeNestedInvalidType,
				"address must be of type PostalAddress", "PostalAddress", t)}
		}
		return nil
	}
	return []Issue{errorIssueCtx(path, CodeInvalidValueType,
		"address must be a PostalAddress object or string",
		"PostalAddress or string", typeName(address))}
}

func nestedRating(rating any, path string) []Issue {
	m, ok := rating.(map[string]any)
	if !ok {
		return []Issue{errorIssueCtx(path, CodeInvalidValueType,
			"aggregateRating must be an object", "object", typeName(rating))}
	}

	var errs []Issue
	if m["@type"] != "AggregateRating" {
		errs = append(errs, errorIssueCtx(path+"/@type", CodeNestedInvalidType,
			"aggregateRating must be of type AggregateRating",
			"AggregateRating", m["@type"]))
	}

	if value, ok := m["ratingValue"]; ok {
		if !isNumber(value) {
			errs = append(errs, errorIssueCtx(path+"/ratingValue", CodeInvalidValueType,
				"ratingValue must be a number", "number", typeName(value)))
		}
	} else {
		errs = append(errs, errorIssue(path+"/ratingValue", CodeNestedMissingField,
			"aggregateRating must have ratingValue"))
	}

	if _, ok := m["reviewCount"]; !ok {
		errs = append(errs, errorIssue(path+"/reviewCount", CodeNestedMissingField,
			"aggregateRating must have reviewCount"))
	}

	return errs
}

// nestedImage accepts a bare URL string, an ImageObject mapping, or an array
// of either.
func nestedImage(image any, path string) []Issue {
	var errs []Issue

	switch img := image.(type) {
	case string:
	case []any:
		for i, item := range img {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := m["@type"]; ok && t != "ImageObject" {
				errs = append(errs, errorIssueCtx(
					fmt.Sprintf("%s/%d/@type", path, i), CodeNestedInvalidType,
					fmt.Sprintf("image[%d] must be of type ImageObject", i),
					"ImageObject", t))
			}
			if _, ok := m["url"]; !ok {
				errs = append(errs, errorIssue(
					fmt.Sprintf("%s/%d/url", path, i), CodeNestedMissingField,
					fmt.Sprintf("image[%d] must have url", i)))
			}
		}
	case map[string]any:
		if t, ok := img["@type"]; ok && t != "ImageObject" {
			errs = append(errs, errorIssueCtx(path+"/@type", CodeNestedInvalidType,
				"image must be of type ImageObject", "ImageObject", t))
		}
		if _, ok := img["url"]; !ok {
			errs = append(errs, errorIssue(path+"/url", CodeNestedMissingField,
				"image must have url"))
		}
	}

	return errs
}

func nestedHowToSteps(steps []any, path string) []Issue {
	var errs []Issue

	for i, step := range steps {
		m, ok := step.(map[string]any)
		if !ok {
			errs = append(errs, errorIssue(fmt.Sprintf("%s/%d", path, i),
				CodeInvalidArrayItem,
				fmt.Sprintf("step[%d] must be a HowToStep object", i)))
			continue
		}
		if t, ok := m["@type"]; ok && t != "HowToStep" {
			errs = append(errs, errorIssueCtx(
				fmt.Sprintf("%s/%d/@type", path, i), CodeNestedInvalidType,
				fmt.Sprintf("step[%d] must be of type HowToStep", i),
				"HowToStep", t))
		}
		if _, ok := m["text"]; !ok {
			errs = append(errs, errorIssue(
				fmt.Sprintf("%s/%d/text", path, i), CodeNestedMissingField,
				fmt.Sprintf("step[%d] must have text", i)))
		}
	}

	return errs
}

func nestedNutrition(nutrition any, path string) []Issue {
	m, ok := nutrition.(map[string]any)
	if !ok {
		return []Issue{errorIssueCtx(path, CodeInvalidValueType,
			"nutrition must be a NutritionInformation object",
			"object", typeName(nutrition))}
	}
	if t, ok := m["@type"]; ok && t != "NutritionInformation" {
		return []Issue{errorIssueCtx(path+"/@type", CodeNestedInvalidType,
			"nutrition must be of type NutritionInformation",
			"NutritionInformation", t)}
	}
	return nil
}

// nestedOrganization accepts a bare string or an Organization mapping whose
// logo is checked as an ImageObject.
func nestedOrganization(org any, path string) []Issue {
	switch o := org.(type) {
	case string:
		return nil
	case map[string]any:
		var errs []Issue
		if t, ok := o["@type"]; ok && t != "Organization" {
			errs = append(errs, errorIssueCtx(path+"/@type", CodeNestedInvalidType,
				"Must be of type Organization", "Organization", t))
		}
		if _, ok := o["name"]; !ok {
			errs = append(errs, errorIssue(path+"/name", CodeNestedMissingField,
				"Organization must have name"))
		}
		if logo, ok := o["logo"]; ok {
			errs = append(errs, nestedImage(logo, path+"/logo")...)
		}
		return errs
	}
	return []Issue{errorIssueCtx(path, CodeInvalidValueType,
		"Organization must be an object or string",
		"Organization or string", typeName(org))}
}

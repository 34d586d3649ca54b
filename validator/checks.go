package validator

import "fmt"

// typeName renders a value's JSON type for issue context.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32:
		return true
	}
	return false
}

// checkFieldTypes applies the per-type structural rules, descending into
// nested entities.
func checkFieldTypes(schema map[string]any, schemaType string) []Issue {
	switch schemaType {
	case "Article":
		return checkArticle(schema)
	case "Product":
		return checkProduct(schema)
	case "Event":
		return checkEvent(schema)
	case "Recipe":
		return checkRecipe(schema)
	case "FAQPage":
		return checkFAQPage(schema)
	case "HowTo":
		return checkHowTo(schema)
	case "Course":
		return checkCourse(schema)
	case "Organization":
		return checkOrganization(schema)
	case "Person":
		return checkPerson(schema)
	}
	return nil
}

func checkArticle(schema map[string]any) []Issue {
	var errs []Issue

	if author, ok := schema["author"]; ok {
		switch a := author.(type) {
		case map[string]any:
			if a["@type"] != "Person" {
				errs = append(errs, errorIssueCtx("/author/@type", CodeInvalidType,
					"author should be of type Person", "Person", a["@type"]))
			}
			if _, ok := a["name"]; !ok {
				errs = append(errs, errorIssue("/author/name", CodeNestedMissingField,
					"author must have a name field"))
			}
		case string:
		default:
			errs = append(errs, errorIssueCtx("/author", CodeInvalidValueType,
				"author should be a Person object or string",
				"Person or string", typeName(author)))
		}
	}

	if date, ok := schema["datePublished"]; ok {
		if _, ok := date.(string); !ok {
			errs = append(errs, errorIssueCtx("/datePublished", CodeInvalidValueType,
				"datePublished should be a string (ISO 8601 format)",
				"string", typeName(date)))
		}
	}

	if publisher, ok := schema["publisher"]; ok {
		errs = append(errs, nestedOrganization(publisher, "/publisher")...)
	}
	if image, ok := schema["image"]; ok {
		errs = append(errs, nestedImage(image, "/image")...)
	}

	return errs
}

func checkProduct(schema map[string]any) []Issue {
	var errs []Issue

	if offers, ok := schema["offers"]; ok {
		switch o := offers.(type) {
		case map[string]any:
			errs = append(errs, nestedOffer(o, "/offers")...)
		case []any:
			for i, offer := range o {
				path := fmt.Sprintf("/offers/%d", i)
				if m, ok := offer.(map[string]any); ok {
					errs = append(errs, nestedOffer(m, path)...)
				} else {
					errs = append(errs, errorIssue(path, CodeInvalidArrayItem,
						fmt.Sprintf("offers[%d] should be an Offer object", i)))
				}
			}
		}
	}

	if rating, ok := schema["aggregateRating"]; ok {
		errs = append(errs, nestedRating(rating, "/aggregateRating")...)
	}

	if brand, ok := schema["brand"]; ok {
		if m, ok := brand.(map[string]any); ok {
			if m["@type"] != "Brand" && m["@type"] != "Organization" {
				errs = append(errs, errorIssueCtx("/brand/@type", CodeInvalidType,
					"brand should be of type Brand or Organization",
					"Brand or Organization", m["@type"]))
			}
		}
	}

	if image, ok := schema["image"]; ok {
		errs = append(errs, nestedImage(image, "/image")...)
	}

	return errs
}

func checkEvent(schema map[string]any) []Issue {
	var errs []Issue

	if location, ok := schema["location"]; ok {
		if m, ok := location.(map[string]any); ok {
			if _, ok := m["@type"]; !ok {
				errs = append(errs, errorIssue("/location/@type", CodeNestedMissingType,
					"location should have a @type (Place or VirtualLocation)"))
			}
			if address, ok := m["address"]; ok {
				errs = append(errs, nestedAddress(address, "/location/address")...)
			}
		}
	}

	if startDate, ok := schema["startDate"]; ok {
		if _, ok := startDate.(string); !ok {
			errs = append(errs, errorIssueCtx("/startDate", CodeInvalidValueType,
				"startDate should be a string (ISO 8601 format)",
				"string", typeName(startDate)))
		}
	}

	if organizer, ok := schema["organizer"]; ok {
		if m, ok := organizer.(map[string]any); ok {
			errs = append(errs, nestedOrganization(m, "/organizer")...)
		}
	}
	if image, ok := schema["image"]; ok {
		errs = append(errs, nestedImage(image, "/image")...)
	}

	return errs
}

func checkRecipe(schema map[string]any) []Issue {
	var errs []Issue

	if ingredients, ok := schema["recipeIngredient"]; ok {
		if list, ok := ingredients.([]any); ok {
			if len(list) == 0 {
				errs = append(errs, errorIssue("/recipeIngredient", CodeEmptyRequiredField,
					"recipeIngredient should not be empty"))
			}
		} else {
			errs = append(errs, errorIssueCtx("/recipeIngredient", CodeInvalidValueType,
				"recipeIngredient should be a list", "list", typeName(ingredients)))
		}
	}

	if instructions, ok := schema["recipeInstructions"]; ok {
		switch ins := instructions.(type) {
		case []any:
			errs = append(errs, nestedHowToSteps(ins, "/recipeInstructions")...)
		case string:
		default:
			errs = append(errs, errorIssueCtx("/recipeInstructions", CodeInvalidValueType,
				"recipeInstructions should be a list or string",
				"list or string", typeName(instructions)))
		}
	}

	if nutrition, ok := schema["nutrition"]; ok {
		errs = append(errs, nestedNutrition(nutrition, "/nutrition")...)
	}
	if rating, ok := schema["aggregateRating"]; ok {
		errs = append(errs, nestedRating(rating, "/aggregateRating")...)
	}
	if image, ok := schema["image"]; ok {
		errs = append(errs, nestedImage(image, "/image")...)
	}

	return errs
}

func checkFAQPage(schema map[string]any) []Issue {
	var errs []Issue

	if entities, ok := schema["mainEntity"]; ok {
		list, ok := entities.([]any)
		if !ok {
			return append(errs, errorIssueCtx("/mainEntity", CodeInvalidValueType,
				"mainEntity should be a list of Question objects",
				"list", typeName(entities)))
		}
		for i, entity := range list {
			m, ok := entity.(map[string]any)
			if !ok {
				errs = append(errs, errorIssue(fmt.Sprintf("/mainEntity/%d", i),
					CodeInvalidArrayItem,
					fmt.Sprintf("mainEntity[%d] should be a Question object", i)))
				continue
			}
			if m["@type"] != "Question" {
				errs = append(errs, errorIssueCtx(fmt.Sprintf("/mainEntity/%d/@type", i),
					CodeInvalidType,
					fmt.Sprintf("mainEntity[%d] should be of type Question", i),
					"Question", m["@type"]))
			}
		}
	}

	return errs
}

func checkHowTo(schema map[string]any) []Issue {
	var errs []Issue

	if steps, ok := schema["step"]; ok {
		list, ok := steps.([]any)
		if !ok {
			return append(errs, errorIssueCtx("/step", CodeInvalidValueType,
				"step should be a list of HowToStep objects",
				"list", typeName(steps)))
		}
		if len(list) == 0 {
			return append(errs, errorIssue("/step", CodeEmptyRequiredField,
				"step should not be empty"))
		}
		errs = append(errs, nestedHowToSteps(list, "/step")...)
	}

	return errs
}

func checkCourse(schema map[string]any) []Issue {
	var errs []Issue

	if provider, ok := schema["provider"]; ok {
		if m, ok := provider.(map[string]any); ok {
			errs = append(errs, nestedOrganization(m, "/provider")...)
		}
	}

	return errs
}

func checkOrganization(schema map[string]any) []Issue {
	var errs []Issue

	if address, ok := schema["address"]; ok {
		errs = append(errs, nestedAddress(address, "/address")...)
	}
	if logo, ok := schema["logo"]; ok {
		errs = append(errs, nestedImage(logo, "/logo")...)
	}

	return errs
}

func checkPerson(schema map[string]any) []Issue {
	var errs []Issue

	if address, ok := schema["address"]; ok {
		errs = append(errs, nestedAddress(address, "/address")...)
	}
	if worksFor, ok := schema["worksFor"]; ok {
		if m, ok := worksFor.(map[string]any); ok {
			errs = append(errs, nestedOrganization(m, "/worksFor")...)
		}
	}
	if image, ok := schema["image"]; ok {
		errs = append(errs, nestedImage(image, "/image")...)
	}

	return errs
}

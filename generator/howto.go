package generator

import (
	"regexp"
	"strings"
)

var (
	numberedStepRe = regexp.MustCompile(`^\d+[.)]\s`)
	stepPrefixRe   = regexp.MustCompile(`(?i)^step\s*\d*:?\s*`)
)

// generateHowTo builds a HowTo document. Steps come from an explicit step
// field, a steps list, or are parsed out of numbered/"Step N" lines in the
// content.
func (g *Generator) generateHowTo(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("HowTo")
	if v, ok := stringField(fields, "name"); ok {
		schema["name"] = v
	} else {
		schema["name"] = firstLine(content, 120)
	}

	if v, ok := fields["step"]; ok {
		schema["step"] = v
	} else if v, ok := fields["steps"]; ok {
		schema["step"] = stepList(v)
	} else {
		schema["step"] = parseSteps(content)
	}

	if pageURL != "" {
		schema["url"] = pageURL
	}
	copyFields(schema, fields,
		"description", "image", "totalTime", "estimatedCost",
		"supply", "tool", "video")

	return schema
}

// stepList converts a list of strings or {text, name} mappings into
// HowToStep entities.
func stepList(value any) []any {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return []any{}
	}
	steps := make([]any, 0, len(items))
	for i, item := range items {
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
}

// parseSteps extracts HowToStep entities from the content lines after the
// title. A step line is numbered ("1. ", "2) ") or starts with "step".
func parseSteps(content string) []any {
	var steps []any
	position := 1

	lines := strings.Split(content, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !numberedStepRe.MatchString(line) && !strings.HasPrefix(strings.ToLower(line), "step") {
			continue
		}
		text := numberedStepRe.ReplaceAllString(line, "")
		text = stepPrefixRe.ReplaceAllString(text, "")
		if text == "" {
			continue
		}
		steps = append(steps, howToStep(text, stepName(position), position))
		position++
	}

	if len(steps) == 0 {
		return []any{howToStep("Follow the instructions", "Step 1", 1)}
	}
	return steps
}

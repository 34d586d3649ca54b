package generator

import "strings"

// generateFAQ builds a FAQPage document. Question/answer pairs come from an
// explicit mainEntity, a questions list, or are parsed out of the content
// itself.
func (g *Generator) generateFAQPage(content, pageURL string, fields Fields) map[string]any {
	schema := newDocument("FAQPage")

	if v, ok := fields["mainEntity"]; ok {
		schema["mainEntity"] = v
	} else if v, ok := fields["questions"]; ok {
		schema["mainEntity"] = questionList(v)
	} else {
		schema["mainEntity"] = parseQuestions(content)
	}

	if pageURL != "" {
		schema["url"] = pageURL
	}
	copyFields(schema, fields, "about", "description", "name")

	return schema
}

func question(name, answer string) map[string]any {
	return map[string]any{
		"@type": "Question",
		"name":  name,
		"acceptedAnswer": map[string]any{
			"@type": "Answer",
			"text":  answer,
		},
	}
}

// questionList converts a list of {question, answer} mappings into
// Question entities.
func questionList(value any) []any {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return []any{}
	}
	questions := make([]any, 0, len(items))
	for _, item := range items {
		name, answer := "", ""
		if m, ok := item.(map[string]any); ok {
			if s, ok := m["question"].(string); ok {
				name = s
			}
			if s, ok := m["answer"].(string); ok {
				answer = s
			}
		}
		questions = append(questions, question(name, answer))
	}
	return questions
}

// parseQuestions extracts Q&A pairs from free text. A line ending in "?" or
// prefixed with "Q:" starts a question; following non-empty lines form the
// answer. A pair is kept only once it has at least one answer line.
func parseQuestions(content string) []any {
	var questions []any
	var current string
	var answer []string
	started := false

	flush := func() {
		if started && len(answer) > 0 {
			questions = append(questions, question(current, strings.Join(answer, " ")))
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "?") || strings.HasPrefix(strings.ToLower(line), "q:") {
			flush()
			line = strings.ReplaceAll(line, "Q:", "")
			line = strings.ReplaceAll(line, "q:", "")
			current = strings.TrimSpace(line)
			answer = nil
			started = true
		} else if started {
			text := strings.ReplaceAll(line, "A:", "")
			text = strings.ReplaceAll(text, "a:", "")
			text = strings.TrimSpace(text)
			if text != "" {
				answer = append(answer, text)
			}
		}
	}
	flush()

	if len(questions) == 0 {
		return []any{question("Sample Question", "Sample Answer")}
	}
	return questions
}

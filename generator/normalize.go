package generator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// validCurrencies is the ISO 4217 whitelist (common subset). Codes outside
// the list normalize to USD.
var validCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CNY": {},
	"AUD": {}, "CAD": {}, "CHF": {}, "HKD": {}, "SGD": {},
	"SEK": {}, "NOK": {}, "DKK": {}, "NZD": {}, "KRW": {},
	"INR": {}, "BRL": {}, "RUB": {}, "ZAR": {}, "MXN": {},
}

// validLanguages is the BCP 47 whitelist (common subset).
var validLanguages = map[string]struct{}{
	"en": {}, "en-us": {}, "en-gb": {}, "zh": {}, "zh-cn": {}, "zh-tw": {},
	"ja": {}, "ko": {}, "fr": {}, "de": {}, "es": {}, "it": {}, "pt": {},
	"ru": {}, "ar": {}, "hi": {}, "th": {}, "vi": {}, "id": {}, "ms": {},
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// normalizeDate renders a date value as ISO 8601. time.Time values keep their
// time component; recognized date strings collapse to YYYY-MM-DD; strings
// that already look ISO 8601 pass through; anything else falls back to the
// current date.
func normalizeDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.Format("2006-01-02")
			}
		}
		if isoDateRe.MatchString(v) {
			return v
		}
	}
	return time.Now().Format("2006-01-02")
}

// normalizeURL resolves a URL to absolute form. Absolute http(s) URLs pass
// through; relative paths are joined against base when one is available;
// otherwise the value is returned unchanged, which may not be a valid URL.
func normalizeURL(value, base string) string {
	if value == "" {
		return value
	}

	parsed, err := url.Parse(value)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return value
	}

	if base != "" {
		baseURL, err := url.Parse(base)
		if err == nil {
			if resolved, err := baseURL.Parse(value); err == nil {
				return resolved.String()
			}
		}
	}

	return value
}

// normalizeCurrency uppercases and whitelists an ISO 4217 code, defaulting
// to USD for anything unrecognized.
func normalizeCurrency(value string) string {
	if value == "" {
		return "USD"
	}
	upper := strings.ToUpper(value)
	if _, ok := validCurrencies[upper]; ok {
		return upper
	}
	return "USD"
}

// normalizeLanguage lowercases and whitelists a BCP 47 tag, trying the main
// language subtag before defaulting to en.
func normalizeLanguage(value string) string {
	if value == "" {
		return "en"
	}
	lower := strings.ToLower(value)
	if _, ok := validLanguages[lower]; ok {
		return lower
	}
	if main, _, found := strings.Cut(lower, "-"); found {
		if _, ok := validLanguages[main]; ok {
			return main
		}
	}
	return "en"
}

// asEntity wraps a string-or-mapping value as a typed Schema.org entity.
// A bare string becomes {"@type": kind, "name": value}; a mapping is merged
// with @type defaulting to kind (a caller-supplied @type wins). Any other
// shape is unusable and returns ok=false so the caller can fall back to its
// default or omit the field.
func asEntity(kind string, value any) (map[string]any, bool) {
	switch v := value.(type) {
	case string:
		return map[string]any{"@type": kind, "name": v}, true
	case map[string]any:
		entity := map[string]any{"@type": kind}
		for key, val := range v {
			entity[key] = val
		}
		return entity, true
	}
	return nil, false
}

// mergeEntity copies a mapping on top of {"@type": kind}, so a
// caller-supplied @type wins.
func mergeEntity(kind string, value map[string]any) map[string]any {
	entity := map[string]any{"@type": kind}
	for key, val := range value {
		entity[key] = val
	}
	return entity
}

// imageObject wraps a bare URL string as an ImageObject; mappings and other
// shapes pass through unchanged.
func imageObject(value any, base string) any {
	if s, ok := value.(string); ok {
		return map[string]any{"@type": "ImageObject", "url": normalizeURL(s, base)}
	}
	return value
}

// imageList normalizes an image field to an array: a single value becomes a
// one-element array, and each string element is wrapped as an ImageObject.
func imageList(value any, base string) []any {
	var items []any
	if list, ok := value.([]any); ok {
		items = list
	} else {
		items = []any{value}
	}

	out := make([]any, len(items))
	for i, item := range items {
		out[i] = imageObject(item, base)
	}
	return out
}

// firstLine returns the first line of content truncated to max runes.
func firstLine(content string, max int) string {
	line, _, _ := strings.Cut(content, "\n")
	runes := []rune(line)
	if len(runes) > max {
		return string(runes[:max])
	}
	return line
}

// howToStep builds the canonical HowToStep mapping for a 1-based position.
func howToStep(text, name string, position int) map[string]any {
	return map[string]any{
		"@type":    "HowToStep",
		"text":     text,
		"name":     name,
		"position": position,
	}
}

func stepName(position int) string {
	return fmt.Sprintf("Step %d", position)
}

// nowDateTime is the fallback for required date fields the caller omitted.
func nowDateTime() time.Time {
	return time.Now()
}

package generator

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"iso date", "2024-03-15", "2024-03-15"},
		{"iso datetime passes through", "2024-03-15T10:30:00", "2024-03-15T10:30:00"},
		{"slash format", "2024/03/15", "2024-03-15"},
		{"day first dashes", "15-03-2024", "2024-03-15"},
		{"day first slashes", "15/03/2024", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeDate(tt.value)
			if got != tt.want {
				t.Errorf("normalizeDate(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate_Time(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	got := normalizeDate(ts)
	if got != ts.Format(time.RFC3339) {
		t.Errorf("normalizeDate(time.Time) = %q, want %q", got, ts.Format(time.RFC3339))
	}
}

func TestNormalizeDate_Unparseable(t *testing.T) {
	got := normalizeDate("not a date")
	want := time.Now().Format("2006-01-02")
	if got != want {
		t.Errorf("normalizeDate fallback = %q, want today %q", got, want)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		value string
		base  string
		want  string
	}{
		{"absolute http", "http://x.com/a", "", "http://x.com/a"},
		{"absolute https", "https://x.com/a", "", "https://x.com/a"},
		{"relative with base", "/img.png", "https://x.com/page", "https://x.com/img.png"},
		{"relative without base", "img.png", "", "img.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeURL(tt.value, tt.base)
			if got != tt.want {
				t.Errorf("normalizeURL(%q, %q) = %q, want %q", tt.value, tt.base, got, tt.want)
			}
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"usd", "USD"},
		{"EUR", "EUR"},
		{"gbp", "GBP"},
		{"zzz", "USD"},
		{"", "USD"},
	}

	for _, tt := range tests {
		if got := normalizeCurrency(tt.value); got != tt.want {
			t.Errorf("normalizeCurrency(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"en", "en"},
		{"en-US", "en-us"},
		{"fr", "fr"},
		{"fr-CA", "fr"},
		{"xx", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		if got := normalizeLanguage(tt.value); got != tt.want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestAsEntity(t *testing.T) {
	entity, ok := asEntity("Person", "Jane")
	if !ok {
		t.Fatal("expected string to be usable")
	}
	if entity["@type"] != "Person" || entity["name"] != "Jane" {
		t.Errorf("unexpected entity: %v", entity)
	}

	entity, ok = asEntity("Organization", map[string]any{"@type": "Corporation", "name": "Acme"})
	if !ok {
		t.Fatal("expected mapping to be usable")
	}
	if entity["@type"] != "Corporation" {
		t.Errorf("caller @type must win, got %v", entity["@type"])
	}

	if _, ok := asEntity("Person", 42); ok {
		t.Error("expected non-string non-mapping to be unusable")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("title\nbody", 120); got != "title" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("ééééé", 3); got != "ééé" {
		t.Errorf("firstLine rune truncation = %q", got)
	}
}

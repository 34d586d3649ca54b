package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:     []string{},
		validation: false,
		envPrefix:  "SEMSCHEMA",
	}
}

// AddLayer adds a configuration file layer
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	cfg := l.getDefaults()

	for _, path := range l.layers {
		raw, err := l.loadRaw(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		if err := validateStructure(raw); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg = l.mergeFromMap(cfg, raw)
	}

	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getDefaults returns default configuration
func (l *Loader) getDefaults() *Config {
	return &Config{
		Version: "1.0.0",
		Server: ServerConfig{
			Host:            "",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Limits: LimitsConfig{
			MaxContentChars: 1_000_000,
			MaxFieldKeys:    50,
			MaxSchemaKeys:   100,
			MaxBodyBytes:    4 << 20,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 100,
			Burst:             10,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
		WordPress: WordPressConfig{
			Timeout: 30 * time.Second,
		},
		Site: SiteConfig{
			Language: "en",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// loadRaw reads one layer into a map, dispatching on file extension.
func (l *Loader) loadRaw(path string) (map[string]any, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	} else {
		if err := validateJSONDepth(data); err != nil {
			return nil, fmt.Errorf("invalid JSON structure: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	l.parseDurations(raw)
	return raw, nil
}

// mergeFromMap merges configuration from a raw map, only overriding fields
// present in the map.
func (l *Loader) mergeFromMap(base *Config, override map[string]any) *Config {
	if override == nil {
		return base
	}

	baseJSON, err := json.Marshal(base)
	if err != nil {
		return base
	}
	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return base
	}

	mergedMap := l.deepMergeMaps(baseMap, override)

	mergedJSON, err := json.Marshal(mergedMap)
	if err != nil {
		return base
	}
	var merged Config
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return base
	}
	return &merged
}

// deepMergeMaps recursively merges two maps, with override taking precedence
func (l *Loader) deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any)

	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, baseOk := base[k].(map[string]any); baseOk {
			if overrideMap, overrideOk := v.(map[string]any); overrideOk {
				result[k] = l.deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}

	return result
}

// durationKeys maps config sections to their duration-string fields, which
// JSON unmarshaling needs pre-converted to nanoseconds.
var durationKeys = map[string][]string{
	"server":    {"read_timeout", "write_timeout", "shutdown_timeout"},
	"wordpress": {"timeout"},
}

func (l *Loader) parseDurations(data map[string]any) {
	for section, keys := range durationKeys {
		m, ok := data[section].(map[string]any)
		if !ok {
			continue
		}
		for _, key := range keys {
			s, ok := m[key].(string)
			if !ok {
				continue
			}
			if d, err := time.ParseDuration(s); err == nil {
				m[key] = d.Nanoseconds()
			}
		}
	}
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if val := l.env("SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := l.env("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
	if val := l.env("API_KEYS"); val != "" {
		cfg.Auth.Enabled = true
		cfg.Auth.APIKeys = strings.Split(val, ",")
	}
	if val := l.env("SITE_PUBLISHER_NAME"); val != "" {
		cfg.Site.PublisherName = val
	}
	if val := l.env("SITE_PUBLISHER_LOGO"); val != "" {
		cfg.Site.PublisherLogo = val
	}
	if val := l.env("SITE_BRAND_NAME"); val != "" {
		cfg.Site.BrandName = val
	}
	if val := l.env("WORDPRESS_URL"); val != "" {
		cfg.WordPress.Enabled = true
		cfg.WordPress.BaseURL = val
	}
	if val := l.env("WORDPRESS_USERNAME"); val != "" {
		cfg.WordPress.Username = val
	}
	if val := l.env("WORDPRESS_APP_PASSWORD"); val != "" {
		cfg.WordPress.AppPassword = val
	}
	if val := l.env("LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := l.env("LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
	if val := l.env("METRICS_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Metrics.Port = port
		}
	}
}

func (l *Loader) env(suffix string) string {
	val := os.Getenv(l.envPrefix + "_" + suffix)
	if err := validateEnvVar(l.envPrefix+"_"+suffix, val); err != nil {
		return ""
	}
	return val
}

// Package config loads and validates the application configuration from
// JSON or YAML files layered under environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Config represents the complete application configuration.
type Config struct {
	Version   string          `json:"version" yaml:"version"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Auth      AuthConfig      `json:"auth,omitempty" yaml:"auth,omitempty"`
	Site      SiteConfig      `json:"site,omitempty" yaml:"site,omitempty"`
	Limits    LimitsConfig    `json:"limits,omitempty" yaml:"limits,omitempty"`
	RateLimit RateLimitConfig `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
	Metrics   MetricsConfig   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	WordPress WordPressConfig `json:"wordpress,omitempty" yaml:"wordpress,omitempty"`
	Logging   LoggingConfig   `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig defines the API server listen settings.
type ServerConfig struct {
	Host            string        `json:"host,omitempty" yaml:"host,omitempty"`
	Port            int           `json:"port" yaml:"port"`
	ReadTimeout     time.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`
	CORSOrigins     []string      `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

// AuthConfig defines API key authentication. With Enabled false every
// endpoint is public.
type AuthConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	APIKeys []string `json:"api_keys,omitempty" yaml:"api_keys,omitempty"`
}

// SiteConfig carries site-level metadata used as generation fallbacks.
type SiteConfig struct {
	PublisherName string   `json:"publisher_name,omitempty" yaml:"publisher_name,omitempty"`
	PublisherLogo string   `json:"publisher_logo,omitempty" yaml:"publisher_logo,omitempty"`
	BrandName     string   `json:"brand_name,omitempty" yaml:"brand_name,omitempty"`
	SameAs        []string `json:"same_as,omitempty" yaml:"same_as,omitempty"`
	Language      string   `json:"language,omitempty" yaml:"language,omitempty"`
}

// LimitsConfig caps request payload dimensions.
type LimitsConfig struct {
	MaxContentChars int `json:"max_content_chars,omitempty" yaml:"max_content_chars,omitempty"`
	MaxFieldKeys    int `json:"max_field_keys,omitempty" yaml:"max_field_keys,omitempty"`
	MaxSchemaKeys   int `json:"max_schema_keys,omitempty" yaml:"max_schema_keys,omitempty"`
	MaxBodyBytes    int `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty"`
}

// RateLimitConfig defines per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled" yaml:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`
	Burst             int     `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// MetricsConfig defines the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// WordPressConfig defines the CMS connection. AppPassword is a WordPress
// application password, not the account password.
type WordPressConfig struct {
	Enabled     bool          `json:"enabled" yaml:"enabled"`
	BaseURL     string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Username    string        `json:"username,omitempty" yaml:"username,omitempty"`
	AppPassword string        `json:"app_password,omitempty" yaml:"app_password,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// LoggingConfig defines log output settings.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// SafeConfig provides thread-safe access to configuration
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig creates a new thread-safe config wrapper
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = &Config{}
	}
	return &SafeConfig{config: cfg}
}

// Get returns a deep copy of the current configuration
func (sc *SafeConfig) Get() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.Clone()
}

// Update atomically updates the configuration after validation
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}
	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}
	return &clone
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		return errors.New("auth.api_keys is required when auth is enabled")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return errors.New("rate_limit.requests_per_second must be positive when rate limiting is enabled")
		}
		if c.RateLimit.Burst <= 0 {
			return errors.New("rate_limit.burst must be positive when rate limiting is enabled")
		}
	}

	if c.Metrics.Enabled && (c.Metrics.Port < 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port %d out of range", c.Metrics.Port)
	}

	if c.WordPress.Enabled {
		if c.WordPress.BaseURL == "" {
			return errors.New("wordpress.base_url is required when wordpress is enabled")
		}
		parsed, err := url.Parse(c.WordPress.BaseURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("wordpress.base_url %q is not an http(s) URL", c.WordPress.BaseURL)
		}
		if c.WordPress.Username == "" || c.WordPress.AppPassword == "" {
			return errors.New("wordpress.username and wordpress.app_password are required when wordpress is enabled")
		}
	}

	if c.Logging.Level != "" {
		switch strings.ToLower(c.Logging.Level) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
		}
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format %q is not json or text", c.Logging.Format)
	}

	if c.Limits.MaxContentChars < 0 || c.Limits.MaxFieldKeys < 0 || c.Limits.MaxSchemaKeys < 0 {
		return errors.New("limits values must be non-negative")
	}

	if c.Version != "" {
		if _, _, _, err := parseSemVer(c.Version); err != nil {
			return fmt.Errorf("version: %w", err)
		}
	}

	return nil
}

// Addr returns the host:port the API server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// String returns a JSON representation of the config with secrets redacted.
func (c *Config) String() string {
	clone := c.Clone()
	if len(clone.Auth.APIKeys) > 0 {
		clone.Auth.APIKeys = []string{"<redacted>"}
	}
	if clone.WordPress.AppPassword != "" {
		clone.WordPress.AppPassword = "<redacted>"
	}
	data, _ := json.MarshalIndent(clone, "", "  ")
	return string(data)
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return safeWriteFile(path, data)
}

// CompareVersions compares two semver version strings.
// Returns -1 if v1 < v2, 0 if equal, 1 if v1 > v2.
func CompareVersions(v1, v2 string) (int, error) {
	major1, minor1, patch1, err := parseSemVer(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", v1, err)
	}
	major2, minor2, patch2, err := parseSemVer(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", v2, err)
	}

	a := [3]int{major1, minor1, patch1}
	b := [3]int{major2, minor2, patch2}
	for i := 0; i < 3; i++ {
		if a[i] < b[i] {
			return -1, nil
		}
		if a[i] > b[i] {
			return 1, nil
		}
	}
	return 0, nil
}

func parseSemVer(version string) (int, int, int, error) {
	parts := strings.SplitN(strings.TrimPrefix(version, "v"), ".", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected MAJOR.MINOR.PATCH, got %q", version)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid version component %q", part)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	// Keep the file under the working directory so path validation accepts it.
	dir, err := os.MkdirTemp(".", "config-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 1_000_000, cfg.Limits.MaxContentChars)
	assert.Equal(t, 50, cfg.Limits.MaxFieldKeys)
	assert.Equal(t, 100, cfg.Limits.MaxSchemaKeys)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoader_JSONLayer(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
		"server": {"port": 9000, "read_timeout": "5s"},
		"site": {"publisher_name": "Acme Media"}
	}`)

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "Acme Media", cfg.Site.PublisherName)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoader_YAMLLayer(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
server:
  port: 9001
wordpress:
  enabled: true
  base_url: https://blog.example.com
  username: admin
  app_password: secret
  timeout: 10s
`)

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.True(t, cfg.WordPress.Enabled)
	assert.Equal(t, "https://blog.example.com", cfg.WordPress.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.WordPress.Timeout)
}

func TestLoader_LayerPrecedence(t *testing.T) {
	base := writeTempConfig(t, "base.json", `{"server": {"port": 9000, "host": "0.0.0.0"}}`)
	override := writeTempConfig(t, "override.json", `{"server": {"port": 9100}}`)

	loader := NewLoader()
	loader.AddLayer(base)
	loader.AddLayer(override)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoader_RejectsUnknownSection(t *testing.T) {
	path := writeTempConfig(t, "bad.json", `{"not_a_section": {}}`)

	_, err := NewLoader().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config structure invalid")
}

func TestLoader_RejectsWrongType(t *testing.T) {
	path := writeTempConfig(t, "bad.json", `{"server": {"port": "eight thousand"}}`)

	_, err := NewLoader().LoadFile(path)
	require.Error(t, err)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("SEMSCHEMA_SERVER_PORT", "9200")
	t.Setenv("SEMSCHEMA_API_KEYS", "key-a,key-b")
	t.Setenv("SEMSCHEMA_SITE_PUBLISHER_NAME", "Env Publisher")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, []string{"key-a", "key-b"}, cfg.Auth.APIKeys)
	assert.Equal(t, "Env Publisher", cfg.Site.PublisherName)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{
			"auth without keys",
			func(c *Config) { c.Auth.Enabled = true },
			"auth.api_keys",
		},
		{
			"bad port",
			func(c *Config) { c.Server.Port = 70000 },
			"out of range",
		},
		{
			"wordpress without url",
			func(c *Config) { c.WordPress.Enabled = true },
			"wordpress.base_url",
		},
		{
			"bad log level",
			func(c *Config) { c.Logging.Level = "verbose" },
			"logging.level",
		},
		{
			"bad version",
			func(c *Config) { c.Version = "not-semver" },
			"version",
		},
		{
			"zero rate limit",
			func(c *Config) { c.RateLimit.RequestsPerSecond = 0 },
			"requests_per_second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewLoader().getDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSafeConfig(t *testing.T) {
	cfg := NewLoader().getDefaults()
	safe := NewSafeConfig(cfg)

	// Get returns a copy, not the shared instance.
	copy1 := safe.Get()
	copy1.Server.Port = 1
	assert.Equal(t, 8000, safe.Get().Server.Port)

	updated := NewLoader().getDefaults()
	updated.Server.Port = 9999
	require.NoError(t, safe.Update(updated))
	assert.Equal(t, 9999, safe.Get().Server.Port)

	bad := NewLoader().getDefaults()
	bad.Server.Port = -1
	require.Error(t, safe.Update(bad))
}

func TestConfig_StringRedactsSecrets(t *testing.T) {
	cfg := NewLoader().getDefaults()
	cfg.Auth.APIKeys = []string{"super-secret"}
	cfg.WordPress.AppPassword = "hunter2"

	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "<redacted>")
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"2.0.0", "1.9.9", 1},
		{"v1.2.0", "1.2.0", 0},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.v1, tt.v2)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.v1, tt.v2)
	}

	_, err := CompareVersions("1.0", "1.0.0")
	assert.Error(t, err)
}

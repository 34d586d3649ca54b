package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Debug       bool
	ShowVersion bool
	ShowHelp    bool
	Validate    bool

	// configPathSet records whether the path came from the flag or the
	// environment rather than the built-in default, so a missing file is
	// an error only when it was asked for explicitly.
	configPathSet bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	envConfig := os.Getenv("SEMSCHEMA_CONFIG")

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("SEMSCHEMA_CONFIG", "configs/semschema.json"),
		"Path to configuration file (env: SEMSCHEMA_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("SEMSCHEMA_CONFIG", "configs/semschema.json"),
		"Path to configuration file (env: SEMSCHEMA_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("SEMSCHEMA_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: SEMSCHEMA_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("SEMSCHEMA_LOG_FORMAT", "json"),
		"Log format: json, text (env: SEMSCHEMA_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("SEMSCHEMA_DEBUG", false),
		"Enable debug mode (env: SEMSCHEMA_DEBUG)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	cfg.configPathSet = envConfig != ""
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" || f.Name == "c" {
			cfg.configPathSet = true
		}
	})

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Schema.org JSON-LD generation and validation

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run with custom config
  %s --config=/path/to/config.json

  # Run with debug logging
  %s --log-level=debug --log-format=text

  # Run with environment variables
  export SEMSCHEMA_CONFIG=/etc/semschema/config.json
  export SEMSCHEMA_API_KEYS=key1,key2
  %s

  # Validate configuration only
  %s --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

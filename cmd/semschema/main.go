// Package main implements the entry point for the SemSchema service.
// SemSchema generates and validates Schema.org JSON-LD markup for web
// content and injects it into a WordPress site.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/c360/semschema/adapters/wordpress"
	"github.com/c360/semschema/config"
	gatewayhttp "github.com/c360/semschema/gateway/http"
	"github.com/c360/semschema/generator"
	"github.com/c360/semschema/health"
	"github.com/c360/semschema/metric"
	"github.com/c360/semschema/validator"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semschema"
)

// wordpressProbeInterval is how often the CMS connection is re-checked.
const wordpressProbeInterval = 60 * time.Second

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Local development overrides; absence of a .env file is fine
	_ = godotenv.Load()

	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting SemSchema",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	cfg, err := loadConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runServers(ctx, cfg, logger)
}

// loadConfiguration builds the layered config from the optional file plus
// environment overrides.
func loadConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	loader.EnableValidation(true)

	if cliCfg.ConfigPath != "" {
		if _, err := os.Stat(cliCfg.ConfigPath); err == nil {
			loader.AddLayer(cliCfg.ConfigPath)
		} else if cliCfg.configPathSet {
			return nil, fmt.Errorf("config file not found: %s", cliCfg.ConfigPath)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// runServers wires the components together and runs everything until the
// context is cancelled.
func runServers(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metricsRegistry := metric.NewMetricsRegistry()
	metrics := metricsRegistry.CoreMetrics()

	monitor := health.NewMonitor()
	monitor.UpdateHealthy("generator", "ready")
	monitor.UpdateHealthy("validator", "ready")

	gen := generator.New(generator.SiteDefaults{
		PublisherName: cfg.Site.PublisherName,
		PublisherLogo: cfg.Site.PublisherLogo,
		BrandName:     cfg.Site.BrandName,
		SameAs:        cfg.Site.SameAs,
		Language:      cfg.Site.Language,
	}, logger)
	val := validator.New(nil)

	apiServer := gatewayhttp.NewServer(gatewayhttp.ConfigFrom(cfg), gen, val, metrics, monitor, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return apiServer.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return apiServer.Stop(shutdownCtx)
	})

	if cfg.Metrics.Enabled {
		metricsServer := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, metricsRegistry)
		g.Go(func() error {
			return metricsServer.Start()
		})
		g.Go(func() error {
			<-ctx.Done()
			return metricsServer.Stop()
		})
	}

	if cfg.WordPress.Enabled {
		wpClient, err := wordpress.NewClient(wordpress.Config{
			BaseURL:     cfg.WordPress.BaseURL,
			Username:    cfg.WordPress.Username,
			AppPassword: cfg.WordPress.AppPassword,
			Timeout:     cfg.WordPress.Timeout,
		}, metrics, logger)
		if err != nil {
			return fmt.Errorf("failed to create WordPress client: %w", err)
		}
		defer wpClient.Close()

		g.Go(func() error {
			probeWordPress(ctx, wpClient, monitor, metrics)
			return nil
		})
	}

	slog.Info("SemSchema running",
		"api_addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"metrics_enabled", cfg.Metrics.Enabled,
		"wordpress_enabled", cfg.WordPress.Enabled)

	err := g.Wait()
	slog.Info("SemSchema stopped")
	return err
}

// probeWordPress periodically checks CMS reachability and feeds the health
// monitor and metrics until the context is cancelled.
func probeWordPress(ctx context.Context, client *wordpress.Client, monitor *health.Monitor, metrics *metric.Metrics) {
	probe := func() {
		status := client.Health(ctx)
		monitor.Update("wordpress", status)
		metrics.RecordHealthStatus("wordpress", status.Healthy)
	}

	probe()
	ticker := time.NewTicker(wordpressProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}

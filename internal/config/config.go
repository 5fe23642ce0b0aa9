// Package config provides configuration loading using koanf.
// Precedence: environment variables over compiled defaults.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/quartzless/softrtc/internal/domain"
)

// Config holds all service configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	// Logging configuration
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	Server ServerConfig `koanf:"server"`
	Clock  ClockConfig  `koanf:"clock"`
	API    APIConfig    `koanf:"api"`
	OTEL   OTELConfig   `koanf:"otel"`
}

// ServerConfig holds listener configuration.
type ServerConfig struct {
	HTTPPort int `koanf:"http_port"`
	GRPCPort int `koanf:"grpc_port"`
}

// ClockConfig holds clock engine configuration.
type ClockConfig struct {
	// StartYear is the reference year a freshly booted device reports.
	StartYear int `koanf:"start_year"`
	// PollInterval paces the change-detection loop and the tick stream.
	PollInterval time.Duration `koanf:"poll_interval"`
}

// APIConfig holds control-surface auth configuration. An empty secret
// disables authentication; mutating endpoints are then open, which is
// acceptable only on a trusted local interface.
type APIConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
	Issuer    string `koanf:"issuer"`
	Audience  string `koanf:"audience"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint string `koanf:"endpoint"` // Empty disables OTLP export
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		LogLevel:    "info",
		LogFormat:   "json",

		Server: ServerConfig{
			HTTPPort: 8080,
			GRPCPort: 9090,
		},
		Clock: ClockConfig{
			StartYear:    domain.DefaultStartYear,
			PollInterval: domain.DefaultPollInterval,
		},
		API: APIConfig{
			Issuer:   "softrtc",
			Audience: "softrtc-api",
		},
	}
}

// Load loads configuration: environment variables over compiled
// defaults. Required keys missing cause startup failure; optional keys
// fall back to defaults.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	// Load environment variables. Delimiter: _ maps to . for nested
	// config, so SERVER_HTTP_PORT sets server.http_port.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateRequired checks that required configuration is present.
func validateRequired(cfg *Config) error {
	if cfg.Clock.StartYear < domain.EpochYearFloor {
		return fmt.Errorf("%w: clock.start_year must be >= %d", domain.ErrConfigRequired, domain.EpochYearFloor)
	}
	if cfg.Clock.PollInterval <= 0 {
		return fmt.Errorf("%w: clock.poll_interval must be positive", domain.ErrConfigRequired)
	}

	// In production the control surface must not accept unauthenticated
	// mutations.
	if cfg.IsProd() && cfg.API.JWTSecret == "" {
		return fmt.Errorf("%w: api.jwt_secret", domain.ErrConfigRequired)
	}

	return nil
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

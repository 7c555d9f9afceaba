package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Dependencies the /status endpoint knows how to probe.
const (
	CheckDatabase = "database"
	CheckRedis    = "redis"
)

// ObservabilityConfig covers logging, New Relic and the /status endpoint.
// LoadConfig fills it with DefaultObservabilityConfig when the block is
// missing and always stamps ServiceName and Environment.
type ObservabilityConfig struct {
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment mirrors Primary.Env and labels every log line and trace.
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic" validate:"required"`
	HealthChecks HealthChecksConfig `koanf:"health_checks" validate:"required"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Empty picks a level from
	// the environment.
	Level string `koanf:"level"`

	// Format is "json" or "console". Production always logs JSON.
	Format string `koanf:"format" validate:"required"`

	// SlowCommandThreshold marks MongoDB commands that took longer as slow
	// (logged at warn). Zero disables slow command logging.
	SlowCommandThreshold time.Duration `koanf:"slow_command_threshold"`
}

// NewRelicConfig holds the APM settings. Without a LicenseKey the agent is
// never started and every integration degrades into a no-op.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// Enabled reports whether a license key is configured.
func (c NewRelicConfig) Enabled() bool {
	return c.LicenseKey != ""
}

// HealthChecksConfig controls which dependencies /status probes.
type HealthChecksConfig struct {
	// Timeout bounds a single dependency ping.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks names the probed dependencies (CheckDatabase, CheckRedis).
	// A dependency that is not listed is never pinged.
	Checks []string `koanf:"checks"`
}

// Wants reports whether the named dependency should be probed.
func (c HealthChecksConfig) Wants(name string) bool {
	return slices.Contains(c.Checks, name)
}

func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:                "info",
			Format:               "json",
			SlowCommandThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
		},
		HealthChecks: HealthChecksConfig{
			Timeout: 5 * time.Second,
			Checks:  []string{CheckDatabase, CheckRedis},
		},
	}
}

// Validate applies rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	if c.Logging.Level != "" {
		level, err := zerolog.ParseLevel(c.Logging.Level)
		if err != nil || level < zerolog.DebugLevel || level > zerolog.ErrorLevel {
			return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
		}
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Logging.Format)
	}

	if c.Logging.SlowCommandThreshold < 0 {
		return fmt.Errorf("logging slow_command_threshold must be non-negative")
	}

	for _, check := range c.HealthChecks.Checks {
		if check != CheckDatabase && check != CheckRedis {
			return fmt.Errorf("unknown health check: %s", check)
		}
	}

	return nil
}

// GetLogLevel returns the configured level, or "info" in production and
// "debug" elsewhere when none is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.IsProduction() {
		return "info"
	}
	return "debug"
}

func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the PLACES_ prefix. After the prefix is removed
	the key is lowercased and every double underscore becomes a "." so that
	nested struct fields can be addressed while single underscores stay part
	of the field name:

	  PLACES_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
	  PLACES_DATABASE__URI        -> database.uri        -> Config.Database.URI
*/

const (
	// EnvPrefix is the prefix every configuration variable must carry.
	EnvPrefix = "PLACES_"

	// ServiceName identifies this service in logs, traces and APM dashboards.
	ServiceName = "placeshare"

	// DriverMongo selects the MongoDB document store.
	DriverMongo = "mongo"

	// DriverMemory selects the in-process store used for local runs and tests.
	DriverMemory = "memory"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Geocoding     GeocodingConfig      `koanf:"geocoding"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// AuthRateLimit is the sustained number of signup/login requests per
	// second allowed from a single IP; AuthRateBurst is the burst size.
	AuthRateLimit float64 `koanf:"auth_rate_limit" validate:"gt=0"`
	AuthRateBurst int     `koanf:"auth_rate_burst" validate:"gt=0"`
}

// DatabaseConfig contains the document store connection parameters.
type DatabaseConfig struct {
	Driver      string `koanf:"driver" validate:"required,oneof=mongo memory"`
	URI         string `koanf:"uri" validate:"required_if=Driver mongo"`
	Name        string `koanf:"name" validate:"required"`
	Timeout     int    `koanf:"timeout" validate:"required"`
	MaxPoolSize int    `koanf:"max_pool_size" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`

	// JobConcurrency is the number of background workers.
	JobConcurrency int `koanf:"job_concurrency" validate:"gte=0"`
}

// GeocodingConfig configures the address lookup used when places are created.
//
// An empty APIKey selects the static geocoder, which always answers with the
// same coordinates.
type GeocodingConfig struct {
	APIKey   string        `koanf:"api_key"`
	BaseURL  string        `koanf:"base_url" validate:"required,url"`
	Timeout  time.Duration `koanf:"timeout" validate:"min=1s"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// IntegrationConfig stores credentials of third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from" validate:"required"`
}

// defaults are loaded before the environment so every env var overrides them.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "5000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.auth_rate_limit":      5.0,
		"server.auth_rate_burst":      10,
		"database.driver":             DriverMongo,
		"database.name":               "placeshare",
		"database.timeout":            10,
		"database.max_pool_size":      50,
		"redis.address":               "localhost:6379",
		"redis.job_concurrency":       10,
		"geocoding.base_url":          "https://maps.googleapis.com/maps/api/geocode/json",
		"geocoding.timeout":           "5s",
		"geocoding.cache_ttl":         "24h",
		"integration.email_from":      "Places <onboarding@resend.dev>",

		"observability.service_name":                          ServiceName,
		"observability.environment":                           "development",
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_command_threshold":        "100ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.new_relic.debug_logging":               false,
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{CheckDatabase, CheckRedis},
	}
}

// listKeys are the keys whose env value is a comma separated list.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envKey maps an environment variable name to a koanf key.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue maps an environment variable to its koanf key and value. List
// keys are split on "," with blanks around each item dropped.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the result.
//
// Behavior summary:
//   - Loads defaults, then env vars with prefix PLACES_
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Sets default observability if missing
//   - Overrides observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are always derived, never configured.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

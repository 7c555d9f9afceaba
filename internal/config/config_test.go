package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("PLACES_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("PLACES_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
	assert.Equal(t, "primary.env", envKey("PLACES_PRIMARY__ENV"))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PLACES_DATABASE__URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "placeshare", cfg.Database.Name)
	assert.Equal(t, 5*time.Second, cfg.Geocoding.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Geocoding.CacheTTL)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowCommandThreshold)
	assert.False(t, cfg.Observability.NewRelic.Enabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PLACES_PRIMARY__ENV", "production")
	t.Setenv("PLACES_SERVER__PORT", "8080")
	t.Setenv("PLACES_SERVER__CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://places.example.com")
	t.Setenv("PLACES_DATABASE__DRIVER", DriverMemory)
	t.Setenv("PLACES_GEOCODING__API_KEY", "secret")
	t.Setenv("PLACES_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://places.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "secret", cfg.Geocoding.APIKey)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigRequiresMongoURI(t *testing.T) {
	t.Setenv("PLACES_DATABASE__DRIVER", DriverMongo)
	t.Setenv("PLACES_DATABASE__URI", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("PLACES_DATABASE__DRIVER", "postgres")
	t.Setenv("PLACES_DATABASE__URI", "postgres://localhost")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowCommandThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevelFallsBackByEnvironment(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}

func TestHealthChecksSelection(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthChecks.Wants(CheckDatabase))
	assert.True(t, cfg.HealthChecks.Wants(CheckRedis))

	cfg.HealthChecks.Checks = []string{CheckDatabase}
	assert.False(t, cfg.HealthChecks.Wants(CheckRedis))

	cfg.HealthChecks.Checks = []string{"postgres"}
	assert.Error(t, cfg.Validate())
}

func TestEnvValueSplitsLists(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		key   string
		want  interface{}
	}{
		{"cors origins", "PLACES_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test, https://b.test,", "server.cors_allowed_origins", []string{"http://a.test", "https://b.test"}},
		{"health checks", "PLACES_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database", "observability.health_checks.checks", []string{"database"}},
		{"scalar kept whole", "PLACES_INTEGRATION__EMAIL_FROM", "Places, Inc <a@b.test>", "integration.email_from", "Places, Inc <a@b.test>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value := envValue(tt.env, tt.value)

			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestLoadConfigHealthChecksFromEnv(t *testing.T) {
	t.Setenv("PLACES_DATABASE__DRIVER", DriverMemory)
	t.Setenv("PLACES_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "redis")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{CheckRedis}, cfg.Observability.HealthChecks.Checks)
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/placeshare/internal/config"
	"github.com/deppfellow/placeshare/internal/middleware"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes an endpoint that load balancers and uptime monitors
// use to verify the service is alive and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// healthCheck pings one dependency.
type healthCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// checks lists the connected dependencies selected in the health check
// config. The database is required; Redis only backs optional features and
// never makes the service unhealthy.
func (h *HealthHandler) checks() []healthCheck {
	var checks []healthCheck

	selected := config.DefaultObservabilityConfig().HealthChecks
	if obs := h.server.Config.Observability; obs != nil {
		selected = obs.HealthChecks
	}

	if db := h.server.DB; db != nil && selected.Wants(config.CheckDatabase) {
		checks = append(checks, healthCheck{name: config.CheckDatabase, required: true, ping: db.Ping})
	}

	if rdb := h.server.Redis; rdb != nil && selected.Wants(config.CheckRedis) {
		checks = append(checks, healthCheck{name: config.CheckRedis, ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	return checks
}

func (h *HealthHandler) recordHealthError(attributes map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		attributes["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", attributes)
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns 200 OK if every required check passes, 503 Service
// Unavailable otherwise. With the memory driver and no Redis there is
// nothing to check and the service reports healthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	timeout := 5 * time.Second
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}

	for _, check := range h.checks() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()

		elapsed := time.Since(checkStart)

		if err != nil {
			checks[check.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			if check.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthError(map[string]interface{}{
				"check_type":       check.name,
				"error_type":       check.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[check.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthError(map[string]interface{}{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthError(map[string]interface{}{
			"check_type":    "response",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

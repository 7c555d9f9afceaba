package router

import (
	"github.com/deppfellow/placeshare/internal/handler"
	"github.com/deppfellow/placeshare/internal/middleware"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API:
// health, Prometheus metrics, docs and the static assets behind them, plus
// email previews outside production.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", mw.Metrics.Handler())

	r.Static("/static", "static")
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if obs := s.Config.Observability; obs == nil || !obs.IsProduction() {
		r.GET("/emails/:template/preview", h.Email.Preview)
	}
}

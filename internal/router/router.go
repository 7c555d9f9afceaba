// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/deppfellow/placeshare/internal/handler"
	"github.com/deppfellow/placeshare/internal/middleware"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain, the
// error handler and every route.
//
// Middleware order matters:
//  1. RequestID first, so everything after it can correlate
//  2. New Relic transaction, then custom attributes on it
//  3. ContextEnhancer, which reads both to build the request logger
//  4. metrics, CORS, secure headers, the request log line, panic recovery
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Collect(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, s, h, mw)
	registerAPIRoutes(router, h, mw)

	return router
}

// registerAPIRoutes mounts the place and user endpoints under /api.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	api := r.Group("/api")

	places := api.Group("/places")
	places.GET("/user/:uid", handler.Handle(h.Places.GetPlacesByUserID, http.StatusOK))
	places.GET("/:pid", handler.Handle(h.Places.GetPlaceByID, http.StatusOK))
	places.POST("", handler.Handle(h.Places.CreatePlace, http.StatusCreated))
	places.PATCH("/:pid", handler.Handle(h.Places.UpdatePlace, http.StatusOK))
	places.DELETE("/:pid", handler.Handle(h.Places.DeletePlace, http.StatusOK))

	users := api.Group("/users")
	users.GET("", handler.Handle(h.Users.GetUsers, http.StatusOK))
	users.POST("/signup", handler.Handle(h.Users.Signup, http.StatusCreated), mw.RateLimit.AuthLimiter())
	users.POST("/login", handler.Handle(h.Users.Login, http.StatusOK), mw.RateLimit.AuthLimiter())
}

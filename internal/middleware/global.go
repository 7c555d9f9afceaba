package middleware

import (
	"net/http"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/deppfellow/placeshare/internal/storeerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware installed on every route plus the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows the configured origins. The browser client sends JSON bodies
// and needs the request id header back.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"X-Requested-With",
			RequestIDHeader,
		},
		ExposeHeaders: []string{RequestIDHeader},
	})
}

// RequestLogger writes one "API" line per request with the request-scoped
// logger. The level follows the final status: 5xx error, 4xx warn, else info.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not run yet when this is called, so the
			// status is taken from the error itself.
			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &httpErr) {
					statusCode = httpErr.Status
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				} else {
					statusCode = http.StatusInternalServerError
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code     string            `json:"code"`
	Kind     errs.Kind         `json:"kind"`
	Message  string            `json:"message"`
	Status   int               `json:"status"`
	Override bool              `json:"override"`
	Errors   []errs.FieldError `json:"errors"`
	Action   *errs.Action      `json:"action"`
}

// normalizeError turns any error into an *errs.HTTPError.
//
//   - *errs.HTTPError: unchanged
//   - echo 404 (unknown route): "Route not found"
//   - other echo errors: same status, echo's message
//   - anything else: mapped by storeerr (store errors or a bare 500)
func normalizeError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}

		kind := errs.KindBadRequest
		switch {
		case echoErr.Code >= 500:
			kind = errs.KindInternal
		case echoErr.Code == http.StatusMethodNotAllowed:
			kind = errs.KindNotFound
		case echoErr.Code == http.StatusTooManyRequests:
			kind = errs.KindRateLimited
		}

		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Kind:    kind,
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(storeerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError("")
}

// classify resolves how an error is reported, switching on its kind:
//   - validation, bad_request, not_found: client mistakes, logged at info
//   - unauthorized, forbidden, rate_limited: refused callers, logged at warn
//   - upstream: warn when the collaborator blamed the input, otherwise error
//   - internal: error with stack
//
// An error without a status gets the default status of its kind. An
// unknown kind is reported as a generic internal error.
func classify(logger *zerolog.Logger, httpErr *errs.HTTPError) (*errs.HTTPError, *zerolog.Event) {
	resolved := *httpErr
	if resolved.Status == 0 {
		resolved.Status = errs.DefaultStatus(resolved.Kind)
	}

	switch resolved.Kind {
	case errs.KindValidation, errs.KindBadRequest, errs.KindNotFound:
		return &resolved, logger.Info()
	case errs.KindUnauthorized, errs.KindForbidden, errs.KindRateLimited:
		return &resolved, logger.Warn()
	case errs.KindUpstream:
		if resolved.Status < http.StatusInternalServerError {
			return &resolved, logger.Warn()
		}
		return &resolved, logger.Error().Stack()
	case errs.KindInternal:
		return &resolved, logger.Error().Stack()
	default:
		return errs.NewInternalServerError(""), logger.Error().Stack()
	}
}

// GlobalErrorHandler is the single place where errors become responses.
//
// The underlying error is logged; the client only gets the normalized
// fields, so causes of internal errors never leave the process.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr, event := classify(GetLogger(c), normalizeError(err))

	event.
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Str("error_kind", string(httpErr.Kind)).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	body := ErrorResponse{
		Code:     httpErr.Code,
		Kind:     httpErr.Kind,
		Message:  httpErr.Message,
		Status:   httpErr.Status,
		Override: httpErr.Override,
		Errors:   httpErr.Errors,
		Action:   httpErr.Action,
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, body)
}

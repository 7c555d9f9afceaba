package handler

import (
	"time"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/middleware"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/deppfellow/placeshare/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the dependencies shared by every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// RequestPtr constrains Req to *T implementing validation.Validatable, so
// Handle can allocate a fresh T for every request.
type RequestPtr[T any] interface {
	*T
	validation.Validatable
}

// transaction wraps the New Relic transaction of a request. Every method is
// a no-op when New Relic is disabled.
type transaction struct {
	txn *newrelic.Transaction
}

func (t transaction) attr(key string, value interface{}) {
	if t.txn != nil {
		t.txn.AddAttribute(key, value)
	}
}

// Handle adapts a typed handler to echo. For every request it binds and
// validates a new Req, calls handler and writes the result as JSON with
// status. Errors are returned untouched; the tracing middleware reports
// them to New Relic and the global error handler writes the response.
//
//	places.POST("", handler.Handle(h.Places.CreatePlace, http.StatusCreated))
func Handle[T any, Req RequestPtr[T], Res any](
	handler func(c echo.Context, req Req) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		route := c.Path()
		txn := transaction{txn: newrelic.FromContext(c.Request().Context())}
		txn.attr("handler.name", route)

		logger := middleware.GetLogger(c).With().Str("route", route).Logger()

		var req Req = new(T)
		if err := validation.BindAndValidate(c, req); err != nil {
			elapsed := time.Since(start)
			txn.attr("validation.status", "failed")
			txn.attr("validation.duration_ms", elapsed.Milliseconds())
			logger.Warn().Err(err).Dur("validation_duration", elapsed).Msg("request validation failed")
			return err
		}
		validated := time.Now()
		txn.attr("validation.status", "success")
		txn.attr("validation.duration_ms", validated.Sub(start).Milliseconds())

		res, err := handler(c, req)
		handlerDuration := time.Since(validated)
		txn.attr("handler.duration_ms", handlerDuration.Milliseconds())
		txn.attr("total.duration_ms", time.Since(start).Milliseconds())

		if err != nil {
			txn.attr("handler.status", "error")
			logger.Debug().
				Err(err).
				Str("error_kind", string(errs.KindOf(err))).
				Dur("handler_duration", handlerDuration).
				Msg("handler returned an error")
			return err
		}

		txn.attr("handler.status", "success")
		txn.attr("response.status", status)
		logger.Debug().Dur("handler_duration", handlerDuration).Dur("total_duration", time.Since(start)).Msg("request handled")

		return c.JSON(status, res)
	}
}

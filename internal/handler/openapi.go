package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/lib/email"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API documentation UI.
//
// The UI is static/openapi.html, which loads its JS from a CDN and reads
// static/openapi.json.
type OpenAPIHandler struct {
	Handler
	uiPath string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		uiPath:  "static/openapi.html",
	}
}

// ServeOpenAPIUI serves the docs page with caching disabled, so edits to the
// docs show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(h.uiPath)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// EmailPreviewHandler renders email templates with sample data. The router
// only mounts it outside production.
type EmailPreviewHandler struct {
	Handler
	client *email.Client
}

func NewEmailPreviewHandler(s *server.Server) *EmailPreviewHandler {
	return &EmailPreviewHandler{
		Handler: NewHandler(s),
		client:  email.NewClient(s.Config, s.Logger),
	}
}

func (h *EmailPreviewHandler) Preview(c echo.Context) error {
	body, ok, err := h.client.Preview(email.Template(c.Param("template")))
	if err != nil {
		return fmt.Errorf("failed to render email preview: %w", err)
	}
	if !ok {
		return errs.NewNotFoundError("Template not found", false, nil)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTML(http.StatusOK, body)
}

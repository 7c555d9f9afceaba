// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the..
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core..
// business logic.
package handler

import (
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/deppfellow/placeshare/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Places  *PlaceHandler
	Users   *UserHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Email   *EmailPreviewHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Places:  NewPlaceHandler(s, services.Places),
		Users:   NewUserHandler(s, services.Users),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Email:   NewEmailPreviewHandler(s),
	}
}

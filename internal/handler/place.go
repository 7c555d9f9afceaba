package handler

import (
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/deppfellow/placeshare/internal/server"
	"github.com/deppfellow/placeshare/internal/service"
	"github.com/deppfellow/placeshare/internal/validation"
	"github.com/labstack/echo/v4"
)

type PlaceIDRequest struct {
	PID string `param:"pid" json:"-" validate:"required"`
}

func (r *PlaceIDRequest) Validate() error {
	return validation.Struct(r)
}

type UserPlacesRequest struct {
	UID string `param:"uid" json:"-" validate:"required"`
}

func (r *UserPlacesRequest) Validate() error {
	return validation.Struct(r)
}

type CreatePlaceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
	Address     string `json:"address" validate:"required"`
	Creator     string `json:"creator" validate:"required,mongodb"`
}

func (r *CreatePlaceRequest) Validate() error {
	return validation.Struct(r)
}

type UpdatePlaceRequest struct {
	PID         string `param:"pid" json:"-" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

func (r *UpdatePlaceRequest) Validate() error {
	return validation.Struct(r)
}

// PlaceResponse wraps a single normalized place.
type PlaceResponse struct {
	Place model.PlaceView `json:"place"`
}

// CreatedPlaceResponse wraps a newly created place as stored, without the
// plain-text id.
type CreatedPlaceResponse struct {
	Place *model.Place `json:"place"`
}

type PlacesResponse struct {
	Places []model.PlaceView `json:"places"`
}

type DeletePlaceResponse struct {
	Message string          `json:"message"`
	Place   model.PlaceView `json:"place"`
}

// PlaceHandler serves /api/places.
type PlaceHandler struct {
	Handler
	places *service.PlaceService
}

func NewPlaceHandler(s *server.Server, places *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{
		Handler: NewHandler(s),
		places:  places,
	}
}

func (h *PlaceHandler) GetPlaceByID(c echo.Context, req *PlaceIDRequest) (*PlaceResponse, error) {
	place, err := h.places.GetPlaceByID(c.Request().Context(), req.PID)
	if err != nil {
		return nil, err
	}
	return &PlaceResponse{Place: place.Normalize()}, nil
}

func (h *PlaceHandler) GetPlacesByUserID(c echo.Context, req *UserPlacesRequest) (*PlacesResponse, error) {
	places, err := h.places.GetPlacesByUserID(c.Request().Context(), req.UID)
	if err != nil {
		return nil, err
	}
	return &PlacesResponse{Places: model.NormalizePlaces(places)}, nil
}

func (h *PlaceHandler) CreatePlace(c echo.Context, req *CreatePlaceRequest) (*CreatedPlaceResponse, error) {
	place, err := h.places.CreatePlace(c.Request().Context(), service.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Creator:     req.Creator,
	})
	if err != nil {
		return nil, err
	}
	return &CreatedPlaceResponse{Place: place}, nil
}

func (h *PlaceHandler) UpdatePlace(c echo.Context, req *UpdatePlaceRequest) (*PlaceResponse, error) {
	place, err := h.places.UpdatePlace(c.Request().Context(), req.PID, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	return &PlaceResponse{Place: place.Normalize()}, nil
}

func (h *PlaceHandler) DeletePlace(c echo.Context, req *PlaceIDRequest) (*DeletePlaceResponse, error) {
	place, err := h.places.DeletePlace(c.Request().Context(), req.PID)
	if err != nil {
		return nil, err
	}
	return &DeletePlaceResponse{Message: service.MsgDeletePlaceComplete, Place: place.Normalize()}, nil
}

package service

import (
	"context"
	"errors"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/geocode"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/deppfellow/placeshare/internal/repository"
	"github.com/rs/zerolog"
)

// Client-facing messages of the place operations.
const (
	MsgPlaceNotFound       = "Could not find places for the provided id."
	MsgPlaceLookupFailed   = "Something went wrong, could not find a place."
	MsgUserPlacesNotFound  = "Could not find a place for the provided id."
	MsgUserPlacesFailed    = "Fetching places failed, please try again later."
	MsgCreatePlaceFailed   = "Creating place failed, please try again."
	MsgUpdatePlaceFailed   = "Could not update the place"
	MsgDeletePlaceFailed   = "Could not delete the place"
	MsgDeletePlaceComplete = "Deleted place."
)

// CreatePlaceInput holds the validated fields of a new place.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	Creator     string
}

type PlaceService struct {
	places   repository.PlaceStore
	geocoder geocode.Geocoder
}

func NewPlaceService(places repository.PlaceStore, geocoder geocode.Geocoder) *PlaceService {
	return &PlaceService{places: places, geocoder: geocoder}
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.places.FindByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, errs.NewNotFoundError(MsgPlaceNotFound, true, nil)
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("place_id", id).Msg("failed to load place")
		return nil, errs.NewInternalServerError(MsgPlaceLookupFailed)
	}
	return place, nil
}

// GetPlacesByUserID returns the places created by userID. A user without
// places is reported as not found.
func (s *PlaceService) GetPlacesByUserID(ctx context.Context, userID string) ([]model.Place, error) {
	places, err := s.places.FindByCreator(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to load places of user")
		return nil, errs.NewInternalServerError(MsgUserPlacesFailed)
	}
	if len(places) == 0 {
		return nil, errs.NewNotFoundError(MsgUserPlacesNotFound, true, nil)
	}
	return places, nil
}

// CreatePlace geocodes the address and stores the place with the
// placeholder image. Geocoder errors are returned unchanged.
func (s *PlaceService) CreatePlace(ctx context.Context, input CreatePlaceInput) (*model.Place, error) {
	logger := zerolog.Ctx(ctx)

	creator, err := repository.ParseID(input.Creator)
	if err != nil {
		return nil, errs.NewValidationError(errs.InvalidInputMessage, []errs.FieldError{
			{Field: "creator", Error: "must be a valid id"},
		})
	}

	location, err := s.geocoder.Coordinates(ctx, input.Address)
	if err != nil {
		logger.Warn().Err(err).Str("address", input.Address).Msg("geocoding failed")
		return nil, err
	}

	place, err := s.places.Create(ctx, &model.Place{
		Title:       input.Title,
		Description: input.Description,
		Image:       model.PlaceholderPlaceImage,
		Address:     input.Address,
		Location:    location,
		Creator:     creator,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to store place")
		return nil, errs.NewInternalServerError(MsgCreatePlaceFailed)
	}

	logger.Info().Str("place_id", place.ID.Hex()).Str("creator", creator.Hex()).Msg("place created")
	return place, nil
}

// UpdatePlace changes title and description only and returns the place as
// stored after the update.
func (s *PlaceService) UpdatePlace(ctx context.Context, id, title, description string) (*model.Place, error) {
	place, err := s.places.UpdateByID(ctx, id, title, description)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, errs.NewNotFoundError(MsgPlaceNotFound, true, nil)
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("place_id", id).Msg("failed to update place")
		return nil, errs.NewInternalServerError(MsgUpdatePlaceFailed)
	}
	return place, nil
}

// DeletePlace removes the place and returns it. The creator's place list is
// left untouched.
func (s *PlaceService) DeletePlace(ctx context.Context, id string) (*model.Place, error) {
	place, err := s.places.DeleteByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, errs.NewNotFoundError(MsgPlaceNotFound, true, nil)
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("place_id", id).Msg("failed to delete place")
		return nil, errs.NewInternalServerError(MsgDeletePlaceFailed)
	}

	zerolog.Ctx(ctx).Info().Str("place_id", id).Msg("place deleted")
	return place, nil
}

// Package geocode resolves postal addresses into coordinates.
//
// Three implementations are provided:
//   - Google: the Google Maps Geocoding API
//   - Static: fixed coordinates, used when no API key is configured
//   - Cached: a Redis-backed cache in front of another Geocoder
package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/placeshare/internal/config"
	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NotFoundMessage is returned when an address has no known location.
const NotFoundMessage = "Could not find location for the specified address."

// UnavailableMessage is returned when the lookup itself failed.
const UnavailableMessage = "Could not determine the location, please try again later."

// Geocoder turns an address into a location.
//
// Errors are *errs.HTTPError values of kind upstream, carrying the status
// the caller should answer with.
type Geocoder interface {
	Coordinates(ctx context.Context, address string) (model.Location, error)
}

// ErrLocationNotFound is the error for addresses without results.
func ErrLocationNotFound() *errs.HTTPError {
	return errs.NewUpstreamError(http.StatusUnprocessableEntity, NotFoundMessage)
}

// New builds the geocoder described by cfg. A nil rdb disables caching.
func New(cfg config.GeocodingConfig, rdb *redis.Client, logger *zerolog.Logger) Geocoder {
	var geocoder Geocoder = NewStatic()
	if cfg.APIKey != "" {
		// The New Relic round tripper records the lookup as an external
		// segment of the request transaction, when there is one.
		client := &http.Client{Timeout: cfg.Timeout, Transport: newrelic.NewRoundTripper(nil)}
		geocoder = NewGoogle(cfg.BaseURL, cfg.APIKey, client)
	}

	if rdb != nil && cfg.CacheTTL > 0 {
		geocoder = NewCached(geocoder, NewRedisCache(rdb), cfg.CacheTTL, logger)
	}

	return geocoder
}

// defaultTimeout bounds requests made with a client without a timeout.
const defaultTimeout = 5 * time.Second

package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/rs/zerolog"
)

// Google geocoding API statuses.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location model.Location `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func unavailable() error {
	return errs.NewUpstreamError(http.StatusInternalServerError, UnavailableMessage)
}

// Google queries the Google Maps Geocoding API.
type Google struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewGoogle(baseURL, apiKey string, client *http.Client) *Google {
	if client == nil {
		client = &http.Client{}
	}
	if client.Timeout == 0 {
		client.Timeout = defaultTimeout
	}
	return &Google{baseURL: baseURL, apiKey: apiKey, client: client}
}

// Coordinates returns the location of the first result for address.
//
// No results yield a 422 upstream error. Transport failures and any other
// API status yield a 500 upstream error; the cause is only logged.
func (g *Google) Coordinates(ctx context.Context, address string) (model.Location, error) {
	logger := zerolog.Ctx(ctx)

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build geocoding request")
		return model.Location{}, unavailable()
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("geocoding request failed")
		return model.Location{}, unavailable()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Msg("geocoding API answered with an error status")
		return model.Location{}, unavailable()
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Error().Err(err).Msg("failed to decode geocoding response")
		return model.Location{}, unavailable()
	}

	switch {
	case body.Status == statusZeroResults, body.Status == statusOK && len(body.Results) == 0:
		return model.Location{}, ErrLocationNotFound()
	case body.Status != statusOK:
		logger.Error().
			Str("status", body.Status).
			Str("error_message", body.ErrorMessage).
			Msg("geocoding API rejected address lookup")
		return model.Location{}, unavailable()
	}

	return body.Results[0].Geometry.Location, nil
}

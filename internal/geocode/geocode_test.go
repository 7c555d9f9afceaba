package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/placeshare/internal/config"
	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUpstream(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.KindUpstream, httpErr.Kind)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func googleServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()

	var received http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &received
}

func TestGoogleCoordinates(t *testing.T) {
	server, received := googleServer(t, http.StatusOK, `{
		"status": "OK",
		"results": [{"geometry": {"location": {"lat": 48.8583701, "lng": 2.2944813}}}]
	}`)

	location, err := NewGoogle(server.URL, "key-1", nil).Coordinates(context.Background(), "Champ de Mars, Paris")

	require.NoError(t, err)
	assert.Equal(t, model.Location{Lat: 48.8583701, Lng: 2.2944813}, location)
	assert.Equal(t, "Champ de Mars, Paris", received.URL.Query().Get("address"))
	assert.Equal(t, "key-1", received.URL.Query().Get("key"))
}

func TestGoogleZeroResults(t *testing.T) {
	server, _ := googleServer(t, http.StatusOK, `{"status": "ZERO_RESULTS", "results": []}`)

	_, err := NewGoogle(server.URL, "key", nil).Coordinates(context.Background(), "nowhere")

	requireUpstream(t, err, http.StatusUnprocessableEntity, NotFoundMessage)
}

func TestGoogleFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "denied", status: http.StatusOK, body: `{"status": "REQUEST_DENIED", "error_message": "bad key"}`},
		{name: "http error", status: http.StatusBadGateway, body: `oops`},
		{name: "malformed body", status: http.StatusOK, body: `{"status":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := googleServer(t, tt.status, tt.body)

			_, err := NewGoogle(server.URL, "key", nil).Coordinates(context.Background(), "1 Main St")

			requireUpstream(t, err, http.StatusInternalServerError, UnavailableMessage)
		})
	}
}

func TestGoogleUnreachable(t *testing.T) {
	server, _ := googleServer(t, http.StatusOK, `{}`)
	server.Close()

	_, err := NewGoogle(server.URL, "key", nil).Coordinates(context.Background(), "1 Main St")

	requireUpstream(t, err, http.StatusInternalServerError, UnavailableMessage)
}

func TestStatic(t *testing.T) {
	location, err := NewStatic().Coordinates(context.Background(), "anything")

	require.NoError(t, err)
	assert.Equal(t, model.Location{Lat: 40.7484474, Lng: -73.9871516}, location)
}

type countingGeocoder struct {
	calls    int
	location model.Location
	err      error
}

func (g *countingGeocoder) Coordinates(context.Context, string) (model.Location, error) {
	g.calls++
	return g.location, g.err
}

type mapCache struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failing bool
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return "", errors.New("connection refused")
	}
	value, ok := c.values[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return value, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("connection refused")
	}
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func TestCachedServesRepeatedLookups(t *testing.T) {
	logger := zerolog.Nop()
	next := &countingGeocoder{location: model.Location{Lat: 1, Lng: 2}}
	cache := newMapCache()
	cached := NewCached(next, cache, time.Hour, &logger)

	for _, address := range []string{"1 Main St", " 1  main st "} {
		location, err := cached.Coordinates(context.Background(), address)
		require.NoError(t, err)
		assert.Equal(t, model.Location{Lat: 1, Lng: 2}, location)
	}

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, cache.ttls["geocode:1 main st"])
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	logger := zerolog.Nop()
	next := &countingGeocoder{err: ErrLocationNotFound()}
	cache := newMapCache()
	cached := NewCached(next, cache, time.Hour, &logger)

	_, err := cached.Coordinates(context.Background(), "nowhere")
	requireUpstream(t, err, http.StatusUnprocessableEntity, NotFoundMessage)

	assert.Empty(t, cache.values)
}

func TestCachedFallsThroughOnCacheFailure(t *testing.T) {
	logger := zerolog.Nop()
	next := &countingGeocoder{location: model.Location{Lat: 3, Lng: 4}}
	cache := newMapCache()
	cache.failing = true

	location, err := NewCached(next, cache, time.Hour, &logger).Coordinates(context.Background(), "1 Main St")

	require.NoError(t, err)
	assert.Equal(t, model.Location{Lat: 3, Lng: 4}, location)
	assert.Equal(t, 1, next.calls)
}

func TestNewSelectsImplementation(t *testing.T) {
	logger := zerolog.Nop()

	assert.IsType(t, &Static{}, New(config.GeocodingConfig{CacheTTL: time.Hour}, nil, &logger))
	assert.IsType(t, &Google{}, New(config.GeocodingConfig{APIKey: "k", BaseURL: "http://example.com", Timeout: time.Second}, nil, &logger))
}

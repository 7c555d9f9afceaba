package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaceNormalizeExposesPlainID(t *testing.T) {
	place := Place{
		ID:          primitive.NewObjectID(),
		Title:       "Cafe",
		Description: "Coffee",
		Image:       PlaceholderPlaceImage,
		Address:     "1 Main St",
		Location:    Location{Lat: 40.7484474, Lng: -73.9871516},
		Creator:     primitive.NewObjectID(),
	}

	raw, err := json.Marshal(place.Normalize())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, place.ID.Hex(), decoded["id"])
	assert.Equal(t, place.ID.Hex(), decoded["_id"])
	assert.Equal(t, place.Creator.Hex(), decoded["creator"])
	assert.Equal(t, map[string]interface{}{"lat": 40.7484474, "lng": -73.9871516}, decoded["location"])
}

func TestRawPlaceHasNoPlainID(t *testing.T) {
	raw, err := json.Marshal(Place{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "_id")
	assert.NotContains(t, decoded, "id")
}

func TestUserJSONNeverContainsPassword(t *testing.T) {
	user := User{
		ID:       primitive.NewObjectID(),
		Name:     "Max",
		Email:    "max@example.com",
		Password: "$2a$10$hash",
	}

	raw, err := json.Marshal(user.Normalize())
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$10$hash")
	assert.Contains(t, string(raw), `"places":[]`)
	assert.Contains(t, string(raw), `"id":"`+user.ID.Hex()+`"`)
}

func TestNormalizeListsKeepOrder(t *testing.T) {
	a, b := Place{ID: primitive.NewObjectID()}, Place{ID: primitive.NewObjectID()}

	views := NormalizePlaces([]Place{a, b})
	require.Len(t, views, 2)
	assert.Equal(t, a.ID.Hex(), views[0].ID)
	assert.Equal(t, b.ID.Hex(), views[1].ID)

	assert.Empty(t, NormalizeUsers(nil))
	assert.NotNil(t, NormalizeUsers(nil))
}

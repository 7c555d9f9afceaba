package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlaceholderPlaceImage is the image every new place starts with.
const PlaceholderPlaceImage = "https://marvel-b1-cdn.bc0a.com/f00000000179470/www.esbnyc.com/sites/default/files/styles/small_feature/public/2019-10/home_banner-min.jpg?itok=uZt-03Vw"

// Location is a geographical point. Lat and Lng are always set together.
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Place is a stored place document.
type Place struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Address     string             `json:"address" bson:"address"`
	Location    Location           `json:"location" bson:"location"`
	Creator     primitive.ObjectID `json:"creator" bson:"creator"`
}

// PlaceView is the normalized JSON view of a place.
type PlaceView struct {
	Place
	ID string `json:"id"`
}

// Normalize returns the view of p with the identifier as plain text.
func (p Place) Normalize() PlaceView {
	return PlaceView{Place: p, ID: p.ID.Hex()}
}

// NormalizePlaces normalizes every place, keeping the order.
func NormalizePlaces(places []Place) []PlaceView {
	views := make([]PlaceView, 0, len(places))
	for _, place := range places {
		views = append(views, place.Normalize())
	}
	return views
}

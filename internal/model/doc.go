// Package model defines the documents stored in the database and the JSON
// views returned by the API.
//
// Stored documents use the raw ObjectID under "_id". The normalized view
// (PlaceView, UserView) additionally exposes the identifier as plain text
// under "id", which is what most endpoints return.
package model

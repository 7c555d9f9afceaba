package repository

import (
	"github.com/deppfellow/placeshare/internal/server"
)

// Repositories is a container for all repository instances.
//
// Fields are interfaces so the MongoDB repositories and the in-memory ones
// (package memory) are interchangeable.
type Repositories struct {
	Places PlaceStore
	Users  UserStore
}

// NewRepositories constructs the MongoDB-backed repository container from the
// database held by the server.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Places: NewPlaceRepository(s.DB),
		Users:  NewUserRepository(s.DB),
	}
}

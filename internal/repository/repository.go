// Package repository handles all interactions with the document store.
//
// It contains the MongoDB queries used to fetch, persist, or update
// documents, abstracting driver details away from the service layer. The
// service layer depends only on the PlaceStore and UserStore interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/placeshare/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound reports that no document matched. An identifier that is
	// not a valid ObjectID never matches.
	ErrNotFound = errors.New("repository: document not found")

	// ErrDuplicateEmail reports that a user with the same email exists.
	ErrDuplicateEmail = errors.New("repository: email already registered")
)

// PlaceStore persists places.
type PlaceStore interface {
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByCreator(ctx context.Context, creatorID string) ([]model.Place, error)
	Create(ctx context.Context, place *model.Place) (*model.Place, error)
	// UpdateByID sets title and description and returns the updated place.
	UpdateByID(ctx context.Context, id, title, description string) (*model.Place, error)
	// DeleteByID removes the place and returns it as it was before removal.
	DeleteByID(ctx context.Context, id string) (*model.Place, error)
}

// UserStore persists users.
type UserStore interface {
	// List returns every user without the password hash.
	List(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

// ParseID converts a hex identifier into an ObjectID. Malformed input is
// reported as ErrNotFound since it cannot match any document.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// Package memory implements the repository stores in process memory.
//
// It backs the "memory" database driver used for local runs and the router
// tests. Stores are safe for concurrent use and hand out copies, so callers
// never share state with the store.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/deppfellow/placeshare/internal/model"
	"github.com/deppfellow/placeshare/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewRepositories returns a repository container backed by empty stores.
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Places: NewPlaceStore(),
		Users:  NewUserStore(),
	}
}

// PlaceStore keeps places in insertion order.
type PlaceStore struct {
	mu     sync.RWMutex
	places []model.Place
}

func NewPlaceStore() *PlaceStore {
	return &PlaceStore{}
}

func (s *PlaceStore) indexOf(id primitive.ObjectID) int {
	for i := range s.places {
		if s.places[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *PlaceStore) FindByID(_ context.Context, id string) (*model.Place, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(oid)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	place := s.places[i]
	return &place, nil
}

func (s *PlaceStore) FindByCreator(_ context.Context, creatorID string) ([]model.Place, error) {
	places := []model.Place{}

	oid, err := repository.ParseID(creatorID)
	if err != nil {
		return places, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, place := range s.places {
		if place.Creator == oid {
			places = append(places, place)
		}
	}
	return places, nil
}

func (s *PlaceStore) Create(_ context.Context, place *model.Place) (*model.Place, error) {
	created := *place
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}

	s.mu.Lock()
	s.places = append(s.places, created)
	s.mu.Unlock()

	return &created, nil
}

func (s *PlaceStore) UpdateByID(_ context.Context, id, title, description string) (*model.Place, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(oid)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	s.places[i].Title = title
	s.places[i].Description = description

	place := s.places[i]
	return &place, nil
}

func (s *PlaceStore) DeleteByID(_ context.Context, id string) (*model.Place, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(oid)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	place := s.places[i]
	s.places = append(s.places[:i], s.places[i+1:]...)
	return &place, nil
}

// UserStore keeps users in insertion order. Emails are unique, compared
// case-insensitively like the normalized values the services store.
type UserStore struct {
	mu    sync.RWMutex
	users []model.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		user.Password = ""
		user.Places = append([]primitive.ObjectID{}, user.Places...)
		users = append(users, user)
	}
	return users, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			user.Places = append([]primitive.ObjectID{}, user.Places...)
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) Create(_ context.Context, user *model.User) (*model.User, error) {
	created := *user
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	created.Places = append([]primitive.ObjectID{}, user.Places...)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, created.Email) {
			return nil, repository.ErrDuplicateEmail
		}
	}
	s.users = append(s.users, created)

	stored := created
	stored.Places = append([]primitive.ObjectID{}, created.Places...)
	return &stored, nil
}

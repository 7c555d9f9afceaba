// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/placeshare/internal/geocode"
	"github.com/deppfellow/placeshare/internal/lib/job"
	"github.com/deppfellow/placeshare/internal/repository"
	"github.com/deppfellow/placeshare/internal/server"
)

type Services struct {
	Places *PlaceService
	Users  *UserService
	Job    *job.JobService
}

// NewServices wires the business services on top of the repositories and
// the shared server dependencies.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	geocoder := geocode.New(s.Config.Geocoding, s.Redis, s.Logger)

	var welcome WelcomeEnqueuer
	if s.Job != nil {
		welcome = s.Job
	}

	return &Services{
		Places: NewPlaceService(repos.Places, geocoder),
		Users:  NewUserService(repos.Users, welcome),
		Job:    s.Job,
	}, nil
}

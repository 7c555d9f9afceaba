package service

import (
	"context"
	"errors"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/lib/password"
	"github.com/deppfellow/placeshare/internal/lib/utils"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/deppfellow/placeshare/internal/repository"
	"github.com/rs/zerolog"
)

// Client-facing messages of the user operations.
const (
	MsgListUsersFailed = "Error getting users"
	MsgUserExists      = "User exists already, please login instead"
	MsgSignupLookup    = "Sign up failed, please try again later"
	MsgSignupSave      = "Signing up failed, please try again"
	MsgInvalidLogin    = "Account credentials invalid."
	MsgLoginFailed     = "Could not login, please try again later"
	MsgLoggedIn        = "Logged In!"
)

// WelcomeEnqueuer schedules the welcome email of a new user.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// SignupInput holds the validated fields of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type UserService struct {
	users   repository.UserStore
	welcome WelcomeEnqueuer
}

// NewUserService builds the user service. A nil welcome disables welcome
// emails.
func NewUserService(users repository.UserStore, welcome WelcomeEnqueuer) *UserService {
	return &UserService{users: users, welcome: welcome}
}

func (s *UserService) GetUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list users")
		return nil, errs.NewInternalServerError(MsgListUsersFailed)
	}
	return users, nil
}

// userExists is the error for an email that is already registered.
func userExists() error {
	return errs.NewUnprocessableEntityError(MsgUserExists, nil, &errs.Action{
		Type:    errs.ActionTypeRedirect,
		Message: "Log in with this email instead",
		Value:   "/api/users/login",
	})
}

// Signup registers a new user with a bcrypt-hashed password.
//
// The lookup gives the common duplicate case its own answer; the unique
// email index settles concurrent signups, whose duplicate-key error gets the
// same answer.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	logger := zerolog.Ctx(ctx)
	email := utils.NormalizeEmail(input.Email)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, userExists()
	case !errors.Is(err, repository.ErrNotFound):
		logger.Error().Err(err).Msg("failed to look up user before signup")
		return nil, errs.NewInternalServerError(MsgSignupLookup)
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		logger.Error().Err(err).Msg("failed to hash password")
		return nil, errs.NewInternalServerError(MsgSignupSave)
	}

	user, err := s.users.Create(ctx, &model.User{
		Name:     input.Name,
		Email:    email,
		Image:    model.PlaceholderUserImage,
		Password: hash,
	})
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, userExists()
	case err != nil:
		logger.Error().Err(err).Msg("failed to store user")
		return nil, errs.NewInternalServerError(MsgSignupSave)
	}

	logger.Info().Str("user_id", user.ID.Hex()).Msg("user signed up")

	if s.welcome != nil {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// Login checks the credentials and returns the matching user. Unknown
// emails and wrong passwords get the same answer.
func (s *UserService) Login(ctx context.Context, email, plain string) (*model.User, error) {
	logger := zerolog.Ctx(ctx)

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, errs.NewUnauthorizedError(MsgInvalidLogin, true)
	case err != nil:
		logger.Error().Err(err).Msg("failed to look up user for login")
		return nil, errs.NewInternalServerError(MsgLoginFailed)
	}

	if err := password.Verify(user.Password, plain); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("stored password hash is unusable")
		}
		return nil, errs.NewUnauthorizedError(MsgInvalidLogin, true)
	}

	logger.Info().Str("user_id", user.ID.Hex()).Msg("user logged in")
	return user, nil
}

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/geocode"
	"github.com/deppfellow/placeshare/internal/lib/password"
	"github.com/deppfellow/placeshare/internal/model"
	"github.com/deppfellow/placeshare/internal/repository"
	"github.com/deppfellow/placeshare/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	password.Cost = bcrypt.MinCost
}

func requireHTTPError(t *testing.T, err error, status int, message string) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	return httpErr
}

type failingPlaceStore struct{ repository.PlaceStore }

var errStoreDown = errors.New("server selection timeout")

func (failingPlaceStore) FindByID(context.Context, string) (*model.Place, error) {
	return nil, errStoreDown
}

func (failingPlaceStore) FindByCreator(context.Context, string) ([]model.Place, error) {
	return nil, errStoreDown
}

func (failingPlaceStore) Create(context.Context, *model.Place) (*model.Place, error) {
	return nil, errStoreDown
}

func (failingPlaceStore) UpdateByID(context.Context, string, string, string) (*model.Place, error) {
	return nil, errStoreDown
}

func (failingPlaceStore) DeleteByID(context.Context, string) (*model.Place, error) {
	return nil, errStoreDown
}

type failingGeocoder struct{ err error }

func (g failingGeocoder) Coordinates(context.Context, string) (model.Location, error) {
	return model.Location{}, g.err
}

func newPlaceService() *PlaceService {
	return NewPlaceService(memory.NewPlaceStore(), geocode.NewStatic())
}

func TestPlaceLifecycle(t *testing.T) {
	ctx := context.Background()
	service := newPlaceService()
	creator := primitive.NewObjectID().Hex()

	created, err := service.CreatePlace(ctx, CreatePlaceInput{
		Title:       "Cafe",
		Description: "Coffee",
		Address:     "1 Main St",
		Creator:     creator,
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, geocode.StaticLocation, created.Location)
	assert.Equal(t, model.PlaceholderPlaceImage, created.Image)
	assert.Equal(t, creator, created.Creator.Hex())

	found, err := service.GetPlaceByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, found)

	places, err := service.GetPlacesByUserID(ctx, creator)
	require.NoError(t, err)
	assert.Len(t, places, 1)

	updated, err := service.UpdatePlace(ctx, created.ID.Hex(), "Bar", "Cocktails")
	require.NoError(t, err)
	assert.Equal(t, "Bar", updated.Title)
	assert.Equal(t, "Cocktails", updated.Description)
	assert.Equal(t, created.Address, updated.Address)
	assert.Equal(t, created.Location, updated.Location)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, created.Creator, updated.Creator)

	deleted, err := service.DeletePlace(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = service.GetPlaceByID(ctx, created.ID.Hex())
	requireHTTPError(t, err, http.StatusNotFound, MsgPlaceNotFound)
}

func TestPlaceNotFound(t *testing.T) {
	ctx := context.Background()
	service := newPlaceService()
	missing := primitive.NewObjectID().Hex()

	_, err := service.GetPlaceByID(ctx, missing)
	requireHTTPError(t, err, http.StatusNotFound, MsgPlaceNotFound)

	_, err = service.GetPlaceByID(ctx, "p1")
	requireHTTPError(t, err, http.StatusNotFound, MsgPlaceNotFound)

	_, err = service.GetPlacesByUserID(ctx, missing)
	requireHTTPError(t, err, http.StatusNotFound, MsgUserPlacesNotFound)

	_, err = service.UpdatePlace(ctx, missing, "Bar", "Cocktails")
	requireHTTPError(t, err, http.StatusNotFound, MsgPlaceNotFound)

	_, err = service.DeletePlace(ctx, missing)
	requireHTTPError(t, err, http.StatusNotFound, MsgPlaceNotFound)
}

func TestPlaceStoreFailuresHideCause(t *testing.T) {
	ctx := context.Background()
	service := NewPlaceService(failingPlaceStore{}, geocode.NewStatic())
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		call    func() error
		message string
	}{
		{"get", func() error { _, err := service.GetPlaceByID(ctx, id); return err }, MsgPlaceLookupFailed},
		{"by user", func() error { _, err := service.GetPlacesByUserID(ctx, id); return err }, MsgUserPlacesFailed},
		{"create", func() error {
			_, err := service.CreatePlace(ctx, CreatePlaceInput{Title: "t", Description: "descr", Address: "a", Creator: id})
			return err
		}, MsgCreatePlaceFailed},
		{"update", func() error { _, err := service.UpdatePlace(ctx, id, "t", "descr"); return err }, MsgUpdatePlaceFailed},
		{"delete", func() error { _, err := service.DeletePlace(ctx, id); return err }, MsgDeletePlaceFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			httpErr := requireHTTPError(t, err, http.StatusInternalServerError, tt.message)
			assert.Equal(t, errs.KindInternal, httpErr.Kind)
			assert.NotErrorIs(t, err, errStoreDown)
		})
	}
}

func TestCreatePlaceForwardsGeocoderError(t *testing.T) {
	store := memory.NewPlaceStore()
	geocoderErr := geocode.ErrLocationNotFound()
	service := NewPlaceService(store, failingGeocoder{err: geocoderErr})
	creator := primitive.NewObjectID().Hex()

	_, err := service.CreatePlace(context.Background(), CreatePlaceInput{
		Title: "Cafe", Description: "Coffee", Address: "nowhere", Creator: creator,
	})

	assert.Same(t, geocoderErr, err)

	places, err := store.FindByCreator(context.Background(), creator)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestCreatePlaceRejectsInvalidCreator(t *testing.T) {
	_, err := newPlaceService().CreatePlace(context.Background(), CreatePlaceInput{
		Title: "Cafe", Description: "Coffee", Address: "1 Main St", Creator: "u1",
	})

	httpErr := requireHTTPError(t, err, http.StatusUnprocessableEntity, errs.InvalidInputMessage)
	assert.Equal(t, errs.KindValidation, httpErr.Kind)
}

type recordingEnqueuer struct {
	to, name string
	err      error
}

func (r *recordingEnqueuer) EnqueueWelcomeEmail(_ context.Context, to, name string) error {
	r.to, r.name = to, name
	return r.err
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	welcome := &recordingEnqueuer{}
	service := NewUserService(memory.NewUserStore(), welcome)

	user, err := service.Signup(ctx, SignupInput{Name: "Max", Email: " Max@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "max@example.com", user.Email)
	assert.Equal(t, model.PlaceholderUserImage, user.Image)
	assert.Empty(t, user.Places)
	assert.NotEqual(t, "secret1", user.Password)
	assert.Equal(t, "max@example.com", welcome.to)
	assert.Equal(t, "Max", welcome.name)

	loggedIn, err := service.Login(ctx, "max@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()
	service := NewUserService(store, nil)

	_, err := service.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, SignupInput{Name: "Other", Email: "MAX@example.com", Password: "secret2"})
	httpErr := requireHTTPError(t, err, http.StatusUnprocessableEntity, MsgUserExists)
	require.NotNil(t, httpErr.Action)
	assert.Equal(t, errs.ActionTypeRedirect, httpErr.Action.Type)

	users, err := service.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// racingUserStore hides existing users from the lookup so the duplicate is
// only caught by Create, as with two concurrent signups.
type racingUserStore struct{ *memory.UserStore }

func (racingUserStore) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func TestSignupDuplicateCaughtByStore(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(racingUserStore{memory.NewUserStore()}, nil)

	_, err := service.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})
	requireHTTPError(t, err, http.StatusUnprocessableEntity, MsgUserExists)
}

func TestSignupSurvivesEnqueueFailure(t *testing.T) {
	service := NewUserService(memory.NewUserStore(), &recordingEnqueuer{err: errors.New("redis down")})

	user, err := service.Signup(context.Background(), SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(memory.NewUserStore(), nil)

	_, err := service.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := service.Login(ctx, "max@example.com", "wrong-password")
	assert.Nil(t, user)
	httpErr := requireHTTPError(t, err, http.StatusUnauthorized, MsgInvalidLogin)
	assert.Equal(t, errs.KindUnauthorized, httpErr.Kind)

	_, err = service.Login(ctx, "nobody@example.com", "secret1")
	requireHTTPError(t, err, http.StatusUnauthorized, MsgInvalidLogin)
}

type failingUserStore struct{}

func (failingUserStore) List(context.Context) ([]model.User, error) { return nil, errStoreDown }

func (failingUserStore) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, errStoreDown
}

func (failingUserStore) Create(context.Context, *model.User) (*model.User, error) {
	return nil, errStoreDown
}

func TestUserStoreFailures(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(failingUserStore{}, nil)

	_, err := service.GetUsers(ctx)
	requireHTTPError(t, err, http.StatusInternalServerError, MsgListUsersFailed)

	_, err = service.Signup(ctx, SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})
	requireHTTPError(t, err, http.StatusInternalServerError, MsgSignupLookup)

	_, err = service.Login(ctx, "max@example.com", "secret1")
	requireHTTPError(t, err, http.StatusInternalServerError, MsgLoginFailed)
}

type saveFailingUserStore struct{ failingUserStore }

func (saveFailingUserStore) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func TestSignupSaveFailure(t *testing.T) {
	service := NewUserService(saveFailingUserStore{}, nil)

	_, err := service.Signup(context.Background(), SignupInput{Name: "Max", Email: "max@example.com", Password: "secret1"})

	requireHTTPError(t, err, http.StatusInternalServerError, MsgSignupSave)
}

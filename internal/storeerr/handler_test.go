package storeerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateEmailError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: placeshare.users index: email_1 dup key: { email: "max@example.com" }`,
		}},
	}
}

func TestParseDuplicateKey(t *testing.T) {
	key, ok := ParseDuplicateKey(duplicateEmailError())

	require.True(t, ok)
	assert.Equal(t, "users", key.Collection)
	assert.Equal(t, "email", key.Field)

	_, ok = ParseDuplicateKey(errors.New("E11000 looking text but not a driver error"))
	assert.False(t, ok)
}

func TestHandleError(t *testing.T) {
	existing := errs.NewUnauthorizedError("nope", true)

	tests := []struct {
		name    string
		err     error
		status  int
		kind    errs.Kind
		code    string
		message string
	}{
		{
			name:    "duplicate key",
			err:     fmt.Errorf("inserting user: %w", duplicateEmailError()),
			status:  http.StatusUnprocessableEntity,
			kind:    errs.KindValidation,
			code:    "USER_ALREADY_EXISTS",
			message: "A User with this Email already exists",
		},
		{
			name:    "no documents",
			err:     mongo.ErrNoDocuments,
			status:  http.StatusNotFound,
			kind:    errs.KindNotFound,
			code:    "NOT_FOUND",
			message: "Resource not found",
		},
		{
			name:    "repository not found",
			err:     fmt.Errorf("wrapped: %w", repository.ErrNotFound),
			status:  http.StatusNotFound,
			kind:    errs.KindNotFound,
			code:    "NOT_FOUND",
			message: "Resource not found",
		},
		{
			name:    "unknown",
			err:     errors.New("connection reset"),
			status:  http.StatusInternalServerError,
			kind:    errs.KindInternal,
			code:    "INTERNAL_SERVER_ERROR",
			message: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)

			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.kind, httpErr.Kind)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}

	t.Run("http error passes through", func(t *testing.T) {
		assert.Same(t, existing, HandleError(existing))
	})
}

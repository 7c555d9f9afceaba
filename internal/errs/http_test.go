package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetKindAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		kind   Kind
		status int
		code   string
	}{
		{"validation", NewValidationError(InvalidInputMessage, nil), KindValidation, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"unprocessable", NewUnprocessableEntityError("exists", nil, nil), KindValidation, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"not found", NewNotFoundError("missing", false, nil), KindNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", NewUnauthorizedError("nope", false), KindUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), KindForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("garbage", false, nil, nil, nil), KindBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"rate limited", NewTooManyRequestsError("slow down"), KindRateLimited, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"upstream", NewUpstreamError(http.StatusUnprocessableEntity, "no address"), KindUpstream, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"internal", NewInternalServerError("boom"), KindInternal, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestNewInternalServerErrorDefaultsMessage(t *testing.T) {
	assert.Equal(t, "Internal Server Error", NewInternalServerError("").Message)
	assert.Equal(t, "Could not delete the place", NewInternalServerError("Could not delete the place").Message)
}

func TestCustomCode(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	err := NewUnprocessableEntityError("User exists already, please login instead", &code, nil)
	assert.Equal(t, code, err.Code)
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("creating place: %w", NewNotFoundError("missing", false, nil))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestIsMatchesAnyHTTPError(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewUnauthorizedError("nope", false))
	assert.True(t, errors.Is(err, &HTTPError{}))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores("Unprocessable Entity"))
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, DefaultStatus(KindValidation))
	assert.Equal(t, http.StatusTooManyRequests, DefaultStatus(KindRateLimited))
	assert.Equal(t, http.StatusBadGateway, DefaultStatus(KindUpstream))
	assert.Equal(t, http.StatusInternalServerError, DefaultStatus(Kind("surprise")))
}

package errs

import (
	"errors"
	"net/http"
)

// InvalidInputMessage is the message sent for every request that fails input
// validation.
const InvalidInputMessage = "Invalid inputs passed, please check your data."

// statusCode builds the default machine-readable code for an HTTP status,
// e.g. 404 => "NOT_FOUND".
func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// Parameters:
//   - message: text to send to client
//   - override: whether the frontend may show the message verbatim.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnauthorized),
		Kind:     KindUnauthorized,
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusForbidden),
		Kind:     KindForbidden,
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
//   - action: optional client instruction (e.g. redirect)
//
// It is used for bodies that cannot be decoded at all. Well-formed input
// that breaks a rule is a validation error, see NewValidationError.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindBadRequest,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewValidationError creates a 422 Unprocessable Entity HTTPError carrying
// the per-field errors produced by the validation package.
func NewValidationError(message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnprocessableEntity),
		Kind:     KindValidation,
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: true,
		Errors:   fieldErrors,
	}
}

// NewUnprocessableEntityError creates a 422 HTTPError for input that is well
// formed but rejected by business rules, such as an email that is already
// registered.
func NewUnprocessableEntityError(message string, code *string, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusUnprocessableEntity)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindValidation,
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: true,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports optional custom code override similar to NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindNotFound,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusTooManyRequests),
		Kind:    KindRateLimited,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewUpstreamError creates an HTTPError raised by an external collaborator.
// The collaborator decides the status; the error is forwarded unchanged.
func NewUpstreamError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(status),
		Kind:     KindUpstream,
		Message:  message,
		Status:   status,
		Override: status < http.StatusInternalServerError,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// message is a fixed, client-safe text. The real cause must be logged by the
// caller and is never attached. An empty message falls back to the generic
// status text.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}

	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Kind:     KindInternal,
		Message:  message,
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// KindOf returns the Kind of the first *HTTPError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind
	}
	return KindInternal
}

// kindStatus is the status each kind answers with when an error does not
// carry one.
var kindStatus = map[Kind]int{
	KindValidation:   http.StatusUnprocessableEntity,
	KindBadRequest:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindRateLimited:  http.StatusTooManyRequests,
	KindUpstream:     http.StatusBadGateway,
	KindInternal:     http.StatusInternalServerError,
}

// DefaultStatus returns the status of kind, or 500 for an unknown kind.
func DefaultStatus(kind Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

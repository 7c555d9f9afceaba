package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Usually "Value" holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction,
// e.g. "redirect to login" after a duplicate signup.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// Kind tags an HTTPError with its place in the error taxonomy.
type Kind string

const (
	// KindValidation marks input that failed validation (422).
	KindValidation Kind = "validation"

	// KindBadRequest marks a request that could not be parsed at all (400).
	KindBadRequest Kind = "bad_request"

	// KindNotFound marks a missing record or route (404).
	KindNotFound Kind = "not_found"

	// KindUnauthorized marks failed authentication (401).
	KindUnauthorized Kind = "unauthorized"

	// KindForbidden marks an authenticated caller without access (403).
	KindForbidden Kind = "forbidden"

	// KindRateLimited marks a caller that exceeded the request budget (429).
	KindRateLimited Kind = "rate_limited"

	// KindUpstream marks an error raised by an external collaborator such as
	// the geocoder. Its status is chosen by that collaborator.
	KindUpstream Kind = "upstream"

	// KindInternal marks an infrastructure failure (500). The cause is
	// logged but never sent to the client.
	KindInternal Kind = "internal"
)

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON by the global error handler.
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Kind: taxonomy tag, see Kind.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the frontend show Message verbatim.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction, action to be taken (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Kind     Kind   `json:"kind"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for form inputs.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction (redirect, etc.).
	Action *Action `json:"action"`
}

// Error returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status/Kind, only the type. Use KindOf to tell
// kinds apart.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Unprocessable Entity" -> "UNPROCESSABLE_ENTITY"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

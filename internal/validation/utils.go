package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// BindRequestMessage is returned when the request cannot be decoded at all.
const BindRequestMessage = "Invalid request body"

// Validatable is implemented by every request payload. Validate usually
// just calls Struct; rules that tags cannot express return
// CustomValidationErrors.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule failure reported by hand for one field.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Fields are reported under their
// JSON name, or their path parameter name when they are not part of the body.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "param"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// BindAndValidate decodes path parameters and the JSON body into payload and
// validates it. A malformed body yields a 400; failed rules yield a 422
// carrying one error per field.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(BindRequestMessage, false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewValidationError(errs.InvalidInputMessage, fieldErrors(err))
	}

	return nil
}

func fieldErrors(err error) []errs.FieldError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		out := make([]errs.FieldError, 0, len(custom))
		for _, e := range custom {
			out = append(out, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return out
	}

	var tagged validator.ValidationErrors
	if !errors.As(err, &tagged) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	out := make([]errs.FieldError, 0, len(tagged))
	for _, e := range tagged {
		out = append(out, errs.FieldError{Field: e.Field(), Error: message(e)})
	}
	return out
}

// message turns a failed tag into text shown next to the field.
func message(e validator.FieldError) string {
	unit := ""
	if e.Kind() == reflect.String {
		unit = " characters"
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", e.Param(), unit)
	case "max":
		return fmt.Sprintf("must not exceed %s%s", e.Param(), unit)
	case "email":
		return "must be a valid email address"
	case "mongodb":
		return "must be a valid id"
	case "oneof":
		return "must be one of: " + e.Param()
	}

	if e.Param() != "" {
		return fmt.Sprintf("failed %s=%s", e.Tag(), e.Param())
	}
	return "failed " + e.Tag()
}

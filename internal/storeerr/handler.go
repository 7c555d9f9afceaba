package storeerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/placeshare/internal/errs"
	"github.com/deppfellow/placeshare/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// duplicateKeyPattern extracts the collection and the first key field from a
// MongoDB E11000 message, e.g.
//
//	E11000 duplicate key error collection: placeshare.users index: email_1 dup key: { email: "a@b.c" }
var duplicateKeyPattern = regexp.MustCompile(`collection: [^.\s]+\.(\S+) index: \S+ dup key: \{ ?([^:\s]+)`)

// DuplicateKey describes the collection and field of a unique index violation.
type DuplicateKey struct {
	Collection string
	Field      string
}

// ParseDuplicateKey reports the collection and field named in a duplicate
// key error. ok is false when err is not a duplicate key error.
func ParseDuplicateKey(err error) (key DuplicateKey, ok bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return DuplicateKey{}, false
	}

	if matches := duplicateKeyPattern.FindStringSubmatch(err.Error()); len(matches) == 3 {
		key.Collection = matches[1]
		key.Field = matches[2]
	}
	return key, true
}

// generateErrorCode creates application error codes such as
// USER_ALREADY_EXISTS from a collection name.
func generateErrorCode(collection, action string) string {
	if collection == "" {
		collection = "RECORD"
	}

	domain := strings.ToUpper(collection)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// entityName turns "users" into "User".
func entityName(collection string) string {
	if collection == "" {
		return "record"
	}
	if strings.HasSuffix(collection, "s") && len(collection) > 1 {
		collection = collection[:len(collection)-1]
	}
	return humanizeText(collection)
}

// humanizeText converts snake_case identifiers into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level store error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - duplicate key: 422 with a generated code (e.g. USER_ALREADY_EXISTS)
//   - no documents / repository.ErrNotFound: 404
//   - anything else: 500 without details
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if key, ok := ParseDuplicateKey(err); ok {
		code := generateErrorCode(key.Collection, "ALREADY_EXISTS")
		message := fmt.Sprintf("A %s with this identifier already exists", entityName(key.Collection))
		if key.Field != "" {
			message = strings.ReplaceAll(message, "identifier", humanizeText(key.Field))
		}
		return errs.NewUnprocessableEntityError(message, &code, nil)
	}

	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError("")
}

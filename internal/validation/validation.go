// Package validation binds request bodies and path parameters and checks
// them against `validate` struct tags.
//
// Failures come back as *errs.HTTPError: a body that cannot be decoded
// is a 400, a rule violation is a 422 listing one message per field.
package validation

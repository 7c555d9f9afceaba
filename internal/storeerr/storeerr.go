// Package storeerr specifically handles document store driver errors.
//
// It inspects errors returned by the MongoDB driver and converts them into
// user-friendly HTTP errors (e.g., converting a "duplicate key" write error
// into an Unprocessable Entity error).
package storeerr

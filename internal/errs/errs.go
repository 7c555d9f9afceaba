// Package errs defines the error types returned to API clients.
//
// Every failure that reaches the HTTP layer is an *HTTPError tagged with a
// Kind, so the global error handler can switch on the kind instead of
// guessing from status codes or message strings.
package errs

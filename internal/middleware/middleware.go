// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request correlation, tracing, metrics, request logging,
// CORS, rate limiting of the account endpoints, and panic recovery
package middleware

// Package server provides the HTTP plan service: a Gin engine served over
// HTTP/1.1 and h2c behind a small middleware chain.
//
// # Middleware
//
// Built-in middleware (server/middleware), outermost first:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation into log context
//   - CORS: cross-origin headers for configured origins
//   - BodySizeLimit: request body size limit
//   - RequestLogger: request logging and request metrics
//
// The /v1 routes are additionally rate limited per client when configured.
//
// # Endpoints
//
//   - GET /health, GET /version (server/endpoint)
//   - POST /v1/plan: plan the project document in the body
//   - POST /v1/check: report whether the roots of the document can be planned
package server

package middleware

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/kbukum/depbatch/errors"
)

// Middleware wraps an http.Handler. Server middleware runs in front of the
// Gin engine, so unknown routes pass through it as well.
type Middleware func(http.Handler) http.Handler

// Chain composes mws into one Middleware. mws[0] sees the request first.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler { return Apply(h, mws...) }
}

// Apply wraps h in mws with mws[0] outermost.
func Apply(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range slices.Backward(mws) {
		h = mw(h)
	}
	return h
}

// writeError answers with the JSON envelope of appErr.
func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}

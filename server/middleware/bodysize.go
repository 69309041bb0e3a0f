package middleware

import (
	"net/http"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit caps request bodies at maxSize (e.g. "1MB", "512KB").
// Requests announcing a larger Content-Length are refused with 413 up
// front; chunked bodies fail with *http.MaxBytesError once they cross the
// limit while being read.
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, errors.New(errors.ErrCodePayloadTooLarge, "Request body is too large.", http.StatusRequestEntityTooLarge).
					WithDetail("limit", limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

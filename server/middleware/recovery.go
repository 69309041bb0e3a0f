package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack and
// answers with an internal error.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("Panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", rec),
					"stack":  string(debug.Stack()),
					"path":   r.URL.Path,
					"method": r.Method,
				})
				writeError(w, errors.Internal(nil))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

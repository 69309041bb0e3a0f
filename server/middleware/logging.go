package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
)

var quietPaths = map[string]bool{
	"/health":  true,
	"/version": true,
}

// RequestLogger returns middleware that logs every request with method,
// path, status code and duration, and records request metrics when metrics
// is not nil. Health and version probes are not logged.
func RequestLogger(log *logger.Logger, metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			if metrics != nil {
				metrics.RecordRequestStart(r.Context())
			}
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			if metrics != nil {
				metrics.RecordRequestEnd(r.Context(), r.URL.Path, r.Method, sw.status, duration)
			}
			if quietPaths[r.URL.Path] {
				return
			}

			fields := map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": sw.status,
				"bytes":  sw.bytes,
			}
			fields[logger.FieldDuration] = duration.Milliseconds()
			if id := r.Header.Get(HeaderRequestID); id != "" {
				fields[logger.FieldRequestID] = id
			}
			logByStatus(log, fields, sw.status)
		})
	}
}

// logByStatus logs request fields at the level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}

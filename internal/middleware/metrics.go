package middleware

import (
	"net/http"
	"strconv"
	"time"

	"listql/internal/observability"
)

// Metrics records request counts and latency per resource.
func Metrics(metrics *observability.Metrics, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			metrics.RequestsTotal.WithLabelValues(resource, strconv.Itoa(wrapped.statusCode)).Inc()
			metrics.RequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
		})
	}
}

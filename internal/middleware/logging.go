package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/uday-rana/employees/internal/metrics"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs every request and records HTTP metrics.
func RequestLogger(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.InfoContext(r.Context(), "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", duration.Milliseconds(),
			)
			m.HTTP.RecordRequest(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		})
	}
}

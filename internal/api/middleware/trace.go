// Package middleware provides the HTTP middleware chain for the API:
// request tracing and JWT authentication.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/msoledad/aula-api/internal/api/shared"
)

// TraceMiddleware attaches a trace ID to the request context. Apply it
// first so every downstream handler and log line can carry the ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

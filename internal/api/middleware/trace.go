package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and stores a logger
// carrying it. Handlers read that logger with logger.FromContextOrDefault.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set("X-Trace-ID", traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

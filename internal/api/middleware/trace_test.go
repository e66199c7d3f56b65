package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	})

	rec := httptest.NewRecorder()
	TraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, traceID)
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-ID"))
	assert.Contains(t, buf.String(), "request started")
	assert.Contains(t, buf.String(), "msg=\"inside handler\" trace_id="+traceID)
}

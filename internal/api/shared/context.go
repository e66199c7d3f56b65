// Package shared holds the request context keys, request decoding and
// response helpers used by the API handlers and middleware.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ContextKey is the type of keys stored in the request context by this package.
type ContextKey string

const (
	// ProfileIDContextKey holds the authenticated session's profile ID.
	ProfileIDContextKey ContextKey = "profileID"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a generated trace ID.
	TraceIDLength = 16
)

var fallbackCounter atomic.Uint64

// SetTraceID stores a trace ID in ctx. The chi request ID is reused when the
// RequestID middleware ran first; otherwise a random ID is generated.
func SetTraceID(ctx context.Context) context.Context {
	traceID := middleware.GetReqID(ctx)
	if traceID == "" {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithProfileID stores the authenticated profile ID in ctx.
func WithProfileID(ctx context.Context, profileID uuid.UUID) context.Context {
	return context.WithValue(ctx, ProfileIDContextKey, profileID)
}

// ProfileIDFromContext returns the authenticated profile ID. It reports false
// when no ID is present or the ID is nil.
func ProfileIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ProfileIDContextKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID is unique within the process even when called repeatedly
// in the same nanosecond.
func fallbackTraceID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16) + "-" +
		strconv.FormatUint(fallbackCounter.Add(1), 16)
}

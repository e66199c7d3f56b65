// Package middleware contains the HTTP middleware that authenticates session
// tokens and attaches trace IDs and request loggers.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for session routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. A nil logger uses slog.Default.
func NewAuthMiddleware(jwtService auth.JWTService, l *slog.Logger) *AuthMiddleware {
	if l == nil {
		l = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     l.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the Bearer token in the Authorization header and
// places the session's profile ID in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrExpiredToken):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			return
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		ctx := shared.WithProfileID(r.Context(), claims.ProfileID)
		ctx = logger.WithLogger(ctx, log.With(slog.String("profile_id", claims.ProfileID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/service"
	"github.com/phrazzld/scorelab-api/internal/service/auth"
)

// SessionHandler starts simulator sessions.
type SessionHandler struct {
	profileService service.ProfileService
	jwtService     auth.JWTService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	profileService service.ProfileService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		profileService: profileService,
		jwtService:     jwtService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /api/sessions. It creates an empty profile and
// returns a token bound to it together with the initial snapshot.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	snap, err := h.profileService.CreateProfile(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), snap.Profile.ID)
	if err != nil {
		// the profile is unreachable without a token
		if derr := h.profileService.DeleteProfile(r.Context(), snap.Profile.ID); derr != nil {
			log.Warn("failed to delete orphaned profile",
				slog.String("profile_id", snap.Profile.ID.String()),
				slog.String("error", derr.Error()))
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate session token", err)
		return
	}

	log.Info("session created", slog.String("profile_id", snap.Profile.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{
		ProfileID: snap.Profile.ID,
		Token:     token,
		Snapshot:  snap,
	})
}

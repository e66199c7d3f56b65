package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/generation"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/service"
)

// ExplanationHandler produces coaching notes for the session's score.
type ExplanationHandler struct {
	profileService service.ProfileService
	explainer      generation.Explainer
	logger         *slog.Logger
}

// NewExplanationHandler creates a new ExplanationHandler.
func NewExplanationHandler(
	profileService service.ProfileService,
	explainer generation.Explainer,
	logger *slog.Logger,
) *ExplanationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExplanationHandler")
	}
	return &ExplanationHandler{
		profileService: profileService,
		explainer:      explainer,
		logger:         logger.With(slog.String("component", "explanation_handler")),
	}
}

// Explain handles POST /api/profile/explanation.
func (h *ExplanationHandler) Explain(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	snap, err := h.profileService.GetSnapshot(r.Context(), profileID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	text, err := h.explainer.Explain(r.Context(), snap)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway, "Failed to generate explanation", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ExplanationResponse{
		Score:       snap.Score,
		Band:        snap.Band,
		Explanation: text,
	})
}

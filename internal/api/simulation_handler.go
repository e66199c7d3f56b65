package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/service"
)

// SimulationHandler runs "what if" projections against the session's profile.
type SimulationHandler struct {
	profileService service.ProfileService
	logger         *slog.Logger
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(profileService service.ProfileService, logger *slog.Logger) *SimulationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SimulationHandler")
	}
	return &SimulationHandler{
		profileService: profileService,
		logger:         logger.With(slog.String("component", "simulation_handler")),
	}
}

// Simulate handles POST /api/profile/simulations.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	var req SimulationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	action, err := req.ToAction()
	if err != nil {
		HandleValidationError(w, r, err)
		return
	}

	sim, err := h.profileService.Simulate(r.Context(), profileID, action)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("simulation recorded",
		slog.String("action", string(sim.Action)),
		slog.Int("base_score", sim.BaseScore),
		slog.Int("simulated_score", sim.SimulatedScore))
	shared.RespondWithJSON(w, r, http.StatusCreated, sim)
}

// ListSimulations handles GET /api/profile/simulations.
func (h *SimulationHandler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	sims, err := h.profileService.Simulations(r.Context(), profileID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if sims == nil {
		sims = []domain.ScoreSimulation{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SimulationListResponse{Simulations: sims})
}

// ResetSimulations handles DELETE /api/profile/simulations.
func (h *SimulationHandler) ResetSimulations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	if err := h.profileService.ResetSimulations(r.Context(), profileID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

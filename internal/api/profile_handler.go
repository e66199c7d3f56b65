package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/service"
)

// MaxScoreHistoryLimit caps the limit query parameter of the score history route.
const MaxScoreHistoryLimit = 500

// ProfileHandler serves the session's profile and its accounts, inquiries
// and score history.
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger.With(slog.String("component", "profile_handler")),
	}
}

// GetProfile handles GET /api/profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
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
	shared.RespondWithJSON(w, r, http.StatusOK, snap)
}

// DeleteProfile handles DELETE /api/profile. The session token stops
// working once its profile is gone.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(r.Context(), profileID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddAccount handles POST /api/profile/accounts.
func (h *ProfileHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	var req AccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.profileService.AddAccount(r.Context(), profileID, req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("account added", slog.String("account_id", account.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, account)
}

// UpdateAccount handles PATCH /api/profile/accounts/{id}.
func (h *ProfileHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, accountID, ok := handleProfileIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req AccountPatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.profileService.UpdateAccount(r.Context(), profileID, accountID, req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, account)
}

// RemoveAccount handles DELETE /api/profile/accounts/{id}. Unknown accounts
// are not an error.
func (h *ProfileHandler) RemoveAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, accountID, ok := handleProfileIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.profileService.RemoveAccount(r.Context(), profileID, accountID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddInquiry handles POST /api/profile/inquiries.
func (h *ProfileHandler) AddInquiry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	var req InquiryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	inquiry, err := h.profileService.AddInquiry(r.Context(), profileID, req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, inquiry)
}

// RemoveInquiry handles DELETE /api/profile/inquiries/{id}.
func (h *ProfileHandler) RemoveInquiry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, inquiryID, ok := handleProfileIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.profileService.RemoveInquiry(r.Context(), profileID, inquiryID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetBankruptcies handles PUT /api/profile/bankruptcies and responds with
// the updated snapshot.
func (h *ProfileHandler) SetBankruptcies(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	var req BankruptciesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.profileService.SetBankruptcies(r.Context(), profileID, *req.Count); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	snap, err := h.profileService.GetSnapshot(r.Context(), profileID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snap)
}

// ScoreHistory handles GET /api/profile/score-history. The optional since
// query parameter is an RFC 3339 timestamp; limit caps the number of points.
func (h *ProfileHandler) ScoreHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	profileID, ok := requireProfileID(w, r, log)
	if !ok {
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			HandleValidationError(w, r, domain.NewValidationError("since", "must be an RFC 3339 timestamp", domain.ErrInvalidFormat))
			return
		}
		since = t
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxScoreHistoryLimit {
			HandleValidationError(w, r, domain.NewValidationError("limit",
				"must be between 1 and "+strconv.Itoa(MaxScoreHistoryLimit), domain.ErrInvalidFormat))
			return
		}
		limit = n
	}

	records, err := h.profileService.ScoreHistory(r.Context(), profileID, since, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if records == nil {
		records = []domain.ScoreRecord{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ScoreHistoryResponse{Records: records})
}

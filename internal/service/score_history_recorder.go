package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/events"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// ScoreHistoryRecorder appends a score record for every score.changed event.
// Other event types are ignored.
type ScoreHistoryRecorder struct {
	history store.ScoreHistoryStore
	logger  *slog.Logger
}

var _ events.EventHandler = (*ScoreHistoryRecorder)(nil)

// NewScoreHistoryRecorder creates a recorder writing to history.
func NewScoreHistoryRecorder(history store.ScoreHistoryStore, logger *slog.Logger) *ScoreHistoryRecorder {
	if history == nil {
		panic("history store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreHistoryRecorder{
		history: history,
		logger:  logger.With(slog.String("component", "score_history_recorder")),
	}
}

// HandleEvent implements events.EventHandler.
func (r *ScoreHistoryRecorder) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeScoreChanged {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, r.logger)

	var payload events.ScoreChangedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		log.Error("invalid score changed payload",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return fmt.Errorf("failed to decode score changed payload: %w", err)
	}

	record := domain.NewScoreRecord(event.ProfileID, payload.Score, payload.Reason, event.CreatedAt)
	if err := r.history.Append(ctx, record); err != nil {
		return NewProfileServiceError("record_score", "failed to append score record", err)
	}

	log.Debug("score recorded",
		slog.String("profile_id", event.ProfileID.String()),
		slog.Int("score", payload.Score),
		slog.String("reason", payload.Reason))
	return nil
}

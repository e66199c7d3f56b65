package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// PostgresScoreHistoryStore implements the store.ScoreHistoryStore interface.
type PostgresScoreHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScoreHistoryStore creates a new PostgreSQL score history store.
// It accepts a database connection or transaction managed by the caller.
func NewPostgresScoreHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresScoreHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScoreHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "score_history_store")),
	}
}

var _ store.ScoreHistoryStore = (*PostgresScoreHistoryStore)(nil)

// Append implements store.ScoreHistoryStore.Append.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresScoreHistoryStore) Append(ctx context.Context, record domain.ScoreRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO score_history (id, profile_id, score, band, reason, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.ID, record.ProfileID, record.Score, record.Band, record.Reason, record.RecordedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrProfileNotFound
		}
		log.Error("failed to append score record",
			slog.String("error", err.Error()),
			slog.String("profile_id", record.ProfileID.String()))
		return MapError(err)
	}

	log.Debug("score record appended",
		slog.String("profile_id", record.ProfileID.String()),
		slog.Int("score", record.Score))
	return nil
}

// List implements store.ScoreHistoryStore.List.
func (s *PostgresScoreHistoryStore) List(
	ctx context.Context,
	profileID uuid.UUID,
	since time.Time,
	limit int,
) ([]domain.ScoreRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// LIMIT NULL means no limit in PostgreSQL
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, score, band, reason, recorded_at
		FROM score_history
		WHERE profile_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at, id
		LIMIT $3
	`, profileID, since, limitArg)
	if err != nil {
		log.Error("failed to list score history",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.ScoreRecord{}
	for rows.Next() {
		var r domain.ScoreRecord
		var band string
		if err := rows.Scan(&r.ID, &r.ProfileID, &r.Score, &band, &r.Reason, &r.RecordedAt); err != nil {
			return nil, MapError(err)
		}
		r.Band = domain.ScoreBand(band)
		r.RecordedAt = r.RecordedAt.UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// DeleteForProfile implements store.ScoreHistoryStore.DeleteForProfile.
func (s *PostgresScoreHistoryStore) DeleteForProfile(ctx context.Context, profileID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM score_history
		WHERE profile_id = $1
	`, profileID)
	if err != nil {
		log.Error("failed to delete score history",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return MapError(err)
	}

	if n, err := result.RowsAffected(); err == nil {
		log.Debug("score history deleted",
			slog.String("profile_id", profileID.String()),
			slog.Int64("records", n))
	}
	return nil
}

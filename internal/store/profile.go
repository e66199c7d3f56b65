package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
)

// ProfileStore defines the interface for credit profile persistence.
// A profile is stored together with its accounts, payment histories and
// inquiries; implementations treat the whole aggregate as one unit.
type ProfileStore interface {
	// Create inserts a new profile and its children.
	// Returns ErrProfileExists if a profile with the same ID is already stored.
	Create(ctx context.Context, profile *domain.CreditProfile) error

	// Get retrieves a profile with all its accounts and inquiries.
	// Returns ErrProfileNotFound if the profile does not exist.
	// Derived aggregates are not persisted and come back zeroed.
	Get(ctx context.Context, id uuid.UUID) (*domain.CreditProfile, error)

	// Save replaces the stored accounts, payment histories and inquiries of an
	// existing profile with those of profile, atomically.
	// Returns ErrProfileNotFound if the profile does not exist.
	Save(ctx context.Context, profile *domain.CreditProfile) error

	// Delete removes a profile and everything it owns.
	// Returns ErrProfileNotFound if the profile does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScoreHistoryStore defines the interface for the append-only score history.
type ScoreHistoryStore interface {
	// Append records one score point.
	Append(ctx context.Context, record domain.ScoreRecord) error

	// List returns a profile's records recorded at or after since, oldest first,
	// up to limit entries. A limit <= 0 means no limit.
	List(ctx context.Context, profileID uuid.UUID, since time.Time, limit int) ([]domain.ScoreRecord, error)

	// DeleteForProfile removes every record of a profile.
	// Deleting the history of a profile with no records is not an error.
	DeleteForProfile(ctx context.Context, profileID uuid.UUID) error
}

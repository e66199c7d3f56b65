package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// ProfileStore is a map-backed store.ProfileStore. Profiles are deep-copied
// on the way in and out so callers never share state with the store.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.CreditProfile
	logger   *slog.Logger
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates an empty in-memory profile store.
func NewProfileStore(logger *slog.Logger) *ProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		profiles: make(map[uuid.UUID]domain.CreditProfile),
		logger:   logger.With(slog.String("component", "memory_profile_store")),
	}
}

// Create implements store.ProfileStore.Create.
func (s *ProfileStore) Create(ctx context.Context, profile *domain.CreditProfile) error {
	if err := profile.Validate(); err != nil {
		return store.NewStoreError("profile", "create", "validation failed", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; ok {
		return store.ErrProfileExists
	}
	s.profiles[profile.ID] = stripped(*profile)

	logger.FromContextOrDefault(ctx, s.logger).
		Debug("profile created", slog.String("profile_id", profile.ID.String()))
	return nil
}

// Get implements store.ProfileStore.Get.
func (s *ProfileStore) Get(_ context.Context, id uuid.UUID) (*domain.CreditProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	out := p.Clone()
	return &out, nil
}

// Save implements store.ProfileStore.Save.
func (s *ProfileStore) Save(ctx context.Context, profile *domain.CreditProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.ID]
	if !ok {
		return store.ErrProfileNotFound
	}
	next := stripped(*profile)
	next.CreatedAt = existing.CreatedAt
	s.profiles[profile.ID] = next

	logger.FromContextOrDefault(ctx, s.logger).
		Debug("profile saved", slog.String("profile_id", profile.ID.String()))
	return nil
}

// Delete implements store.ProfileStore.Delete.
func (s *ProfileStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return store.ErrProfileNotFound
	}
	delete(s.profiles, id)
	return nil
}

// Len returns the number of stored profiles.
func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// stripped clones p and zeroes the derived aggregates, matching what a
// database round trip returns.
func stripped(p domain.CreditProfile) domain.CreditProfile {
	c := p.Clone()
	c.Aggregates = domain.Aggregates{}
	return c
}

// ScoreHistoryStore is an append-only in-memory store.ScoreHistoryStore.
// When profiles is set, appends for unknown profiles are rejected.
type ScoreHistoryStore struct {
	mu       sync.RWMutex
	records  map[uuid.UUID][]domain.ScoreRecord
	profiles *ProfileStore
}

var _ store.ScoreHistoryStore = (*ScoreHistoryStore)(nil)

// NewScoreHistoryStore creates an empty history store. profiles may be nil.
func NewScoreHistoryStore(profiles *ProfileStore) *ScoreHistoryStore {
	return &ScoreHistoryStore{
		records:  make(map[uuid.UUID][]domain.ScoreRecord),
		profiles: profiles,
	}
}

// Append implements store.ScoreHistoryStore.Append.
func (s *ScoreHistoryStore) Append(ctx context.Context, record domain.ScoreRecord) error {
	if s.profiles != nil {
		if _, err := s.profiles.Get(ctx, record.ProfileID); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ProfileID] = append(s.records[record.ProfileID], record)
	return nil
}

// List implements store.ScoreHistoryStore.List.
func (s *ScoreHistoryStore) List(
	_ context.Context,
	profileID uuid.UUID,
	since time.Time,
	limit int,
) ([]domain.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.ScoreRecord{}
	for _, r := range s.records[profileID] {
		if !r.RecordedAt.Before(since) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteForProfile implements store.ScoreHistoryStore.DeleteForProfile.
func (s *ScoreHistoryStore) DeleteForProfile(_ context.Context, profileID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, profileID)
	return nil
}

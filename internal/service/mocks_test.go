package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockProfileStore mocks the store.ProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Create(ctx context.Context, p *domain.CreditProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileStore) Get(ctx context.Context, id uuid.UUID) (*domain.CreditProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditProfile), args.Error(1)
}

func (m *MockProfileStore) Save(ctx context.Context, p *domain.CreditProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockScoreHistoryStore mocks the store.ScoreHistoryStore interface
type MockScoreHistoryStore struct {
	mock.Mock
}

func (m *MockScoreHistoryStore) Append(ctx context.Context, record domain.ScoreRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockScoreHistoryStore) List(
	ctx context.Context,
	profileID uuid.UUID,
	since time.Time,
	limit int,
) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx, profileID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoreRecord), args.Error(1)
}

func (m *MockScoreHistoryStore) DeleteForProfile(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

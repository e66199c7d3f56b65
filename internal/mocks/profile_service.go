package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/phrazzld/scorelab-api/internal/service"
)

// MockProfileService implements service.ProfileService for testing.
// Methods whose Fn is nil return zero values and Err.
type MockProfileService struct {
	CreateProfileFn    func(ctx context.Context) (profile.Snapshot, error)
	GetSnapshotFn      func(ctx context.Context, profileID uuid.UUID) (profile.Snapshot, error)
	DeleteProfileFn    func(ctx context.Context, profileID uuid.UUID) error
	AddAccountFn       func(ctx context.Context, profileID uuid.UUID, account domain.CreditAccount) (domain.CreditAccount, error)
	UpdateAccountFn    func(ctx context.Context, profileID, accountID uuid.UUID, patch domain.AccountPatch) (domain.CreditAccount, error)
	RemoveAccountFn    func(ctx context.Context, profileID, accountID uuid.UUID) error
	AddInquiryFn       func(ctx context.Context, profileID uuid.UUID, inquiry domain.CreditInquiry) (domain.CreditInquiry, error)
	RemoveInquiryFn    func(ctx context.Context, profileID, inquiryID uuid.UUID) error
	SetBankruptciesFn  func(ctx context.Context, profileID uuid.UUID, n int) error
	SimulateFn         func(ctx context.Context, profileID uuid.UUID, action domain.SimulationAction) (domain.ScoreSimulation, error)
	SimulationsFn      func(ctx context.Context, profileID uuid.UUID) ([]domain.ScoreSimulation, error)
	ResetSimulationsFn func(ctx context.Context, profileID uuid.UUID) error
	ScoreHistoryFn     func(ctx context.Context, profileID uuid.UUID, since time.Time, limit int) ([]domain.ScoreRecord, error)

	Err error
}

var _ service.ProfileService = (*MockProfileService)(nil)

// CreateProfile implements service.ProfileService
func (m *MockProfileService) CreateProfile(ctx context.Context) (profile.Snapshot, error) {
	if m.CreateProfileFn != nil {
		return m.CreateProfileFn(ctx)
	}
	return profile.Snapshot{}, m.Err
}

// GetSnapshot implements service.ProfileService
func (m *MockProfileService) GetSnapshot(ctx context.Context, profileID uuid.UUID) (profile.Snapshot, error) {
	if m.GetSnapshotFn != nil {
		return m.GetSnapshotFn(ctx, profileID)
	}
	return profile.Snapshot{}, m.Err
}

// DeleteProfile implements service.ProfileService
func (m *MockProfileService) DeleteProfile(ctx context.Context, profileID uuid.UUID) error {
	if m.DeleteProfileFn != nil {
		return m.DeleteProfileFn(ctx, profileID)
	}
	return m.Err
}

// AddAccount implements service.ProfileService
func (m *MockProfileService) AddAccount(
	ctx context.Context,
	profileID uuid.UUID,
	account domain.CreditAccount,
) (domain.CreditAccount, error) {
	if m.AddAccountFn != nil {
		return m.AddAccountFn(ctx, profileID, account)
	}
	return domain.CreditAccount{}, m.Err
}

// UpdateAccount implements service.ProfileService
func (m *MockProfileService) UpdateAccount(
	ctx context.Context,
	profileID, accountID uuid.UUID,
	patch domain.AccountPatch,
) (domain.CreditAccount, error) {
	if m.UpdateAccountFn != nil {
		return m.UpdateAccountFn(ctx, profileID, accountID, patch)
	}
	return domain.CreditAccount{}, m.Err
}

// RemoveAccount implements service.ProfileService
func (m *MockProfileService) RemoveAccount(ctx context.Context, profileID, accountID uuid.UUID) error {
	if m.RemoveAccountFn != nil {
		return m.RemoveAccountFn(ctx, profileID, accountID)
	}
	return m.Err
}

// AddInquiry implements service.ProfileService
func (m *MockProfileService) AddInquiry(
	ctx context.Context,
	profileID uuid.UUID,
	inquiry domain.CreditInquiry,
) (domain.CreditInquiry, error) {
	if m.AddInquiryFn != nil {
		return m.AddInquiryFn(ctx, profileID, inquiry)
	}
	return domain.CreditInquiry{}, m.Err
}

// RemoveInquiry implements service.ProfileService
func (m *MockProfileService) RemoveInquiry(ctx context.Context, profileID, inquiryID uuid.UUID) error {
	if m.RemoveInquiryFn != nil {
		return m.RemoveInquiryFn(ctx, profileID, inquiryID)
	}
	return m.Err
}

// SetBankruptcies implements service.ProfileService
func (m *MockProfileService) SetBankruptcies(ctx context.Context, profileID uuid.UUID, n int) error {
	if m.SetBankruptciesFn != nil {
		return m.SetBankruptciesFn(ctx, profileID, n)
	}
	return m.Err
}

// Simulate implements service.ProfileService
func (m *MockProfileService) Simulate(
	ctx context.Context,
	profileID uuid.UUID,
	action domain.SimulationAction,
) (domain.ScoreSimulation, error) {
	if m.SimulateFn != nil {
		return m.SimulateFn(ctx, profileID, action)
	}
	return domain.ScoreSimulation{}, m.Err
}

// Simulations implements service.ProfileService
func (m *MockProfileService) Simulations(ctx context.Context, profileID uuid.UUID) ([]domain.ScoreSimulation, error) {
	if m.SimulationsFn != nil {
		return m.SimulationsFn(ctx, profileID)
	}
	return nil, m.Err
}

// ResetSimulations implements service.ProfileService
func (m *MockProfileService) ResetSimulations(ctx context.Context, profileID uuid.UUID) error {
	if m.ResetSimulationsFn != nil {
		return m.ResetSimulationsFn(ctx, profileID)
	}
	return m.Err
}

// ScoreHistory implements service.ProfileService
func (m *MockProfileService) ScoreHistory(
	ctx context.Context,
	profileID uuid.UUID,
	since time.Time,
	limit int,
) ([]domain.ScoreRecord, error) {
	if m.ScoreHistoryFn != nil {
		return m.ScoreHistoryFn(ctx, profileID, since, limit)
	}
	return nil, m.Err
}

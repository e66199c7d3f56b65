package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/platform/memory"
	"github.com/phrazzld/scorelab-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfile() *domain.CreditProfile {
	p := domain.NewCreditProfile()
	p.Accounts = append(p.Accounts, domain.CreditAccount{
		ID:            uuid.New(),
		Type:          domain.AccountTypeCreditCard,
		Balance:       decimal.NewFromInt(500),
		CreditLimit:   decimal.NewFromInt(2000),
		DateOpened:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		PaymentStatus: domain.PaymentStatusCurrent,
		Status:        domain.AccountStatusOpen,
		PaymentHistory: []domain.PaymentEvent{
			{Date: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), Status: domain.PaymentStatusCurrent},
		},
	})
	return p
}

func TestProfileStore_CRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewProfileStore(nil)

	p := newProfile()
	p.Aggregates.CollectionAccounts = 3
	require.NoError(t, s.Create(ctx, p))
	assert.ErrorIs(t, s.Create(ctx, p), store.ErrProfileExists)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Accounts[0].ID, got.Accounts[0].ID)
	assert.Equal(t, domain.Aggregates{}, got.Aggregates, "aggregates are not persisted")

	got.Bankruptcies = 2
	got.Accounts = nil
	require.NoError(t, s.Save(ctx, got))

	again, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Bankruptcies)
	assert.Empty(t, again.Accounts)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	assert.ErrorIs(t, s.Delete(ctx, p.ID), store.ErrProfileNotFound)
	assert.ErrorIs(t, s.Save(ctx, p), store.ErrProfileNotFound)
}

func TestProfileStore_RejectsEmptyID(t *testing.T) {
	t.Parallel()
	s := memory.NewProfileStore(nil)

	err := s.Create(context.Background(), &domain.CreditProfile{})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestProfileStore_IsolatesCallerState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewProfileStore(nil)

	p := newProfile()
	require.NoError(t, s.Create(ctx, p))

	p.Accounts[0].PaymentHistory[0].Status = domain.PaymentStatusLate90
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCurrent, got.Accounts[0].PaymentHistory[0].Status)

	got.Accounts[0].Balance = decimal.NewFromInt(9999)
	again, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, again.Accounts[0].Balance.Equal(decimal.NewFromInt(500)))
}

func TestProfileStore_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewProfileStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := newProfile()
			assert.NoError(t, s.Create(ctx, p))
			_, err := s.Get(ctx, p.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.Len())
}

func TestScoreHistoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	profiles := memory.NewProfileStore(nil)
	history := memory.NewScoreHistoryStore(profiles)

	p := newProfile()
	require.NoError(t, profiles.Create(ctx, p))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// appended out of order on purpose
	for _, m := range []int{2, 0, 1} {
		rec := domain.NewScoreRecord(p.ID, 600+m*50, "test", base.AddDate(0, m, 0))
		require.NoError(t, history.Append(ctx, rec))
	}

	all, err := history.List(ctx, p.ID, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{600, 650, 700}, []int{all[0].Score, all[1].Score, all[2].Score})

	limited, err := history.List(ctx, p.ID, base.AddDate(0, 1, 0), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 650, limited[0].Score)

	none, err := history.List(ctx, uuid.New(), time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	err = history.Append(ctx, domain.NewScoreRecord(uuid.New(), 700, "test", base))
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	require.NoError(t, history.DeleteForProfile(ctx, p.ID))
	purged, err := history.List(ctx, p.ID, time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, purged)
	assert.NoError(t, history.DeleteForProfile(ctx, uuid.New()))
}

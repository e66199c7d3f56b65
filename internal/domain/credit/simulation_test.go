package credit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *domain.CreditProfile {
	return profileWith(
		newAccount(domain.AccountTypeCreditCard, 2000, 10000, 48),
		newAccount(domain.AccountTypeCreditCard, 0, 10000, 30),
		newAccount(domain.AccountTypeAutoLoan, 12000, 0, 20),
	)
}

func TestSimulateLatePaymentCollection(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	profile := sampleProfile()

	sim := simulate(profile, domain.LatePayment{Status: domain.PaymentStatusCollection}, testNow, params)

	require.Len(t, sim.Changes, 1)
	assert.Equal(t, domain.FactorPaymentHistory, sim.Changes[0].Factor)
	assert.Equal(t, -150, sim.Changes[0].Impact)
	assert.Equal(t, clampScore(sim.BaseScore-150, params), sim.SimulatedScore)
	assert.Equal(t, "7 years", sim.RecoveryTime)
	assert.Equal(t, domain.ActionLatePayment, sim.Action)
}

func TestSimulateLatePaymentStatuses(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		status   domain.PaymentStatus
		impact   int
		recovery string
	}{
		{domain.PaymentStatusCurrent, 0, "12-24 months"},
		{domain.PaymentStatusLate30, -50, "12-24 months"},
		{domain.PaymentStatusLate60, -75, "12-24 months"},
		{domain.PaymentStatusLate90, -100, "12-24 months"},
		{domain.PaymentStatusChargeOff, -200, "7 years"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.status), func(t *testing.T) {
			t.Parallel()
			sim := simulate(sampleProfile(), domain.LatePayment{Status: tc.status}, testNow, params)
			require.Len(t, sim.Changes, 1)
			assert.Equal(t, tc.impact, sim.Changes[0].Impact)
			assert.Equal(t, tc.recovery, sim.RecoveryTime)
		})
	}
}

func TestSimulatePayDownBalance(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// 4500 / 10000 = 45%, paying 3700 leaves 8%
	profile := profileWith(newAccount(domain.AccountTypeCreditCard, 4500, 10000, 36))

	sim := simulate(profile, domain.PayDownBalance{Amount: decimal.NewFromInt(3700)}, testNow, params)

	require.Len(t, sim.Changes, 1)
	assert.Equal(t, domain.FactorUtilization, sim.Changes[0].Factor)
	assert.Equal(t, 20, sim.Changes[0].Impact)
	assert.Contains(t, sim.Changes[0].Description, "8.0%")
	assert.Equal(t, clampScore(sim.BaseScore+20, params), sim.SimulatedScore)
	assert.Equal(t, "1-3 months", sim.RecoveryTime)
}

func TestSimulatePayDownImpactTable(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name    string
		payment int64
		impact  int
	}{
		{"to 10%", 8000, 20},
		{"to 30%", 6000, 10},
		{"to 50%", 4000, 0},
		{"to 75%", 1500, -10},
		{"to 85%", 500, -20},
		{"more than owed floors at zero", 20000, 20},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			profile := profileWith(newAccount(domain.AccountTypeCreditCard, 9000, 10000, 36))
			sim := simulate(profile, domain.PayDownBalance{Amount: decimal.NewFromInt(tc.payment)}, testNow, params)
			require.Len(t, sim.Changes, 1)
			assert.Equal(t, tc.impact, sim.Changes[0].Impact)
		})
	}
}

func TestSimulateAddAccount(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	sim := simulate(sampleProfile(), domain.AddAccount{Type: domain.AccountTypeMortgage}, testNow, params)

	require.Len(t, sim.Changes, 2)
	assert.Equal(t, domain.FactorCreditMix, sim.Changes[0].Factor)
	assert.Equal(t, 10, sim.Changes[0].Impact)
	assert.Equal(t, domain.FactorNewCredit, sim.Changes[1].Factor)
	assert.Equal(t, -5, sim.Changes[1].Impact)
	assert.Equal(t, clampScore(sim.BaseScore+5, params), sim.SimulatedScore)
	assert.Equal(t, "6-12 months", sim.RecoveryTime)
}

func TestSimulateCloseAccount(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	profile := sampleProfile()
	unused := profile.Accounts[1]

	t.Run("known account is removed from both totals", func(t *testing.T) {
		t.Parallel()
		// 2000+12000 balances over 10000 limit after removing the unused card
		sim := simulate(profile, domain.CloseAccount{AccountID: unused.ID}, testNow, params)

		require.Len(t, sim.Changes, 2)
		assert.Equal(t, domain.FactorCreditAge, sim.Changes[0].Factor)
		assert.Equal(t, -5, sim.Changes[0].Impact)
		assert.Equal(t, domain.FactorUtilization, sim.Changes[1].Factor)
		assert.Equal(t, -20, sim.Changes[1].Impact)
		assert.Contains(t, sim.Changes[1].Description, "140.0%")
		assert.Equal(t, "12-24 months", sim.RecoveryTime)
	})

	t.Run("unknown account has no utilization impact", func(t *testing.T) {
		t.Parallel()
		sim := simulate(profile, domain.CloseAccount{AccountID: uuid.New()}, testNow, params)

		require.Len(t, sim.Changes, 2)
		assert.Equal(t, -5, sim.Changes[0].Impact)
		assert.Equal(t, 0, sim.Changes[1].Impact)
		assert.Equal(t, clampScore(sim.BaseScore-5, params), sim.SimulatedScore)
	})
}

func TestSimulateCollection(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	sim := simulate(sampleProfile(), domain.Collection{}, testNow, params)

	require.Len(t, sim.Changes, 1)
	assert.Equal(t, -150, sim.Changes[0].Impact)
	assert.Equal(t, "7 years", sim.RecoveryTime)
}

func TestSimulateUnknownAction(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	sim := simulate(sampleProfile(), domain.UnknownAction{Name: "refinance"}, testNow, params)

	assert.NotNil(t, sim.Changes)
	assert.Empty(t, sim.Changes)
	assert.Equal(t, sim.BaseScore, sim.SimulatedScore)
	assert.Equal(t, "varies", sim.RecoveryTime)
	assert.Equal(t, domain.ActionKind("refinance"), sim.Action)
}

func TestSimulateClampsToFloor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	bad := newAccount(domain.AccountTypeCreditCard, 9900, 10000, 2)
	bad.Status = domain.AccountStatusCollection
	bad.PaymentHistory = []domain.PaymentEvent{
		{Date: testNow, Status: domain.PaymentStatusChargeOff, Amount: decimal.Zero},
	}
	profile := profileWith(bad)
	profile.Bankruptcies = 2

	sim := simulate(profile, domain.Collection{}, testNow, params)
	assert.GreaterOrEqual(t, sim.SimulatedScore, domain.MinScore)
	assert.Equal(t, clampScore(sim.BaseScore-150, params), sim.SimulatedScore)
}

func TestSimulateDoesNotMutateProfile(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	profile := sampleProfile()
	before := profile.Clone()

	actions := []domain.SimulationAction{
		domain.PayDownBalance{Amount: decimal.NewFromInt(1000)},
		domain.AddAccount{},
		domain.CloseAccount{AccountID: profile.Accounts[0].ID},
		domain.LatePayment{Status: domain.PaymentStatusLate90},
		domain.Collection{},
	}

	base := finalScore(calculateBreakdown(profile, testNow, params).Total, params)
	for _, a := range actions {
		sim := simulate(profile, a, testNow, params)
		assert.Equal(t, base, sim.BaseScore, "every simulation starts from the live score")
	}

	assert.Equal(t, before, profile.Clone())
}

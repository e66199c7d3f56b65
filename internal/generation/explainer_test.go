package generation

import (
	"testing"

	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() profile.Snapshot {
	return profile.Snapshot{
		Profile: domain.CreditProfile{
			Accounts: []domain.CreditAccount{{}, {}},
			Aggregates: domain.Aggregates{
				TotalBalances:      decimal.NewFromInt(4500),
				TotalCreditLimit:   decimal.NewFromInt(10000),
				OldestAccountAge:   48,
				RecentLatePayments: 1,
			},
		},
		Score: 702,
		Band:  domain.ScoreBandGood,
		Factors: []domain.ScoreImpact{
			{
				Factor:               domain.FactorCreditMix,
				CurrentScore:         600,
				PotentialImprovement: 15,
				TimeToImprove:        "6-12 months",
				Actions:              []string{"Consider an installment loan"},
			},
			{
				Factor:               domain.FactorUtilization,
				CurrentScore:         549.6,
				PotentialImprovement: 40,
				TimeToImprove:        "1-3 months",
				Actions:              []string{"Pay balances below 30% of limits"},
			},
		},
	}
}

func TestNewPromptData(t *testing.T) {
	t.Parallel()

	data := NewPromptData(sampleSnapshot())

	assert.Equal(t, 702, data.Score)
	assert.Equal(t, "good", data.Band)
	assert.Equal(t, "45.0%", data.UtilizationPercent)
	assert.Equal(t, 48, data.OldestAccountAge)
	assert.Equal(t, 2, data.AccountCount)
	assert.Equal(t, 1, data.RecentLatePayments)

	require.Len(t, data.Factors, 2)
	assert.Equal(t, "Credit utilization", data.Factors[0].Name)
	assert.Equal(t, 550, data.Factors[0].CurrentScore)
	assert.Equal(t, "Credit mix", data.Factors[1].Name)
}

func TestNewPromptData_NoLimit(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot()
	snap.Profile.Aggregates.TotalCreditLimit = decimal.Zero
	snap.Band = domain.ScoreBandVeryGood

	data := NewPromptData(snap)
	assert.Equal(t, "n/a", data.UtilizationPercent)
	assert.Equal(t, "very good", data.Band)
}

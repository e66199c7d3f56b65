package credit

import (
	"testing"

	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultParamsWeightsSumToOne(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	sum := 0.0
	for _, w := range params.Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDefaultParamsCoverEveryFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for _, f := range []domain.Factor{
		domain.FactorPaymentHistory,
		domain.FactorUtilization,
		domain.FactorCreditAge,
		domain.FactorCreditMix,
		domain.FactorNewCredit,
	} {
		assert.Contains(t, params.Weights, f)
		assert.NotEmpty(t, params.Guidance[f].Actions, "guidance for %s", f)
	}
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("zero config keeps defaults", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewDefaultParams(), NewParams(ParamsConfig{}))
	})

	t.Run("overrides bounds", func(t *testing.T) {
		t.Parallel()
		params := NewParams(ParamsConfig{
			MaxBalance:        5000,
			MaxCreditLimit:    6000,
			MaxMonthlyPayment: 700,
			MaxPaymentAmount:  800,
			MaxAccountAge:     360,
		})
		assert.True(t, params.Bounds.MaxBalance.Equal(decimal.NewFromInt(5000)))
		assert.True(t, params.Bounds.MaxCreditLimit.Equal(decimal.NewFromInt(6000)))
		assert.True(t, params.Bounds.MaxMonthlyPayment.Equal(decimal.NewFromInt(700)))
		assert.True(t, params.Bounds.MaxPaymentAmount.Equal(decimal.NewFromInt(800)))
		assert.Equal(t, 360, params.Bounds.MaxAccountAge)
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()
	table := []Threshold{{UpTo: 10, Value: 1}, {UpTo: 20, Value: 2}}

	assert.Equal(t, 1.0, lookup(table, -5, 9))
	assert.Equal(t, 1.0, lookup(table, 10, 9))
	assert.Equal(t, 2.0, lookup(table, 10.01, 9))
	assert.Equal(t, 9.0, lookup(table, 21, 9))
}

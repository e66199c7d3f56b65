package credit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
)

// simulate projects the effect of one hypothetical action on the live score.
//
// The profile is never modified. Each simulation starts from the current
// score of the profile; simulations do not compound with each other.
func simulate(
	profile *domain.CreditProfile,
	action domain.SimulationAction,
	now time.Time,
	params *Params,
) domain.ScoreSimulation {
	base := finalScore(calculateBreakdown(profile, now, params).Total, params)
	changes := simulateChanges(profile, action, now, params)

	delta := 0
	for _, c := range changes {
		delta += c.Impact
	}

	return domain.ScoreSimulation{
		ID:             uuid.New(),
		Action:         action.Kind(),
		BaseScore:      base,
		SimulatedScore: clampScore(base+delta, params),
		Changes:        changes,
		RecoveryTime:   recoveryTime(action, params),
		CreatedAt:      now,
	}
}

// simulateChanges returns the ordered per-factor changes for an action.
// Unrecognized actions produce no changes.
func simulateChanges(
	profile *domain.CreditProfile,
	action domain.SimulationAction,
	now time.Time,
	params *Params,
) []domain.ScoreChange {
	agg := profile.ComputeAggregates(now)

	switch a := action.(type) {
	case domain.PayDownBalance:
		balances := agg.TotalBalances.Sub(a.Amount)
		if balances.IsNegative() {
			balances = decimal.Zero
		}
		return []domain.ScoreChange{
			utilizationChange(balances, agg.TotalCreditLimit, params),
		}

	case domain.AddAccount:
		return []domain.ScoreChange{
			{
				Factor:      domain.FactorCreditMix,
				Impact:      params.AddAccountMixGain,
				Description: "A new account would diversify your credit mix",
			},
			{
				Factor:      domain.FactorNewCredit,
				Impact:      params.AddAccountInquiryCost,
				Description: "The application would add a hard inquiry",
			},
		}

	case domain.CloseAccount:
		changes := []domain.ScoreChange{
			{
				Factor:      domain.FactorCreditAge,
				Impact:      params.CloseAccountAgeCost,
				Description: "Closing the account would lower your average account age",
			},
		}
		account, ok := profile.FindAccount(a.AccountID)
		if !ok {
			return append(changes, domain.ScoreChange{
				Factor:      domain.FactorUtilization,
				Impact:      0,
				Description: "Account not found; utilization unchanged",
			})
		}
		return append(changes, utilizationChange(
			agg.TotalBalances.Sub(account.Balance),
			agg.TotalCreditLimit.Sub(account.CreditLimit),
			params,
		))

	case domain.LatePayment:
		return []domain.ScoreChange{
			{
				Factor:      domain.FactorPaymentHistory,
				Impact:      -int(params.PaymentPenalty[a.Status]),
				Description: fmt.Sprintf("A %s payment would be reported", a.Status),
			},
		}

	case domain.Collection:
		return []domain.ScoreChange{
			{
				Factor:      domain.FactorPaymentHistory,
				Impact:      params.CollectionImpact,
				Description: "An account sent to collections would be reported",
			},
		}

	default:
		return []domain.ScoreChange{}
	}
}

// utilizationChange maps a projected utilization to its fixed point impact.
func utilizationChange(balances, limit decimal.Decimal, params *Params) domain.ScoreChange {
	pct := utilizationPercent(balances, limit)
	return domain.ScoreChange{
		Factor:      domain.FactorUtilization,
		Impact:      int(lookup(params.UtilizationImpact, pct, params.UtilizationImpactFallback)),
		Description: fmt.Sprintf("Utilization would change to %.1f%%", pct),
	}
}

// recoveryTime looks up how long the action's effect is expected to last.
func recoveryTime(action domain.SimulationAction, params *Params) string {
	if lp, ok := action.(domain.LatePayment); ok {
		if lp.Status == domain.PaymentStatusCollection || lp.Status == domain.PaymentStatusChargeOff {
			return params.SevereRecovery
		}
	}
	if _, ok := action.(domain.UnknownAction); ok {
		return params.UnknownRecovery
	}
	if rt, ok := params.RecoveryTimes[action.Kind()]; ok {
		return rt
	}
	return params.UnknownRecovery
}

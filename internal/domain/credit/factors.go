package credit

import (
	"time"

	"github.com/phrazzld/scorelab-api/internal/domain"
)

// analyzeFactors returns one ScoreImpact per factor that currently limits the
// score. Entries follow factor evaluation order, not severity.
func analyzeFactors(
	profile *domain.CreditProfile,
	now time.Time,
	params *Params,
) []domain.ScoreImpact {
	agg := profile.ComputeAggregates(now)
	breakdown := calculateBreakdown(profile, now, params)

	flagged := []domain.Factor{}

	if agg.RecentLatePayments > 0 || agg.CollectionAccounts > 0 {
		flagged = append(flagged, domain.FactorPaymentHistory)
	}
	if utilizationPercent(agg.TotalBalances, agg.TotalCreditLimit) > params.UtilizationFlagPercent {
		flagged = append(flagged, domain.FactorUtilization)
	}
	if agg.AverageAccountAge < params.AverageAgeFlagMonths {
		flagged = append(flagged, domain.FactorCreditAge)
	}
	if profile.DistinctAccountTypes() < params.MixFlagTypes {
		flagged = append(flagged, domain.FactorCreditMix)
	}
	recent := profile.InquiriesSince(now.AddDate(0, -params.InquiryFlagWindowMonths, 0))
	if recent > params.InquiryFlagCount {
		flagged = append(flagged, domain.FactorNewCredit)
	}

	impacts := make([]domain.ScoreImpact, 0, len(flagged))
	for _, f := range flagged {
		g := params.Guidance[f]
		actions := make([]string, len(g.Actions))
		copy(actions, g.Actions)

		impacts = append(impacts, domain.ScoreImpact{
			Factor:               f,
			CurrentScore:         breakdown.SubScore(f),
			PotentialImprovement: g.PotentialImprovement,
			TimeToImprove:        g.TimeToImprove,
			Actions:              actions,
		})
	}

	return impacts
}

package credit

import (
	"math"
	"time"

	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// utilizationPercent returns balances as a percentage of limit.
//
// A zero or negative limit yields 0%, which lands in the best utilization
// bucket rather than failing.
func utilizationPercent(balances, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	pct, _ := balances.Div(limit).Mul(hundred).Float64()
	return pct
}

// floorScore applies the per-factor floor. Sub-scores have no upper clamp.
func floorScore(v float64, params *Params) float64 {
	return math.Max(v, params.MinScore)
}

// calculatePaymentHistoryScore penalizes every recorded payment event by its
// status, then every account in collection and every bankruptcy.
func calculatePaymentHistoryScore(
	profile *domain.CreditProfile,
	agg domain.Aggregates,
	params *Params,
) float64 {
	score := params.PaymentBase
	for _, a := range profile.Accounts {
		for _, ev := range a.PaymentHistory {
			score -= params.PaymentPenalty[ev.Status]
		}
	}
	score -= float64(agg.CollectionAccounts) * params.CollectionPenalty
	score -= float64(agg.Bankruptcies) * params.BankruptcyPenalty

	return floorScore(score, params)
}

// calculateUtilizationScore maps total utilization to its bucket score.
func calculateUtilizationScore(agg domain.Aggregates, params *Params) float64 {
	pct := utilizationPercent(agg.TotalBalances, agg.TotalCreditLimit)
	return floorScore(lookup(params.UtilizationScores, pct, params.UtilizationFallback), params)
}

// calculateCreditAgeScore adjusts the base by the oldest account's bracket and
// penalizes profiles whose average age is under half of the oldest age.
//
// An empty profile has an oldest age of 0 and therefore takes the youngest
// bracket.
func calculateCreditAgeScore(agg domain.Aggregates, params *Params) float64 {
	score := params.AgeBase

	adjustment := params.AgeBracketFallback
	for _, b := range params.AgeBrackets {
		if agg.OldestAccountAge < b.Below {
			adjustment = b.Adjustment
			break
		}
	}
	score += adjustment

	if agg.AverageAccountAge < float64(agg.OldestAccountAge)/2 {
		score -= params.ThinAveragePenalty
	}

	return floorScore(score, params)
}

// calculateCreditMixScore scores the number of distinct account types.
func calculateCreditMixScore(profile *domain.CreditProfile, params *Params) float64 {
	n := profile.DistinctAccountTypes()
	switch {
	case n >= 4:
		n = 4
	case n < 1:
		n = 1
	}
	return floorScore(params.MixScores[n], params)
}

// calculateNewCreditScore charges the first inquiry in the lookback window a
// small cost and every later one a larger cost.
func calculateNewCreditScore(
	profile *domain.CreditProfile,
	now time.Time,
	params *Params,
) float64 {
	score := params.NewCreditBase
	n := profile.InquiriesSince(now.AddDate(0, -params.InquiryLookbackMonths, 0))
	if n > 0 {
		score -= params.FirstInquiryCost
		score -= float64(n-1) * params.FollowupInquiryCost
	}
	return floorScore(score, params)
}

// calculateBreakdown computes all five sub-scores and their weighted total.
func calculateBreakdown(
	profile *domain.CreditProfile,
	now time.Time,
	params *Params,
) domain.ScoreBreakdown {
	agg := profile.ComputeAggregates(now)

	b := domain.ScoreBreakdown{
		PaymentHistory: calculatePaymentHistoryScore(profile, agg, params),
		Utilization:    calculateUtilizationScore(agg, params),
		CreditAge:      calculateCreditAgeScore(agg, params),
		CreditMix:      calculateCreditMixScore(profile, params),
		NewCredit:      calculateNewCreditScore(profile, now, params),
	}

	b.Total = b.PaymentHistory*params.Weights[domain.FactorPaymentHistory] +
		b.Utilization*params.Weights[domain.FactorUtilization] +
		b.CreditAge*params.Weights[domain.FactorCreditAge] +
		b.CreditMix*params.Weights[domain.FactorCreditMix] +
		b.NewCredit*params.Weights[domain.FactorNewCredit]

	return b
}

// finalScore rounds the weighted total and clamps it into the score range.
// Mix and age sub-scores may exceed the maximum, so the clamp is required.
func finalScore(total float64, params *Params) int {
	return clampScore(int(math.Round(total)), params)
}

func clampScore(score int, params *Params) int {
	if score < int(params.MinScore) {
		return int(params.MinScore)
	}
	if score > int(params.MaxScore) {
		return int(params.MaxScore)
	}
	return score
}

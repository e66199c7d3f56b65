package generation

import (
	"context"
	"fmt"
	"sort"

	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Explainer produces a coaching note for a profile snapshot.
type Explainer interface {
	// Explain returns a plain-language explanation of the snapshot's score.
	Explain(ctx context.Context, snapshot profile.Snapshot) (string, error)
}

// FactorLine is one limiting factor as presented in prompts and templates.
type FactorLine struct {
	Name                 string
	CurrentScore         int
	PotentialImprovement int
	TimeToImprove        string
	Actions              []string
}

// PromptData is the view of a snapshot exposed to text templates.
type PromptData struct {
	Score              int
	Band               string
	UtilizationPercent string
	OldestAccountAge   int
	AccountCount       int
	RecentLatePayments int
	CollectionAccounts int
	Bankruptcies       int
	Factors            []FactorLine
	ValidationIssues   int
}

// NewPromptData flattens a snapshot for template rendering. Factors are
// ordered by potential improvement, largest first.
func NewPromptData(snapshot profile.Snapshot) PromptData {
	agg := snapshot.Profile.Aggregates

	utilization := "n/a"
	if agg.TotalCreditLimit.IsPositive() {
		pct, _ := agg.TotalBalances.Div(agg.TotalCreditLimit).Mul(hundred).Float64()
		utilization = fmt.Sprintf("%.1f%%", pct)
	}

	factors := make([]FactorLine, 0, len(snapshot.Factors))
	for _, f := range snapshot.Factors {
		factors = append(factors, FactorLine{
			Name:                 factorLabel(f.Factor),
			CurrentScore:         int(f.CurrentScore + 0.5),
			PotentialImprovement: f.PotentialImprovement,
			TimeToImprove:        f.TimeToImprove,
			Actions:              f.Actions,
		})
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].PotentialImprovement > factors[j].PotentialImprovement
	})

	return PromptData{
		Score:              snapshot.Score,
		Band:               bandLabel(snapshot.Band),
		UtilizationPercent: utilization,
		OldestAccountAge:   agg.OldestAccountAge,
		AccountCount:       len(snapshot.Profile.Accounts),
		RecentLatePayments: agg.RecentLatePayments,
		CollectionAccounts: agg.CollectionAccounts,
		Bankruptcies:       agg.Bankruptcies,
		Factors:            factors,
		ValidationIssues:   len(snapshot.ValidationErrors),
	}
}

func factorLabel(f domain.Factor) string {
	switch f {
	case domain.FactorPaymentHistory:
		return "Payment history"
	case domain.FactorUtilization:
		return "Credit utilization"
	case domain.FactorCreditAge:
		return "Length of credit history"
	case domain.FactorCreditMix:
		return "Credit mix"
	case domain.FactorNewCredit:
		return "New credit"
	default:
		return string(f)
	}
}

func bandLabel(b domain.ScoreBand) string {
	switch b {
	case domain.ScoreBandVeryGood:
		return "very good"
	default:
		return string(b)
	}
}

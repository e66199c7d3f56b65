package domain

import (
	"time"

	"github.com/google/uuid"
)

// Score bounds shared by the calculator and the simulation engine.
const (
	MinScore = 300
	MaxScore = 850
)

// Factor names one of the five weighted components of the score.
type Factor string

// Score factors, in evaluation order
const (
	FactorPaymentHistory Factor = "payment_history"
	FactorUtilization    Factor = "utilization"
	FactorCreditAge      Factor = "credit_age"
	FactorCreditMix      Factor = "credit_mix"
	FactorNewCredit      Factor = "new_credit"
)

// ScoreBand buckets a numeric score into a named tier.
type ScoreBand string

// Score bands from lowest to highest
const (
	ScoreBandPoor      ScoreBand = "poor"
	ScoreBandFair      ScoreBand = "fair"
	ScoreBandGood      ScoreBand = "good"
	ScoreBandVeryGood  ScoreBand = "very_good"
	ScoreBandExcellent ScoreBand = "excellent"
)

// BandForScore maps a rounded score to its band.
func BandForScore(score int) ScoreBand {
	switch {
	case score >= 800:
		return ScoreBandExcellent
	case score >= 740:
		return ScoreBandVeryGood
	case score >= 670:
		return ScoreBandGood
	case score >= 580:
		return ScoreBandFair
	default:
		return ScoreBandPoor
	}
}

// ScoreBreakdown exposes the five sub-scores behind a score.
// Total is the unrounded weighted sum before clamping.
type ScoreBreakdown struct {
	PaymentHistory float64 `json:"payment_history"`
	Utilization    float64 `json:"utilization"`
	CreditAge      float64 `json:"credit_age"`
	CreditMix      float64 `json:"credit_mix"`
	NewCredit      float64 `json:"new_credit"`
	Total          float64 `json:"total"`
}

// SubScore returns the sub-score for a factor, or 0 for an unknown factor.
func (b ScoreBreakdown) SubScore(f Factor) float64 {
	switch f {
	case FactorPaymentHistory:
		return b.PaymentHistory
	case FactorUtilization:
		return b.Utilization
	case FactorCreditAge:
		return b.CreditAge
	case FactorCreditMix:
		return b.CreditMix
	case FactorNewCredit:
		return b.NewCredit
	default:
		return 0
	}
}

// ScoreImpact is one row of factor analysis: a factor that currently limits the
// score together with its static remediation.
type ScoreImpact struct {
	Factor               Factor   `json:"factor"`
	CurrentScore         float64  `json:"current_score"`
	PotentialImprovement int      `json:"potential_improvement"`
	TimeToImprove        string   `json:"time_to_improve"`
	Actions              []string `json:"actions"`
}

// ScoreRecord is one persisted point in a profile's score history.
type ScoreRecord struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profile_id"`
	Score      int       `json:"score"`
	Band       ScoreBand `json:"band"`
	Reason     string    `json:"reason"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewScoreRecord builds a history point for the given profile and score,
// recorded at recordedAt.
func NewScoreRecord(profileID uuid.UUID, score int, reason string, recordedAt time.Time) ScoreRecord {
	return ScoreRecord{
		ID:         uuid.New(),
		ProfileID:  profileID,
		Score:      score,
		Band:       BandForScore(score),
		Reason:     reason,
		RecordedAt: recordedAt.UTC(),
	}
}

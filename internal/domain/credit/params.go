package credit

import (
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Threshold maps an upper bound (inclusive) to a value. Tables of thresholds
// are evaluated in ascending order; the first bound that is >= the input wins.
type Threshold struct {
	UpTo  float64
	Value float64
}

// AgeBracket maps an exclusive upper bound in months to a score adjustment.
type AgeBracket struct {
	Below      int
	Adjustment float64
}

// FactorGuidance is the static remediation attached to a flagged factor.
type FactorGuidance struct {
	PotentialImprovement int
	TimeToImprove        string
	Actions              []string
}

// Bounds holds the inclusive limits used by the advisory range checks.
type Bounds struct {
	MaxBalance        decimal.Decimal
	MaxCreditLimit    decimal.Decimal
	MaxMonthlyPayment decimal.Decimal
	MaxPaymentAmount  decimal.Decimal
	MaxAccountAge     int
}

// Params defines all tunable tables of the scoring model
type Params struct {
	// Score bounds
	MinScore float64
	MaxScore float64

	// Final weighting of the five sub-scores
	Weights map[domain.Factor]float64

	// Payment history
	PaymentBase           float64
	PaymentPenalty        map[domain.PaymentStatus]float64
	CollectionPenalty     float64
	BankruptcyPenalty     float64
	InquiryLookbackMonths int

	// Utilization
	UtilizationScores         []Threshold
	UtilizationFallback       float64
	UtilizationImpact         []Threshold
	UtilizationImpactFallback float64

	// Credit age
	AgeBase             float64
	AgeBrackets         []AgeBracket
	AgeBracketFallback  float64
	ThinAveragePenalty  float64
	CloseAccountAgeCost int

	// Credit mix, keyed by distinct type count (4 means "4 or more")
	MixScores map[int]float64

	// New credit
	NewCreditBase       float64
	FirstInquiryCost    float64
	FollowupInquiryCost float64

	// Simulation flat impacts
	AddAccountMixGain     int
	AddAccountInquiryCost int
	CollectionImpact      int

	// Factor analysis triggers
	UtilizationFlagPercent  float64
	AverageAgeFlagMonths    float64
	MixFlagTypes            int
	InquiryFlagCount        int
	InquiryFlagWindowMonths int
	Guidance                map[domain.Factor]FactorGuidance

	// Recovery time lookup
	RecoveryTimes   map[domain.ActionKind]string
	SevereRecovery  string
	UnknownRecovery string

	Bounds Bounds
}

// ParamsConfig allows overriding the validation bounds when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	MaxBalance        float64
	MaxCreditLimit    float64
	MaxMonthlyPayment float64
	MaxPaymentAmount  float64
	MaxAccountAge     int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinScore: domain.MinScore,
		MaxScore: domain.MaxScore,

		Weights: map[domain.Factor]float64{
			domain.FactorPaymentHistory: 0.35,
			domain.FactorUtilization:    0.30,
			domain.FactorCreditAge:      0.15,
			domain.FactorCreditMix:      0.10,
			domain.FactorNewCredit:      0.10,
		},

		PaymentBase: 850,
		PaymentPenalty: map[domain.PaymentStatus]float64{
			domain.PaymentStatusCurrent:    0,
			domain.PaymentStatusLate30:     50,
			domain.PaymentStatusLate60:     75,
			domain.PaymentStatusLate90:     100,
			domain.PaymentStatusCollection: 150,
			domain.PaymentStatusChargeOff:  200,
		},
		CollectionPenalty:     150,
		BankruptcyPenalty:     200,
		InquiryLookbackMonths: 12,

		UtilizationScores: []Threshold{
			{UpTo: 10, Value: 850},
			{UpTo: 30, Value: 750},
			{UpTo: 50, Value: 650},
			{UpTo: 75, Value: 550},
		},
		UtilizationFallback: 350,
		UtilizationImpact: []Threshold{
			{UpTo: 10, Value: 20},
			{UpTo: 30, Value: 10},
			{UpTo: 50, Value: 0},
			{UpTo: 75, Value: -10},
		},
		UtilizationImpactFallback: -20,

		AgeBase: 850,
		AgeBrackets: []AgeBracket{
			{Below: 6, Adjustment: -20},
			{Below: 12, Adjustment: -10},
			{Below: 24, Adjustment: 0},
			{Below: 60, Adjustment: 10},
		},
		AgeBracketFallback:  20,
		ThinAveragePenalty:  20,
		CloseAccountAgeCost: -5,

		MixScores: map[int]float64{
			1: 540,
			2: 650,
			3: 760,
			4: 870,
		},

		NewCreditBase:       850,
		FirstInquiryCost:    5,
		FollowupInquiryCost: 10,

		AddAccountMixGain:     10,
		AddAccountInquiryCost: -5,
		CollectionImpact:      -150,

		UtilizationFlagPercent:  30,
		AverageAgeFlagMonths:    24,
		MixFlagTypes:            3,
		InquiryFlagCount:        2,
		InquiryFlagWindowMonths: 6,
		Guidance: map[domain.Factor]FactorGuidance{
			domain.FactorPaymentHistory: {
				PotentialImprovement: 50,
				TimeToImprove:        "12-24 months",
				Actions: []string{
					"Set up automatic payments for at least the minimum due",
					"Bring any past-due accounts current",
					"Contact creditors about goodwill adjustments",
				},
			},
			domain.FactorUtilization: {
				PotentialImprovement: 40,
				TimeToImprove:        "1-3 months",
				Actions: []string{
					"Pay down revolving balances below 30% of limits",
					"Request a credit limit increase",
					"Make payments before the statement closing date",
				},
			},
			domain.FactorCreditAge: {
				PotentialImprovement: 20,
				TimeToImprove:        "12+ months",
				Actions: []string{
					"Keep your oldest accounts open",
					"Avoid opening several new accounts at once",
				},
			},
			domain.FactorCreditMix: {
				PotentialImprovement: 15,
				TimeToImprove:        "6-12 months",
				Actions: []string{
					"Consider adding an installment loan if you need one",
					"Do not open accounts only to improve your mix",
				},
			},
			domain.FactorNewCredit: {
				PotentialImprovement: 10,
				TimeToImprove:        "6-12 months",
				Actions: []string{
					"Limit new credit applications",
					"Rate-shop for loans within a short window",
				},
			},
		},

		RecoveryTimes: map[domain.ActionKind]string{
			domain.ActionPayDownBalance: "1-3 months",
			domain.ActionAddAccount:     "6-12 months",
			domain.ActionCloseAccount:   "12-24 months",
			domain.ActionLatePayment:    "12-24 months",
			domain.ActionCollection:     "7 years",
		},
		SevereRecovery:  "7 years",
		UnknownRecovery: "varies",

		Bounds: Bounds{
			MaxBalance:        decimal.NewFromInt(1_000_000),
			MaxCreditLimit:    decimal.NewFromInt(1_000_000),
			MaxMonthlyPayment: decimal.NewFromInt(50_000),
			MaxPaymentAmount:  decimal.NewFromInt(1_000_000),
			MaxAccountAge:     600,
		},
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	// Override validation bounds if provided
	if config.MaxBalance > 0 {
		params.Bounds.MaxBalance = decimal.NewFromFloat(config.MaxBalance)
	}
	if config.MaxCreditLimit > 0 {
		params.Bounds.MaxCreditLimit = decimal.NewFromFloat(config.MaxCreditLimit)
	}
	if config.MaxMonthlyPayment > 0 {
		params.Bounds.MaxMonthlyPayment = decimal.NewFromFloat(config.MaxMonthlyPayment)
	}
	if config.MaxPaymentAmount > 0 {
		params.Bounds.MaxPaymentAmount = decimal.NewFromFloat(config.MaxPaymentAmount)
	}
	if config.MaxAccountAge > 0 {
		params.Bounds.MaxAccountAge = config.MaxAccountAge
	}

	return params
}

// lookup returns the value of the first threshold whose bound is >= v, or
// fallback when v exceeds every bound.
func lookup(table []Threshold, v, fallback float64) float64 {
	for _, t := range table {
		if v <= t.UpTo {
			return t.Value
		}
	}
	return fallback
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProfileIDEmpty is returned when a profile is missing its identifier.
var ErrProfileIDEmpty = errors.New("profile ID cannot be empty")

// Aggregates are the derived totals of a CreditProfile. They are always a pure
// function of the profile's accounts, inquiries and bankruptcy counter at a
// reference time and are never edited directly.
type Aggregates struct {
	TotalBalances      decimal.Decimal `json:"total_balances"`
	TotalCreditLimit   decimal.Decimal `json:"total_credit_limit"`
	OldestAccountAge   int             `json:"oldest_account_age_months"`
	AverageAccountAge  float64         `json:"average_account_age_months"`
	RecentLatePayments int             `json:"recent_late_payments"`
	CollectionAccounts int             `json:"collection_accounts"`
	Bankruptcies       int             `json:"bankruptcies"`
}

// CreditProfile is the aggregate root holding a user's simulated credit file.
type CreditProfile struct {
	ID           uuid.UUID       `json:"id"`
	Accounts     []CreditAccount `json:"accounts"`
	Inquiries    []CreditInquiry `json:"inquiries"`
	Bankruptcies int             `json:"bankruptcies"`
	Aggregates   Aggregates      `json:"aggregates"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewCreditProfile creates an empty profile with a fresh identifier.
func NewCreditProfile() *CreditProfile {
	now := time.Now().UTC()
	return &CreditProfile{
		ID:        uuid.New(),
		Accounts:  []CreditAccount{},
		Inquiries: []CreditInquiry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the structural integrity of the profile (not the advisory
// range checks, which never block).
func (p *CreditProfile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProfileIDEmpty
	}
	return nil
}

// Clone returns a deep copy of the profile. Mutating the copy never affects p.
func (p CreditProfile) Clone() CreditProfile {
	c := p
	c.Accounts = make([]CreditAccount, len(p.Accounts))
	for i, a := range p.Accounts {
		c.Accounts[i] = a.Clone()
	}
	c.Inquiries = make([]CreditInquiry, len(p.Inquiries))
	copy(c.Inquiries, p.Inquiries)
	return c
}

// FindAccount returns the account with the given id and whether it exists.
func (p *CreditProfile) FindAccount(id uuid.UUID) (CreditAccount, bool) {
	for _, a := range p.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return CreditAccount{}, false
}

// ComputeAggregates derives the profile totals relative to now.
// With no accounts, ages are 0.
func (p *CreditProfile) ComputeAggregates(now time.Time) Aggregates {
	agg := Aggregates{
		TotalBalances:    decimal.Zero,
		TotalCreditLimit: decimal.Zero,
		Bankruptcies:     p.Bankruptcies,
	}

	lateCutoff := now.AddDate(-1, 0, 0)
	totalAge := 0
	for i, a := range p.Accounts {
		agg.TotalBalances = agg.TotalBalances.Add(a.Balance)
		agg.TotalCreditLimit = agg.TotalCreditLimit.Add(a.CreditLimit)

		age := MonthsBetween(a.DateOpened, now)
		totalAge += age
		if i == 0 || age > agg.OldestAccountAge {
			agg.OldestAccountAge = age
		}

		if a.Status == AccountStatusCollection {
			agg.CollectionAccounts++
		}

		for _, ev := range a.PaymentHistory {
			if ev.Status.IsLate() && !ev.Date.Before(lateCutoff) {
				agg.RecentLatePayments++
			}
		}
	}

	if len(p.Accounts) > 0 {
		agg.AverageAccountAge = float64(totalAge) / float64(len(p.Accounts))
	}

	return agg
}

// DistinctAccountTypes counts the different account types present.
func (p *CreditProfile) DistinctAccountTypes() int {
	seen := make(map[AccountType]struct{}, len(p.Accounts))
	for _, a := range p.Accounts {
		seen[a.Type] = struct{}{}
	}
	return len(seen)
}

// InquiriesSince counts inquiries dated on or after cutoff.
func (p *CreditProfile) InquiriesSince(cutoff time.Time) int {
	n := 0
	for _, inq := range p.Inquiries {
		if !inq.Date.Before(cutoff) {
			n++
		}
	}
	return n
}

// MonthsBetween returns the number of whole calendar months elapsed from
// from to to. It is negative when from is after to and 0 for a zero from.
// Both times are compared in UTC so the result does not depend on their
// locations.
func MonthsBetween(from, to time.Time) int {
	if from.IsZero() {
		return 0
	}
	from, to = from.UTC(), to.UTC()
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months > 0 && to.Day() < from.Day() {
		months--
	} else if months < 0 && to.Day() > from.Day() {
		months++
	}
	return months
}

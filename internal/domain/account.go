package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of credit line an account represents.
type AccountType string

// Supported account types
const (
	AccountTypeCreditCard   AccountType = "credit_card"
	AccountTypePersonalLoan AccountType = "personal_loan"
	AccountTypeAutoLoan     AccountType = "auto_loan"
	AccountTypeMortgage     AccountType = "mortgage"
	AccountTypeStudentLoan  AccountType = "student_loan"
	AccountTypeRetailCard   AccountType = "retail_card"
)

// PaymentStatus is the delinquency state of an account or of a single payment event.
type PaymentStatus string

// Possible payment status values, ordered from best to worst
const (
	PaymentStatusCurrent    PaymentStatus = "current"
	PaymentStatusLate30     PaymentStatus = "late_30"
	PaymentStatusLate60     PaymentStatus = "late_60"
	PaymentStatusLate90     PaymentStatus = "late_90"
	PaymentStatusCollection PaymentStatus = "collection"
	PaymentStatusChargeOff  PaymentStatus = "charge_off"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// Possible account status values
const (
	AccountStatusOpen       AccountStatus = "open"
	AccountStatusClosed     AccountStatus = "closed"
	AccountStatusDelinquent AccountStatus = "delinquent"
	AccountStatusCollection AccountStatus = "collection"
)

// Account-specific errors, wrapped by the ValidationError reported for the
// offending field.
var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidAccountStatus = errors.New("invalid account status")
)

// PaymentEvent is one entry in an account's payment history.
type PaymentEvent struct {
	Date   time.Time       `json:"date"`
	Status PaymentStatus   `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

// CreditAccount is one simulated credit line owned by a CreditProfile.
// CreditLimit is stored for every account type but only matters for revolving lines.
type CreditAccount struct {
	ID             uuid.UUID       `json:"id"`
	Type           AccountType     `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	DateOpened     time.Time       `json:"date_opened"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	Status         AccountStatus   `json:"status"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	PaymentHistory []PaymentEvent  `json:"payment_history"`
}

// Clone returns a deep copy of the account. The payment history slice is not shared.
func (a CreditAccount) Clone() CreditAccount {
	c := a
	if a.PaymentHistory != nil {
		c.PaymentHistory = make([]PaymentEvent, len(a.PaymentHistory))
		copy(c.PaymentHistory, a.PaymentHistory)
	}
	return c
}

// AccountPatch carries a shallow partial update for a CreditAccount.
// Nil fields are left untouched; a non-nil PaymentHistory replaces the whole history.
type AccountPatch struct {
	Type           *AccountType     `json:"type,omitempty"`
	Balance        *decimal.Decimal `json:"balance,omitempty"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
	DateOpened     *time.Time       `json:"date_opened,omitempty"`
	PaymentStatus  *PaymentStatus   `json:"payment_status,omitempty"`
	Status         *AccountStatus   `json:"status,omitempty"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment,omitempty"`
	PaymentHistory []PaymentEvent   `json:"payment_history,omitempty"`
}

// Apply merges the patch into the account and returns the result.
// The identifier is never changed.
func (p AccountPatch) Apply(a CreditAccount) CreditAccount {
	out := a.Clone()
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Balance != nil {
		out.Balance = *p.Balance
	}
	if p.CreditLimit != nil {
		out.CreditLimit = *p.CreditLimit
	}
	if p.DateOpened != nil {
		out.DateOpened = *p.DateOpened
	}
	if p.PaymentStatus != nil {
		out.PaymentStatus = *p.PaymentStatus
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.MonthlyPayment != nil {
		out.MonthlyPayment = *p.MonthlyPayment
	}
	if p.PaymentHistory != nil {
		out.PaymentHistory = make([]PaymentEvent, len(p.PaymentHistory))
		copy(out.PaymentHistory, p.PaymentHistory)
	}
	return out
}

// IsValid reports whether t is one of the supported account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCreditCard,
		AccountTypePersonalLoan,
		AccountTypeAutoLoan,
		AccountTypeMortgage,
		AccountTypeStudentLoan,
		AccountTypeRetailCard:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is one of the supported payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusCurrent,
		PaymentStatusLate30,
		PaymentStatusLate60,
		PaymentStatusLate90,
		PaymentStatusCollection,
		PaymentStatusChargeOff:
		return true
	default:
		return false
	}
}

// IsLate reports whether the status represents any missed payment.
func (s PaymentStatus) IsLate() bool {
	return s.IsValid() && s != PaymentStatusCurrent
}

// IsValid reports whether s is one of the supported account statuses.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusOpen,
		AccountStatusClosed,
		AccountStatusDelinquent,
		AccountStatusCollection:
		return true
	default:
		return false
	}
}

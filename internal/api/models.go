package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/shopspring/decimal"
)

// Date accepts either an RFC 3339 timestamp or a plain YYYY-MM-DD date.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("date %q is neither RFC 3339 nor YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d *Date) value() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

// SessionResponse is returned by POST /api/sessions.
type SessionResponse struct {
	ProfileID uuid.UUID        `json:"profile_id"`
	Token     string           `json:"token"`
	Snapshot  profile.Snapshot `json:"snapshot"`
}

// PaymentEventRequest is one payment history entry in an account request.
type PaymentEventRequest struct {
	Date   *Date           `json:"date"   validate:"required"`
	Status string          `json:"status" validate:"required,oneof=current late_30 late_60 late_90 collection charge_off"`
	Amount decimal.Decimal `json:"amount"`
}

// AccountRequest is the body of POST /api/profile/accounts.
// Empty statuses default to open and current.
type AccountRequest struct {
	Type           string                `json:"type"            validate:"required,oneof=credit_card personal_loan auto_loan mortgage student_loan retail_card"`
	Balance        decimal.Decimal       `json:"balance"`
	CreditLimit    decimal.Decimal       `json:"credit_limit"`
	DateOpened     *Date                 `json:"date_opened"     validate:"required"`
	PaymentStatus  string                `json:"payment_status"  validate:"omitempty,oneof=current late_30 late_60 late_90 collection charge_off"`
	Status         string                `json:"status"          validate:"omitempty,oneof=open closed delinquent collection"`
	MonthlyPayment decimal.Decimal       `json:"monthly_payment"`
	PaymentHistory []PaymentEventRequest `json:"payment_history" validate:"omitempty,dive"`
}

// ToDomain converts the request into an account without an ID.
func (r AccountRequest) ToDomain() domain.CreditAccount {
	return domain.CreditAccount{
		Type:           domain.AccountType(r.Type),
		Balance:        r.Balance,
		CreditLimit:    r.CreditLimit,
		DateOpened:     r.DateOpened.value(),
		PaymentStatus:  domain.PaymentStatus(r.PaymentStatus),
		Status:         domain.AccountStatus(r.Status),
		MonthlyPayment: r.MonthlyPayment,
		PaymentHistory: paymentEvents(r.PaymentHistory),
	}
}

// AccountPatchRequest is the body of PATCH /api/profile/accounts/{id}.
// Absent fields are left unchanged.
type AccountPatchRequest struct {
	Type           *string               `json:"type"            validate:"omitempty,oneof=credit_card personal_loan auto_loan mortgage student_loan retail_card"`
	Balance        *decimal.Decimal      `json:"balance"`
	CreditLimit    *decimal.Decimal      `json:"credit_limit"`
	DateOpened     *Date                 `json:"date_opened"`
	PaymentStatus  *string               `json:"payment_status"  validate:"omitempty,oneof=current late_30 late_60 late_90 collection charge_off"`
	Status         *string               `json:"status"          validate:"omitempty,oneof=open closed delinquent collection"`
	MonthlyPayment *decimal.Decimal      `json:"monthly_payment"`
	PaymentHistory []PaymentEventRequest `json:"payment_history" validate:"omitempty,dive"`
}

// ToDomain converts the request into a domain patch.
func (r AccountPatchRequest) ToDomain() domain.AccountPatch {
	patch := domain.AccountPatch{
		Balance:        r.Balance,
		CreditLimit:    r.CreditLimit,
		MonthlyPayment: r.MonthlyPayment,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		patch.Type = &t
	}
	if r.DateOpened != nil {
		d := r.DateOpened.Time
		patch.DateOpened = &d
	}
	if r.PaymentStatus != nil {
		s := domain.PaymentStatus(*r.PaymentStatus)
		patch.PaymentStatus = &s
	}
	if r.Status != nil {
		s := domain.AccountStatus(*r.Status)
		patch.Status = &s
	}
	if r.PaymentHistory != nil {
		patch.PaymentHistory = paymentEvents(r.PaymentHistory)
	}
	return patch
}

func paymentEvents(in []PaymentEventRequest) []domain.PaymentEvent {
	if in == nil {
		return nil
	}
	out := make([]domain.PaymentEvent, len(in))
	for i, ev := range in {
		out[i] = domain.PaymentEvent{
			Date:   ev.Date.value(),
			Status: domain.PaymentStatus(ev.Status),
			Amount: ev.Amount,
		}
	}
	return out
}

// InquiryRequest is the body of POST /api/profile/inquiries.
type InquiryRequest struct {
	Type     string `json:"type"     validate:"required,oneof=hard soft"`
	Date     *Date  `json:"date"     validate:"required"`
	Creditor string `json:"creditor" validate:"max=200"`
	Purpose  string `json:"purpose"  validate:"max=200"`
}

// ToDomain converts the request into an inquiry without an ID.
func (r InquiryRequest) ToDomain() domain.CreditInquiry {
	return domain.CreditInquiry{
		Type:     domain.InquiryType(r.Type),
		Date:     r.Date.value(),
		Creditor: r.Creditor,
		Purpose:  r.Purpose,
	}
}

// BankruptciesRequest is the body of PUT /api/profile/bankruptcies.
type BankruptciesRequest struct {
	Count *int `json:"count" validate:"required,min=0"`
}

// SimulationRequest is the body of POST /api/profile/simulations. Which of
// the optional fields are required depends on Action.
type SimulationRequest struct {
	Action      string           `json:"action"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	AccountType string           `json:"account_type,omitempty"`
	AccountID   *uuid.UUID       `json:"account_id,omitempty"`
	Status      string           `json:"status,omitempty"`
}

// Validate implements the request validation hook used by shared.ValidateRequest.
func (r *SimulationRequest) Validate() error {
	_, err := r.ToAction()
	return err
}

// ToAction decodes the request into a typed simulation action. Action names
// the engine does not model become domain.UnknownAction.
func (r *SimulationRequest) ToAction() (domain.SimulationAction, error) {
	switch domain.ActionKind(r.Action) {
	case "":
		return nil, domain.NewValidationError("action", "is required", domain.ErrInvalidAction)

	case domain.ActionPayDownBalance:
		if r.Amount == nil {
			return nil, domain.NewValidationError("amount", "is required for pay_down_balance", domain.ErrInvalidAction)
		}
		if r.Amount.IsNegative() {
			return nil, domain.NewValidationError("amount", "must not be negative", domain.ErrInvalidAction)
		}
		return domain.PayDownBalance{Amount: *r.Amount}, nil

	case domain.ActionAddAccount:
		t := domain.AccountType(r.AccountType)
		if t != "" && !t.IsValid() {
			return nil, domain.NewValidationError("account_type", "is not a supported account type", domain.ErrInvalidAction)
		}
		return domain.AddAccount{Type: t}, nil

	case domain.ActionCloseAccount:
		if r.AccountID == nil || *r.AccountID == uuid.Nil {
			return nil, domain.NewValidationError("account_id", "is required for close_account", domain.ErrInvalidAction)
		}
		return domain.CloseAccount{AccountID: *r.AccountID}, nil

	case domain.ActionLatePayment:
		s := domain.PaymentStatus(r.Status)
		if !s.IsLate() {
			return nil, domain.NewValidationError("status", "must be a late payment status", domain.ErrInvalidAction)
		}
		return domain.LatePayment{Status: s}, nil

	case domain.ActionCollection:
		return domain.Collection{}, nil

	default:
		return domain.UnknownAction{Name: r.Action}, nil
	}
}

// SimulationListResponse wraps the session's simulation history.
type SimulationListResponse struct {
	Simulations []domain.ScoreSimulation `json:"simulations"`
}

// ScoreHistoryResponse wraps persisted score points.
type ScoreHistoryResponse struct {
	Records []domain.ScoreRecord `json:"records"`
}

// ExplanationResponse carries the coaching note for the current snapshot.
type ExplanationResponse struct {
	Score       int              `json:"score"`
	Band        domain.ScoreBand `json:"band"`
	Explanation string           `json:"explanation"`
}

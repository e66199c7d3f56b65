package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActionKind names a hypothetical action the simulation engine understands.
type ActionKind string

// Known simulation actions
const (
	ActionPayDownBalance ActionKind = "pay_down_balance"
	ActionAddAccount     ActionKind = "add_account"
	ActionCloseAccount   ActionKind = "close_account"
	ActionLatePayment    ActionKind = "late_payment"
	ActionCollection     ActionKind = "collection"
)

// SimulationAction is the closed set of hypothetical actions. Every variant
// carries its own typed payload.
type SimulationAction interface {
	Kind() ActionKind
	simulationAction()
}

// PayDownBalance reduces total balances by Amount.
type PayDownBalance struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddAccount opens a new account of the given type.
type AddAccount struct {
	Type AccountType `json:"account_type,omitempty"`
}

// CloseAccount closes an existing account.
type CloseAccount struct {
	AccountID uuid.UUID `json:"account_id"`
}

// LatePayment records a missed payment with the given delinquency status.
type LatePayment struct {
	Status PaymentStatus `json:"status"`
}

// Collection sends an account to collections.
type Collection struct{}

// UnknownAction is any action kind the engine does not model. It simulates to
// zero changes with a "varies" recovery time.
type UnknownAction struct {
	Name string `json:"name"`
}

func (PayDownBalance) Kind() ActionKind  { return ActionPayDownBalance }
func (AddAccount) Kind() ActionKind      { return ActionAddAccount }
func (CloseAccount) Kind() ActionKind    { return ActionCloseAccount }
func (LatePayment) Kind() ActionKind     { return ActionLatePayment }
func (Collection) Kind() ActionKind      { return ActionCollection }
func (u UnknownAction) Kind() ActionKind { return ActionKind(u.Name) }

func (PayDownBalance) simulationAction() {}
func (AddAccount) simulationAction()     {}
func (CloseAccount) simulationAction()   {}
func (LatePayment) simulationAction()    {}
func (Collection) simulationAction()     {}
func (UnknownAction) simulationAction()  {}

// ScoreChange is one signed, per-factor contribution to a simulated score.
type ScoreChange struct {
	Factor      Factor `json:"factor"`
	Impact      int    `json:"impact"`
	Description string `json:"description"`
}

// ScoreSimulation is the result of one "what if" query against a profile.
type ScoreSimulation struct {
	ID             uuid.UUID     `json:"id"`
	Action         ActionKind    `json:"action"`
	BaseScore      int           `json:"base_score"`
	SimulatedScore int           `json:"simulated_score"`
	Changes        []ScoreChange `json:"changes"`
	RecoveryTime   string        `json:"recovery_time"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Delta returns the signed difference between simulated and base score.
func (s ScoreSimulation) Delta() int {
	return s.SimulatedScore - s.BaseScore
}

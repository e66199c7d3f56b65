package profile

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/domain/credit"
)

// ErrInvalidProfile is returned by SimulateAction when the controller blocks
// simulations on profiles that have validation errors.
var ErrInvalidProfile = errors.New("profile has validation errors")

// Snapshot is a consistent, read-only view of everything the controller derives.
type Snapshot struct {
	Profile          domain.CreditProfile     `json:"profile"`
	Score            int                      `json:"score"`
	Band             domain.ScoreBand         `json:"band"`
	Breakdown        domain.ScoreBreakdown    `json:"breakdown"`
	Factors          []domain.ScoreImpact     `json:"factors"`
	ValidationErrors []domain.ValidationError `json:"validation_errors"`
	Simulations      []domain.ScoreSimulation `json:"simulations"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the reference clock used for ages and lookback windows.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithScoring replaces the default credit scoring service.
func WithScoring(svc credit.Service) Option {
	return func(c *Controller) {
		c.scoring = svc
	}
}

// WithBlockInvalidSimulations makes SimulateAction refuse to run while the
// profile has validation errors. By default simulations only carry the flag.
func WithBlockInvalidSimulations(block bool) Option {
	return func(c *Controller) {
		c.blockInvalid = block
	}
}

// Controller owns one mutable credit profile.
//
// Every mutating command runs the recompute pipeline (aggregates, validation,
// score, factors) under the write lock before it returns, so readers never
// observe a partially updated profile. A Controller is safe for concurrent use.
type Controller struct {
	mu           sync.RWMutex
	scoring      credit.Service
	now          func() time.Time
	blockInvalid bool

	profile     domain.CreditProfile
	computedAt  time.Time
	score       int
	breakdown   domain.ScoreBreakdown
	factors     []domain.ScoreImpact
	validation  []domain.ValidationError
	simulations []domain.ScoreSimulation
}

// New creates a controller around a fresh empty profile.
func New(opts ...Option) (*Controller, error) {
	return Load(*domain.NewCreditProfile(), opts...)
}

// Load creates a controller around an existing profile, typically one read
// back from storage. The profile is copied.
func Load(p domain.CreditProfile, opts ...Option) (*Controller, error) {
	c := &Controller{
		scoring:     credit.NewDefaultService(),
		now:         func() time.Time { return time.Now().UTC() },
		profile:     p.Clone(),
		simulations: []domain.ScoreSimulation{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.profile.Validate(); err != nil {
		return nil, err
	}
	if c.profile.Accounts == nil {
		c.profile.Accounts = []domain.CreditAccount{}
	}
	if c.profile.Inquiries == nil {
		c.profile.Inquiries = []domain.CreditInquiry{}
	}

	if err := c.recompute(c.now()); err != nil {
		return nil, err
	}
	return c, nil
}

// AddAccount stores a copy of account under a freshly generated ID and returns
// the stored account. Any caller-supplied ID is ignored. Empty statuses
// default to open and current.
func (c *Controller) AddAccount(account domain.CreditAccount) (domain.CreditAccount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a := account.Clone()
	a.ID = uuid.New()
	if a.Status == "" {
		a.Status = domain.AccountStatusOpen
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = domain.PaymentStatusCurrent
	}

	c.profile.Accounts = append(c.profile.Accounts, a)
	return a, c.touch()
}

// RemoveAccount deletes the account with the given ID. It reports whether an
// account was removed; an unknown ID leaves all state untouched.
func (c *Controller) RemoveAccount(id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.profile.Accounts {
		if a.ID == id {
			c.profile.Accounts = append(c.profile.Accounts[:i:i], c.profile.Accounts[i+1:]...)
			return true, c.touch()
		}
	}
	return false, nil
}

// UpdateAccount shallow-merges patch into the account with the given ID.
// It reports false and changes nothing when the ID is unknown.
func (c *Controller) UpdateAccount(
	id uuid.UUID,
	patch domain.AccountPatch,
) (domain.CreditAccount, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.profile.Accounts {
		if a.ID == id {
			updated := patch.Apply(a)
			c.profile.Accounts[i] = updated
			return updated.Clone(), true, c.touch()
		}
	}
	return domain.CreditAccount{}, false, nil
}

// AddInquiry stores inquiry under a freshly generated ID and returns it.
func (c *Controller) AddInquiry(inquiry domain.CreditInquiry) (domain.CreditInquiry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inquiry.ID = uuid.New()
	c.profile.Inquiries = append(c.profile.Inquiries, inquiry)
	return inquiry, c.touch()
}

// RemoveInquiry deletes the inquiry with the given ID and reports whether it existed.
func (c *Controller) RemoveInquiry(id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, inq := range c.profile.Inquiries {
		if inq.ID == id {
			c.profile.Inquiries = append(c.profile.Inquiries[:i:i], c.profile.Inquiries[i+1:]...)
			return true, c.touch()
		}
	}
	return false, nil
}

// SetBankruptcies replaces the public-record bankruptcy counter.
func (c *Controller) SetBankruptcies(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profile.Bankruptcies = n
	return c.touch()
}

// SimulateAction projects action against the current profile and appends the
// result to the simulation history. The projection uses the reference time of
// the last recompute, so BaseScore always equals Score. The profile itself is
// never changed.
func (c *Controller) SimulateAction(action domain.SimulationAction) (domain.ScoreSimulation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blockInvalid && len(c.validation) > 0 {
		return domain.ScoreSimulation{}, ErrInvalidProfile
	}

	sim, err := c.scoring.Simulate(&c.profile, action, c.computedAt)
	if err != nil {
		return domain.ScoreSimulation{}, fmt.Errorf("failed to simulate %q: %w", actionName(action), err)
	}

	c.simulations = append(c.simulations, sim)
	return sim, nil
}

// ResetSimulations clears the simulation history without touching the profile.
func (c *Controller) ResetSimulations() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.simulations = []domain.ScoreSimulation{}
}

// Profile returns a deep copy of the current profile.
func (c *Controller) Profile() domain.CreditProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile.Clone()
}

// Score returns the current rounded score.
func (c *Controller) Score() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.score
}

// Breakdown returns the current sub-scores.
func (c *Controller) Breakdown() domain.ScoreBreakdown {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.breakdown
}

// Factors returns the current factor analysis.
func (c *Controller) Factors() []domain.ScoreImpact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyImpacts(c.factors)
}

// ValidationErrors returns the current advisory validation findings.
func (c *Controller) ValidationErrors() []domain.ValidationError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.ValidationError{}, c.validation...)
}

// Simulations returns the simulation history in request order.
func (c *Controller) Simulations() []domain.ScoreSimulation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySimulations(c.simulations)
}

// Snapshot returns all derived state read under a single lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Profile:          c.profile.Clone(),
		Score:            c.score,
		Band:             domain.BandForScore(c.score),
		Breakdown:        c.breakdown,
		Factors:          copyImpacts(c.factors),
		ValidationErrors: append([]domain.ValidationError{}, c.validation...),
		Simulations:      copySimulations(c.simulations),
	}
}

// touch stamps the profile and runs the recompute pipeline. Callers hold the write lock.
func (c *Controller) touch() error {
	now := c.now()
	c.profile.UpdatedAt = now
	return c.recompute(now)
}

// recompute derives aggregates, validation, score and factors in that order.
func (c *Controller) recompute(now time.Time) error {
	c.profile.Aggregates = c.profile.ComputeAggregates(now)

	validation, err := c.scoring.Validate(&c.profile, now)
	if err != nil {
		return fmt.Errorf("failed to validate profile: %w", err)
	}
	c.validation = validation

	breakdown, err := c.scoring.Breakdown(&c.profile, now)
	if err != nil {
		return fmt.Errorf("failed to compute score breakdown: %w", err)
	}
	c.breakdown = breakdown

	score, err := c.scoring.CalculateScore(&c.profile, now)
	if err != nil {
		return fmt.Errorf("failed to calculate score: %w", err)
	}
	c.score = score

	factors, err := c.scoring.AnalyzeFactors(&c.profile, now)
	if err != nil {
		return fmt.Errorf("failed to analyze factors: %w", err)
	}
	c.factors = factors
	c.computedAt = now

	return nil
}

func actionName(action domain.SimulationAction) string {
	if action == nil {
		return "<nil>"
	}
	return string(action.Kind())
}

func copyImpacts(in []domain.ScoreImpact) []domain.ScoreImpact {
	out := make([]domain.ScoreImpact, len(in))
	for i, imp := range in {
		out[i] = imp
		out[i].Actions = append([]string{}, imp.Actions...)
	}
	return out
}

func copySimulations(in []domain.ScoreSimulation) []domain.ScoreSimulation {
	out := make([]domain.ScoreSimulation, len(in))
	for i, sim := range in {
		out[i] = sim
		out[i].Changes = append([]domain.ScoreChange{}, sim.Changes...)
	}
	return out
}

package credit

import (
	"errors"
	"time"

	"github.com/phrazzld/scorelab-api/internal/domain"
)

// Common errors
var (
	ErrNilProfile = errors.New("credit profile cannot be nil")
	ErrNilAction  = errors.New("simulation action cannot be nil")
)

// Service defines the interface for credit scoring operations.
// Every method is a pure function of its inputs.
type Service interface {
	// CalculateScore returns the rounded score clamped to [300, 850]
	CalculateScore(profile *domain.CreditProfile, now time.Time) (int, error)

	// Breakdown returns the five sub-scores and the unrounded weighted total
	Breakdown(profile *domain.CreditProfile, now time.Time) (domain.ScoreBreakdown, error)

	// AnalyzeFactors lists the factors currently limiting the score
	AnalyzeFactors(profile *domain.CreditProfile, now time.Time) ([]domain.ScoreImpact, error)

	// Simulate projects a hypothetical action without mutating the profile
	Simulate(
		profile *domain.CreditProfile,
		action domain.SimulationAction,
		now time.Time,
	) (domain.ScoreSimulation, error)

	// Validate returns the advisory range-check findings for the profile
	Validate(profile *domain.CreditProfile, now time.Time) ([]domain.ValidationError, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scoring service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scoring service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

func (s *defaultService) CalculateScore(profile *domain.CreditProfile, now time.Time) (int, error) {
	if profile == nil {
		return 0, ErrNilProfile
	}
	return finalScore(calculateBreakdown(profile, now, s.params).Total, s.params), nil
}

func (s *defaultService) Breakdown(
	profile *domain.CreditProfile,
	now time.Time,
) (domain.ScoreBreakdown, error) {
	if profile == nil {
		return domain.ScoreBreakdown{}, ErrNilProfile
	}
	return calculateBreakdown(profile, now, s.params), nil
}

func (s *defaultService) AnalyzeFactors(
	profile *domain.CreditProfile,
	now time.Time,
) ([]domain.ScoreImpact, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	return analyzeFactors(profile, now, s.params), nil
}

// Simulate implements the Service interface. A nil action is an error; an
// UnknownAction is not.
func (s *defaultService) Simulate(
	profile *domain.CreditProfile,
	action domain.SimulationAction,
	now time.Time,
) (domain.ScoreSimulation, error) {
	if profile == nil {
		return domain.ScoreSimulation{}, ErrNilProfile
	}
	if action == nil {
		return domain.ScoreSimulation{}, ErrNilAction
	}
	return simulate(profile, action, now, s.params), nil
}

func (s *defaultService) Validate(
	profile *domain.CreditProfile,
	now time.Time,
) ([]domain.ValidationError, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	return validateProfile(profile, now, s.params), nil
}

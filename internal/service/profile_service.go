package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/events"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// DefaultCacheSize is the number of live sessions kept when no size is configured.
const DefaultCacheSize = 1000

// Score change reasons recorded with score.changed events.
const (
	ReasonProfileCreated      = "profile_created"
	ReasonAccountAdded        = "account_added"
	ReasonAccountUpdated      = "account_updated"
	ReasonAccountRemoved      = "account_removed"
	ReasonInquiryAdded        = "inquiry_added"
	ReasonInquiryRemoved      = "inquiry_removed"
	ReasonBankruptciesUpdated = "bankruptcies_updated"
)

// ProfileService runs profile commands for a session and keeps storage in sync.
type ProfileService interface {
	// CreateProfile starts a new session around an empty profile.
	CreateProfile(ctx context.Context) (profile.Snapshot, error)

	// GetSnapshot returns the derived state of the session's profile.
	GetSnapshot(ctx context.Context, profileID uuid.UUID) (profile.Snapshot, error)

	// DeleteProfile removes the profile and ends the session.
	DeleteProfile(ctx context.Context, profileID uuid.UUID) error

	// AddAccount adds an account and returns it with its generated ID.
	AddAccount(ctx context.Context, profileID uuid.UUID, account domain.CreditAccount) (domain.CreditAccount, error)

	// UpdateAccount patches an account. Returns ErrAccountNotFound for unknown IDs.
	UpdateAccount(
		ctx context.Context,
		profileID, accountID uuid.UUID,
		patch domain.AccountPatch,
	) (domain.CreditAccount, error)

	// RemoveAccount deletes an account. Unknown IDs are a no-op.
	RemoveAccount(ctx context.Context, profileID, accountID uuid.UUID) error

	// AddInquiry records an inquiry and returns it with its generated ID.
	AddInquiry(ctx context.Context, profileID uuid.UUID, inquiry domain.CreditInquiry) (domain.CreditInquiry, error)

	// RemoveInquiry deletes an inquiry. Unknown IDs are a no-op.
	RemoveInquiry(ctx context.Context, profileID, inquiryID uuid.UUID) error

	// SetBankruptcies replaces the bankruptcy counter.
	SetBankruptcies(ctx context.Context, profileID uuid.UUID, n int) error

	// Simulate projects an action and appends it to the session's simulation history.
	Simulate(ctx context.Context, profileID uuid.UUID, action domain.SimulationAction) (domain.ScoreSimulation, error)

	// Simulations returns the session's simulation history.
	Simulations(ctx context.Context, profileID uuid.UUID) ([]domain.ScoreSimulation, error)

	// ResetSimulations clears the session's simulation history.
	ResetSimulations(ctx context.Context, profileID uuid.UUID) error

	// ScoreHistory returns persisted score points recorded at or after since.
	ScoreHistory(ctx context.Context, profileID uuid.UUID, since time.Time, limit int) ([]domain.ScoreRecord, error)
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	profiles     store.ProfileStore
	history      store.ScoreHistoryStore
	eventEmitter events.EventEmitter
	sessions     *sessionCache
	cacheSize    int
	options      []profile.Option
	logger       *slog.Logger
}

// ProfileServiceOption configures the profile service.
type ProfileServiceOption func(*profileServiceImpl)

// WithCacheSize bounds the number of live sessions held in memory.
func WithCacheSize(n int) ProfileServiceOption {
	return func(s *profileServiceImpl) {
		s.cacheSize = n
	}
}

// WithControllerOptions applies opts to every controller the service creates or loads.
func WithControllerOptions(opts ...profile.Option) ProfileServiceOption {
	return func(s *profileServiceImpl) {
		s.options = append(s.options, opts...)
	}
}

// NewProfileService creates a new ProfileService.
// It returns an error if any of the required dependencies are nil.
func NewProfileService(
	profiles store.ProfileStore,
	history store.ScoreHistoryStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
	opts ...ProfileServiceOption,
) (ProfileService, error) {
	if profiles == nil {
		return nil, &ProfileServiceError{Operation: "create_service", Message: "profile store cannot be nil"}
	}
	if history == nil {
		return nil, &ProfileServiceError{Operation: "create_service", Message: "score history store cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ProfileServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &profileServiceImpl{
		profiles:     profiles,
		history:      history,
		eventEmitter: eventEmitter,
		cacheSize:    DefaultCacheSize,
		logger:       logger.With(slog.String("component", "profile_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = newSessionCache(s.cacheSize, func(id uuid.UUID) {
		s.logger.Debug("session dropped from cache", slog.String("profile_id", id.String()))
	})
	return s, nil
}

// CreateProfile implements ProfileService.CreateProfile.
func (s *profileServiceImpl) CreateProfile(ctx context.Context) (profile.Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := profile.New(s.options...)
	if err != nil {
		return profile.Snapshot{}, NewProfileServiceError("create_profile", "failed to initialize profile", err)
	}
	p := c.Profile()

	if err := s.profiles.Create(ctx, &p); err != nil {
		log.Error("failed to persist new profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", p.ID.String()))
		return profile.Snapshot{}, NewProfileServiceError("create_profile", "failed to save profile", err)
	}

	s.sessions.add(&session{id: p.ID, controller: c})
	s.emitScoreChanged(ctx, p.ID, 0, c.Score(), ReasonProfileCreated)

	log.Info("profile created",
		slog.String("profile_id", p.ID.String()),
		slog.Int("score", c.Score()))
	return c.Snapshot(), nil
}

// GetSnapshot implements ProfileService.GetSnapshot.
func (s *profileServiceImpl) GetSnapshot(ctx context.Context, profileID uuid.UUID) (profile.Snapshot, error) {
	sess, err := s.session(ctx, profileID)
	if err != nil {
		return profile.Snapshot{}, NewProfileServiceError("get_snapshot", "failed to load profile", err)
	}
	return sess.controller.Snapshot(), nil
}

// DeleteProfile implements ProfileService.DeleteProfile.
func (s *profileServiceImpl) DeleteProfile(ctx context.Context, profileID uuid.UUID) error {
	s.sessions.remove(profileID)
	if err := s.profiles.Delete(ctx, profileID); err != nil {
		return NewProfileServiceError("delete_profile", "failed to delete profile", err)
	}
	if err := s.history.DeleteForProfile(ctx, profileID); err != nil {
		return NewProfileServiceError("delete_profile", "failed to delete score history", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).
		Info("profile deleted", slog.String("profile_id", profileID.String()))
	return nil
}

// AddAccount implements ProfileService.AddAccount.
func (s *profileServiceImpl) AddAccount(
	ctx context.Context,
	profileID uuid.UUID,
	account domain.CreditAccount,
) (domain.CreditAccount, error) {
	var added domain.CreditAccount
	err := s.mutate(ctx, profileID, "add_account", ReasonAccountAdded, func(c *profile.Controller) (bool, error) {
		var err error
		added, err = c.AddAccount(account)
		return true, err
	})
	return added, err
}

// UpdateAccount implements ProfileService.UpdateAccount.
func (s *profileServiceImpl) UpdateAccount(
	ctx context.Context,
	profileID, accountID uuid.UUID,
	patch domain.AccountPatch,
) (domain.CreditAccount, error) {
	var updated domain.CreditAccount
	err := s.mutate(ctx, profileID, "update_account", ReasonAccountUpdated, func(c *profile.Controller) (bool, error) {
		a, found, err := c.UpdateAccount(accountID, patch)
		if err != nil {
			return found, err
		}
		if !found {
			return false, ErrAccountNotFound
		}
		updated = a
		return true, nil
	})
	return updated, err
}

// RemoveAccount implements ProfileService.RemoveAccount.
func (s *profileServiceImpl) RemoveAccount(ctx context.Context, profileID, accountID uuid.UUID) error {
	return s.mutate(ctx, profileID, "remove_account", ReasonAccountRemoved, func(c *profile.Controller) (bool, error) {
		return c.RemoveAccount(accountID)
	})
}

// AddInquiry implements ProfileService.AddInquiry.
func (s *profileServiceImpl) AddInquiry(
	ctx context.Context,
	profileID uuid.UUID,
	inquiry domain.CreditInquiry,
) (domain.CreditInquiry, error) {
	var added domain.CreditInquiry
	err := s.mutate(ctx, profileID, "add_inquiry", ReasonInquiryAdded, func(c *profile.Controller) (bool, error) {
		var err error
		added, err = c.AddInquiry(inquiry)
		return true, err
	})
	return added, err
}

// RemoveInquiry implements ProfileService.RemoveInquiry.
func (s *profileServiceImpl) RemoveInquiry(ctx context.Context, profileID, inquiryID uuid.UUID) error {
	return s.mutate(ctx, profileID, "remove_inquiry", ReasonInquiryRemoved, func(c *profile.Controller) (bool, error) {
		return c.RemoveInquiry(inquiryID)
	})
}

// SetBankruptcies implements ProfileService.SetBankruptcies.
func (s *profileServiceImpl) SetBankruptcies(ctx context.Context, profileID uuid.UUID, n int) error {
	return s.mutate(ctx, profileID, "set_bankruptcies", ReasonBankruptciesUpdated,
		func(c *profile.Controller) (bool, error) {
			return true, c.SetBankruptcies(n)
		})
}

// Simulate implements ProfileService.Simulate.
func (s *profileServiceImpl) Simulate(
	ctx context.Context,
	profileID uuid.UUID,
	action domain.SimulationAction,
) (domain.ScoreSimulation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, err := s.session(ctx, profileID)
	if err != nil {
		return domain.ScoreSimulation{}, NewProfileServiceError("simulate", "failed to load profile", err)
	}

	sim, err := sess.controller.SimulateAction(action)
	if err != nil {
		if !errors.Is(err, profile.ErrInvalidProfile) {
			log.Error("simulation failed",
				slog.String("error", err.Error()),
				slog.String("profile_id", profileID.String()))
		}
		return domain.ScoreSimulation{}, NewProfileServiceError("simulate", "failed to simulate action", err)
	}

	log.Debug("simulation recorded",
		slog.String("profile_id", profileID.String()),
		slog.String("action", string(sim.Action)),
		slog.Int("delta", sim.Delta()))
	return sim, nil
}

// Simulations implements ProfileService.Simulations.
func (s *profileServiceImpl) Simulations(ctx context.Context, profileID uuid.UUID) ([]domain.ScoreSimulation, error) {
	sess, err := s.session(ctx, profileID)
	if err != nil {
		return nil, NewProfileServiceError("list_simulations", "failed to load profile", err)
	}
	return sess.controller.Simulations(), nil
}

// ResetSimulations implements ProfileService.ResetSimulations.
func (s *profileServiceImpl) ResetSimulations(ctx context.Context, profileID uuid.UUID) error {
	sess, err := s.session(ctx, profileID)
	if err != nil {
		return NewProfileServiceError("reset_simulations", "failed to load profile", err)
	}
	sess.controller.ResetSimulations()
	return nil
}

// ScoreHistory implements ProfileService.ScoreHistory.
func (s *profileServiceImpl) ScoreHistory(
	ctx context.Context,
	profileID uuid.UUID,
	since time.Time,
	limit int,
) ([]domain.ScoreRecord, error) {
	if _, err := s.session(ctx, profileID); err != nil {
		return nil, NewProfileServiceError("score_history", "failed to load profile", err)
	}

	records, err := s.history.List(ctx, profileID, since, limit)
	if err != nil {
		return nil, NewProfileServiceError("score_history", "failed to list score history", err)
	}
	return records, nil
}

// session returns the cached session for profileID, loading the profile from
// the store on a cache miss.
func (s *profileServiceImpl) session(ctx context.Context, profileID uuid.UUID) (*session, error) {
	if sess, ok := s.sessions.get(profileID); ok {
		return sess, nil
	}

	p, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	c, err := profile.Load(*p, s.options...)
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).
		Debug("session loaded from store", slog.String("profile_id", profileID.String()))
	return s.sessions.add(&session{id: profileID, controller: c}), nil
}

// mutate runs cmd against the session's controller, persists the profile when
// cmd reports a change and emits score.changed if the score moved. A failed
// save evicts the session so the next request reloads the stored state.
func (s *profileServiceImpl) mutate(
	ctx context.Context,
	profileID uuid.UUID,
	operation, reason string,
	cmd func(c *profile.Controller) (bool, error),
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, err := s.session(ctx, profileID)
	if err != nil {
		return NewProfileServiceError(operation, "failed to load profile", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.controller.Score()
	changed, err := cmd(sess.controller)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			log.Error("profile command failed",
				slog.String("error", err.Error()),
				slog.String("operation", operation),
				slog.String("profile_id", profileID.String()))
		}
		return NewProfileServiceError(operation, "command failed", err)
	}
	if !changed {
		return nil
	}

	p := sess.controller.Profile()
	if err := s.profiles.Save(ctx, &p); err != nil {
		s.sessions.remove(profileID)
		log.Error("failed to persist profile",
			slog.String("error", err.Error()),
			slog.String("operation", operation),
			slog.String("profile_id", profileID.String()))
		return NewProfileServiceError(operation, "failed to save profile", err)
	}

	if after := sess.controller.Score(); after != before {
		s.emitScoreChanged(ctx, profileID, before, after, reason)
	}
	return nil
}

// emitScoreChanged publishes a score.changed event. Failures are logged and
// do not fail the command, whose result is already persisted.
func (s *profileServiceImpl) emitScoreChanged(
	ctx context.Context,
	profileID uuid.UUID,
	before, after int,
	reason string,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(events.TypeScoreChanged, profileID, events.ScoreChangedPayload{
		PreviousScore: before,
		Score:         after,
		Band:          string(domain.BandForScore(after)),
		Reason:        reason,
	})
	if err != nil {
		log.Error("failed to create score changed event",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit score changed event",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()),
			slog.String("event_id", event.ID.String()))
		return
	}

	log.Debug("score changed",
		slog.String("profile_id", profileID.String()),
		slog.Int("previous_score", before),
		slog.Int("score", after),
		slog.String("reason", reason))
}

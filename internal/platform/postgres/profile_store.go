package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db *sql.DB, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create.
// The profile row and all children are inserted in a single transaction.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.CreditProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (id, bankruptcies, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`, profile.ID, profile.Bankruptcies, profile.CreatedAt, profile.UpdatedAt)
		if err != nil {
			if IsUniqueViolation(err) {
				return store.ErrProfileExists
			}
			return MapError(err)
		}
		return insertChildren(ctx, tx, profile)
	})
	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	log.Info("profile created", slog.String("profile_id", profile.ID.String()))
	return nil
}

// Get implements store.ProfileStore.Get.
func (s *PostgresProfileStore) Get(ctx context.Context, id uuid.UUID) (*domain.CreditProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving profile", slog.String("profile_id", id.String()))

	profile := &domain.CreditProfile{ID: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT bankruptcies, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&profile.Bankruptcies, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("profile_id", id.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, MapError(err)
	}

	if profile.Accounts, err = s.loadAccounts(ctx, id); err != nil {
		log.Error("failed to load accounts",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, err
	}
	if profile.Inquiries, err = s.loadInquiries(ctx, id); err != nil {
		log.Error("failed to load inquiries",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, err
	}

	log.Debug("profile retrieved",
		slog.String("profile_id", id.String()),
		slog.Int("accounts", len(profile.Accounts)),
		slog.Int("inquiries", len(profile.Inquiries)))
	return profile, nil
}

// Save implements store.ProfileStore.Save.
// Child rows are deleted and re-inserted so stored order always matches the profile.
func (s *PostgresProfileStore) Save(ctx context.Context, profile *domain.CreditProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE profiles
			SET bankruptcies = $1, updated_at = $2
			WHERE id = $3
		`, profile.Bankruptcies, profile.UpdatedAt, profile.ID)
		if err != nil {
			return MapError(err)
		}
		if err := CheckRowsAffected(result, "profile"); err != nil {
			return store.ErrProfileNotFound
		}

		// payment_events cascade from credit_accounts
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM credit_accounts WHERE profile_id = $1`, profile.ID); err != nil {
			return MapError(err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM credit_inquiries WHERE profile_id = $1`, profile.ID); err != nil {
			return MapError(err)
		}

		return insertChildren(ctx, tx, profile)
	})
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			log.Error("failed to save profile",
				slog.String("error", err.Error()),
				slog.String("profile_id", profile.ID.String()))
		}
		return err
	}

	log.Debug("profile saved",
		slog.String("profile_id", profile.ID.String()),
		slog.Int("accounts", len(profile.Accounts)),
		slog.Int("inquiries", len(profile.Inquiries)))
	return nil
}

// Delete implements store.ProfileStore.Delete.
// Accounts, events, inquiries and score history are removed by ON DELETE CASCADE.
func (s *PostgresProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "profile"); err != nil {
		return store.ErrProfileNotFound
	}

	log.Info("profile deleted", slog.String("profile_id", id.String()))
	return nil
}

// insertChildren writes accounts, their payment events and inquiries, keeping
// slice order in the position columns.
func insertChildren(ctx context.Context, tx *sql.Tx, profile *domain.CreditProfile) error {
	for i, a := range profile.Accounts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credit_accounts (
				id, profile_id, position, type, balance, credit_limit,
				date_opened, payment_status, status, monthly_payment
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, a.ID, profile.ID, i, a.Type, a.Balance, a.CreditLimit,
			a.DateOpened, a.PaymentStatus, a.Status, a.MonthlyPayment)
		if err != nil {
			return MapError(err)
		}

		for j, ev := range a.PaymentHistory {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO payment_events (account_id, position, occurred_at, status, amount)
				VALUES ($1, $2, $3, $4, $5)
			`, a.ID, j, ev.Date, ev.Status, ev.Amount)
			if err != nil {
				return MapError(err)
			}
		}
	}

	for i, inq := range profile.Inquiries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credit_inquiries (
				id, profile_id, position, type, inquired_at, creditor, purpose
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, inq.ID, profile.ID, i, inq.Type, inq.Date, inq.Creditor, inq.Purpose)
		if err != nil {
			return MapError(err)
		}
	}

	return nil
}

func (s *PostgresProfileStore) loadAccounts(
	ctx context.Context,
	profileID uuid.UUID,
) ([]domain.CreditAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, balance, credit_limit, date_opened, payment_status, status, monthly_payment
		FROM credit_accounts
		WHERE profile_id = $1
		ORDER BY position
	`, profileID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []domain.CreditAccount{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var a domain.CreditAccount
		var typ, paymentStatus, status string
		if err := rows.Scan(&a.ID, &typ, &a.Balance, &a.CreditLimit, &a.DateOpened,
			&paymentStatus, &status, &a.MonthlyPayment); err != nil {
			return nil, MapError(err)
		}
		a.Type = domain.AccountType(typ)
		a.DateOpened = a.DateOpened.UTC()
		a.PaymentStatus = domain.PaymentStatus(paymentStatus)
		a.Status = domain.AccountStatus(status)
		index[a.ID] = len(accounts)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	events, err := s.db.QueryContext(ctx, `
		SELECT e.account_id, e.occurred_at, e.status, e.amount
		FROM payment_events e
		JOIN credit_accounts a ON a.id = e.account_id
		WHERE a.profile_id = $1
		ORDER BY e.account_id, e.position
	`, profileID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = events.Close() }()

	for events.Next() {
		var accountID uuid.UUID
		var ev domain.PaymentEvent
		var status string
		if err := events.Scan(&accountID, &ev.Date, &status, &ev.Amount); err != nil {
			return nil, MapError(err)
		}
		ev.Status = domain.PaymentStatus(status)
		ev.Date = ev.Date.UTC()
		if i, ok := index[accountID]; ok {
			accounts[i].PaymentHistory = append(accounts[i].PaymentHistory, ev)
		}
	}
	if err := events.Err(); err != nil {
		return nil, MapError(err)
	}

	return accounts, nil
}

func (s *PostgresProfileStore) loadInquiries(
	ctx context.Context,
	profileID uuid.UUID,
) ([]domain.CreditInquiry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, inquired_at, creditor, purpose
		FROM credit_inquiries
		WHERE profile_id = $1
		ORDER BY position
	`, profileID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	inquiries := []domain.CreditInquiry{}
	for rows.Next() {
		var inq domain.CreditInquiry
		var typ string
		if err := rows.Scan(&inq.ID, &typ, &inq.Date, &inq.Creditor, &inq.Purpose); err != nil {
			return nil, MapError(err)
		}
		inq.Type = domain.InquiryType(typ)
		inq.Date = inq.Date.UTC()
		inquiries = append(inquiries, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return inquiries, nil
}

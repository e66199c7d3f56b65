package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scorelab-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "sql_no_rows",
			err:      sql.ErrNoRows,
			sentinel: store.ErrNotFound,
		},
		{
			name:     "unique_violation",
			err:      &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "profiles_pkey"},
			sentinel: store.ErrDuplicate,
		},
		{
			name:     "foreign_key_violation",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "score_history_profile_id_fkey"},
			sentinel: store.ErrInvalidEntity,
			contains: "foreign key violation (score_history_profile_id_fkey)",
		},
		{
			name:     "check_violation",
			err:      &pgconn.PgError{Code: checkViolationCode, ConstraintName: "score_history_score_check"},
			sentinel: store.ErrInvalidEntity,
			contains: "check constraint violation",
		},
		{
			name:     "not_null_violation",
			err:      &pgconn.PgError{Code: notNullViolationCode, ColumnName: "band"},
			sentinel: store.ErrInvalidEntity,
			contains: "not null violation (band)",
		},
		{
			name:     "wrapped_unique_violation",
			err:      fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode}),
			sentinel: store.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := MapError(tt.err)
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.sentinel)
			if tt.contains != "" {
				assert.Contains(t, result.Error(), tt.contains)
			}
		})
	}
}

func TestMapError_Passthrough(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))

	generic := errors.New("connection refused")
	assert.Same(t, generic, MapError(generic))

	unknown := &pgconn.PgError{Code: "99999", Message: "unknown error"}
	var pgErr *pgconn.PgError
	require.True(t, errors.As(MapError(unknown), &pgErr))
	assert.Equal(t, "99999", pgErr.Code)
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", unique)))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("some error")))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", fk)))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("nil_result", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(nil, "profile")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil result")
	})

	t.Run("zero_rows_with_entity", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(mockResult{rowsAffected: 0}, "profile")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "profile not found")
	})

	t.Run("zero_rows_without_entity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, store.ErrNotFound, CheckRowsAffected(mockResult{rowsAffected: 0}, ""))
	})

	t.Run("rows_affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 3}, "profile"))
	})

	t.Run("rows_affected_error", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(mockResult{err: errors.New("driver error")}, "profile")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get rows affected")
	})
}

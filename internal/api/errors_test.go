package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/service"
	"github.com/phrazzld/scorelab-api/internal/service/auth"
	"github.com/phrazzld/scorelab-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"profile not found", service.ErrProfileNotFound, http.StatusNotFound},
		{"wrapped account not found", fmt.Errorf("op: %w", service.ErrAccountNotFound), http.StatusNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound},
		{"simulation blocked", service.ErrSimulationBlocked, http.StatusConflict},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"domain validation", domain.NewValidationError("balance", "is negative", domain.ErrValidation), http.StatusBadRequest},
		{"invalid action", domain.ErrInvalidAction, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Profile not found", GetSafeErrorMessage(store.ErrProfileNotFound))
	assert.Equal(t, "Account not found", GetSafeErrorMessage(service.ErrAccountNotFound))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// internal details never reach the client
	msg := GetSafeErrorMessage(errors.New("pq: relation credit_accounts does not exist"))
	assert.NotContains(t, msg, "credit_accounts")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	t.Run("validator error uses json field path", func(t *testing.T) {
		req := AccountRequest{
			Type:       "credit_card",
			DateOpened: &Date{},
			PaymentHistory: []PaymentEventRequest{
				{Date: &Date{}, Status: "sometimes"},
			},
		}
		err := validator.New().Struct(req)
		require.Error(t, err)
		assert.Equal(t, "Invalid payment_history[0].status: invalid value", SanitizeValidationError(err))
	})

	t.Run("domain validation error", func(t *testing.T) {
		err := domain.NewValidationError("amount", "must not be negative", domain.ErrInvalidAction)
		assert.Equal(t, "Invalid amount: must not be negative", SanitizeValidationError(err))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("x")))
	})
}

func TestToSnake(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "account_id", toSnake("AccountID"))
	assert.Equal(t, "date_opened", toSnake("DateOpened"))
	assert.Equal(t, "type", toSnake("Type"))
	assert.Equal(t, "payment_history[0]", toSnake("PaymentHistory[0]"))
}

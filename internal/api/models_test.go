package api

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date only", `"2020-05-17"`, time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 utc", `"2020-05-17T10:30:00Z"`, time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC), false},
		{"rfc3339 offset", `"2020-05-17T12:30:00+02:00"`, time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC), false},
		{"garbage", `"last tuesday"`, time.Time{}, true},
		{"number", `20200517`, time.Time{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}

func TestAccountRequestToDomain(t *testing.T) {
	t.Parallel()

	opened := Date{Time: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)}
	req := AccountRequest{
		Type:        "credit_card",
		Balance:     decimal.NewFromInt(1200),
		CreditLimit: decimal.NewFromInt(4000),
		DateOpened:  &opened,
		PaymentHistory: []PaymentEventRequest{
			{Date: &opened, Status: "late_30", Amount: decimal.NewFromInt(50)},
		},
	}

	a := req.ToDomain()
	assert.Equal(t, domain.AccountTypeCreditCard, a.Type)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, opened.Time, a.DateOpened)
	require.Len(t, a.PaymentHistory, 1)
	assert.Equal(t, domain.PaymentStatusLate30, a.PaymentHistory[0].Status)
}

func TestAccountPatchRequestToDomain(t *testing.T) {
	t.Parallel()

	balance := decimal.NewFromInt(10)
	status := "closed"
	patch := AccountPatchRequest{Balance: &balance, Status: &status}.ToDomain()

	require.NotNil(t, patch.Balance)
	assert.True(t, patch.Balance.Equal(balance))
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.AccountStatusClosed, *patch.Status)
	assert.Nil(t, patch.Type)
	assert.Nil(t, patch.CreditLimit)
	assert.Nil(t, patch.DateOpened)
}

func TestSimulationRequestToAction(t *testing.T) {
	t.Parallel()

	amount := decimal.NewFromInt(500)
	negative := decimal.NewFromInt(-1)
	accountID := uuid.New()
	nilID := uuid.Nil

	tests := []struct {
		name      string
		req       SimulationRequest
		want      domain.SimulationAction
		wantField string
	}{
		{
			name: "pay down",
			req:  SimulationRequest{Action: "pay_down_balance", Amount: &amount},
			want: domain.PayDownBalance{Amount: amount},
		},
		{
			name:      "pay down without amount",
			req:       SimulationRequest{Action: "pay_down_balance"},
			wantField: "amount",
		},
		{
			name:      "pay down negative amount",
			req:       SimulationRequest{Action: "pay_down_balance", Amount: &negative},
			wantField: "amount",
		},
		{
			name: "add account without type",
			req:  SimulationRequest{Action: "add_account"},
			want: domain.AddAccount{},
		},
		{
			name: "add account with type",
			req:  SimulationRequest{Action: "add_account", AccountType: "mortgage"},
			want: domain.AddAccount{Type: domain.AccountTypeMortgage},
		},
		{
			name:      "add account with bad type",
			req:       SimulationRequest{Action: "add_account", AccountType: "yacht"},
			wantField: "account_type",
		},
		{
			name: "close account",
			req:  SimulationRequest{Action: "close_account", AccountID: &accountID},
			want: domain.CloseAccount{AccountID: accountID},
		},
		{
			name:      "close account nil id",
			req:       SimulationRequest{Action: "close_account", AccountID: &nilID},
			wantField: "account_id",
		},
		{
			name: "late payment",
			req:  SimulationRequest{Action: "late_payment", Status: "late_60"},
			want: domain.LatePayment{Status: domain.PaymentStatusLate60},
		},
		{
			name:      "late payment with current status",
			req:       SimulationRequest{Action: "late_payment", Status: "current"},
			wantField: "status",
		},
		{
			name: "collection",
			req:  SimulationRequest{Action: "collection"},
			want: domain.Collection{},
		},
		{
			name: "unknown action passes through",
			req:  SimulationRequest{Action: "refinance"},
			want: domain.UnknownAction{Name: "refinance"},
		},
		{
			name:      "missing action",
			req:       SimulationRequest{},
			wantField: "action",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.req.ToAction()
			if tc.wantField != "" {
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
				assert.Equal(t, tc.wantField, verr.Field)
				assert.ErrorIs(t, err, domain.ErrInvalidAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

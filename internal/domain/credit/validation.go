package credit

import (
	"fmt"
	"time"

	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/shopspring/decimal"
)

// validateProfile runs the advisory range checks over every account and inquiry.
// Findings never block scoring.
func validateProfile(
	profile *domain.CreditProfile,
	now time.Time,
	params *Params,
) []domain.ValidationError {
	errs := []domain.ValidationError{}
	b := params.Bounds

	add := func(field, msg string, err error) {
		errs = append(errs, *domain.NewValidationError(field, msg, err))
	}
	checkAmount := func(field string, v, max decimal.Decimal) {
		if v.IsNegative() || v.GreaterThan(max) {
			add(field, fmt.Sprintf("must be between 0 and %s", max.StringFixed(0)), domain.ErrValidation)
		}
	}

	for _, a := range profile.Accounts {
		prefix := "accounts." + a.ID.String()

		if !a.Type.IsValid() {
			add(prefix+".type", "is not a recognized account type", domain.ErrInvalidAccountType)
		}
		if !a.PaymentStatus.IsValid() {
			add(prefix+".payment_status", "is not a recognized payment status", domain.ErrInvalidPaymentStatus)
		}
		if !a.Status.IsValid() {
			add(prefix+".status", "is not a recognized account status", domain.ErrInvalidAccountStatus)
		}

		checkAmount(prefix+".balance", a.Balance, b.MaxBalance)
		checkAmount(prefix+".credit_limit", a.CreditLimit, b.MaxCreditLimit)
		checkAmount(prefix+".monthly_payment", a.MonthlyPayment, b.MaxMonthlyPayment)

		age := domain.MonthsBetween(a.DateOpened, now)
		if a.DateOpened.After(now) || age < 0 || age > b.MaxAccountAge {
			add(prefix+".date_opened",
				fmt.Sprintf("account age must be between 0 and %d months", b.MaxAccountAge), domain.ErrValidation)
		}

		for i, ev := range a.PaymentHistory {
			field := fmt.Sprintf("%s.payment_history.%d", prefix, i)
			checkAmount(field+".amount", ev.Amount, b.MaxPaymentAmount)
			if !ev.Status.IsValid() {
				add(field+".status", "is not a recognized payment status", domain.ErrInvalidPaymentStatus)
			}
		}
	}

	for _, inq := range profile.Inquiries {
		prefix := "inquiries." + inq.ID.String()
		if !inq.Type.IsValid() {
			add(prefix+".type", "is not a recognized inquiry type", domain.ErrInvalidInquiryType)
		}
		if inq.Date.After(now) {
			add(prefix+".date", "cannot be in the future", domain.ErrValidation)
		}
	}

	if profile.Bankruptcies < 0 {
		add("bankruptcies", "cannot be negative", domain.ErrValidation)
	}

	return errs
}

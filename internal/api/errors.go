package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scorelab-api/internal/api/shared"
	"github.com/phrazzld/scorelab-api/internal/domain"
	"github.com/phrazzld/scorelab-api/internal/service"
	"github.com/phrazzld/scorelab-api/internal/service/auth"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error itself.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrSimulationBlocked),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid or missing session"

	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, service.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, service.ErrSimulationBlocked):
		return "Simulation blocked: the profile has validation errors"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid profile data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator or domain validation error into
// a short message naming the offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Namespace()), validationTagMessage(fe.Tag()))
	}

	var derr *domain.ValidationError
	if errors.As(err, &derr) {
		return fmt.Sprintf("Invalid %s: %s", derr.Field, derr.Message)
	}

	return "Validation error"
}

// jsonFieldName converts a validator namespace such as
// "AccountRequest.PaymentHistory[0].Status" to "payment_history[0].status".
func jsonFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (s[i-1] >= 'a' && s[i-1] <= 'z' || s[i-1] >= '0' && s[i-1] <= '9') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "max":
		return "too long"
	case "gte", "min":
		return "too small"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and sanitized message for err. A
// non-empty message overrides the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// HandleValidationError writes a 400 response for a request that failed
// validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

package generation

import "errors"

// Common errors returned by explainers
var (
	// ErrExplanationFailed is returned when an explanation cannot be produced for any general reason
	ErrExplanationFailed = errors.New("failed to generate explanation")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during explanation")

	// ErrInvalidConfig is returned when the explainer configuration is invalid
	ErrInvalidConfig = errors.New("invalid explainer configuration")
)

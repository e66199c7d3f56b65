// Package auth issues and validates the session tokens that bind an API
// client to its credit profile.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing session tokens.
type JWTService interface {
	// GenerateToken creates a signed token bound to the given profile.
	GenerateToken(ctx context.Context, profileID uuid.UUID) (string, error)

	// ValidateToken verifies tokenString and returns its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a session token.
type Claims struct {
	// ProfileID is the credit profile the session owns.
	ProfileID uuid.UUID `json:"pid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

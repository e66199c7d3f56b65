package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// InquiryType distinguishes hard pulls from soft pulls.
type InquiryType string

// Possible inquiry types
const (
	InquiryTypeHard InquiryType = "hard"
	InquiryTypeSoft InquiryType = "soft"
)

// ErrInvalidInquiryType is wrapped by the ValidationError reported for an
// unrecognized inquiry type.
var ErrInvalidInquiryType = errors.New("invalid inquiry type")

// CreditInquiry records one credit check against the profile.
type CreditInquiry struct {
	ID       uuid.UUID   `json:"id"`
	Type     InquiryType `json:"type"`
	Date     time.Time   `json:"date"`
	Creditor string      `json:"creditor"`
	Purpose  string      `json:"purpose"`
}

// IsValid reports whether t is a supported inquiry type.
func (t InquiryType) IsValid() bool {
	return t == InquiryTypeHard || t == InquiryTypeSoft
}

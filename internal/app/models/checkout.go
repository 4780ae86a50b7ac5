package models

import "time"

// VerificationStatus is the approval state of a donation batch or item.
// Any status may move to any other status; none are terminal.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationFlagged  VerificationStatus = "flagged"
)

// ValidVerificationStatus reports whether s is a known verification state.
func ValidVerificationStatus(s string) bool {
	switch VerificationStatus(s) {
	case VerificationPending, VerificationApproved, VerificationFlagged:
		return true
	}
	return false
}

// Checkout is one donation drop-off event containing one or more items
// awaiting verification.
type Checkout struct {
	ID                 int64              `json:"id"`
	Date               time.Time          `json:"date"`
	OwnerName          string             `json:"ownerName"`
	Email              string             `json:"email"`
	HousingAssignment  string             `json:"housingAssignment,omitempty"`
	GraduationYear     string             `json:"graduationYear,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`
	VerifiedBy         *string            `json:"verifiedBy,omitempty"`

	Items []*CheckoutItem `json:"items,omitempty"`
}

// CheckoutItem is a single donated item within a drop-off batch. Its
// verification status is stored independently but is overwritten whenever
// the parent batch is updated.
type CheckoutItem struct {
	ID                 int64              `json:"id"`
	CheckoutID         int64              `json:"checkoutId"`
	ItemName           string             `json:"itemName"`
	ItemQuantity       int                `json:"itemQuantity"`
	Description        string             `json:"description,omitempty"`
	ImageURL           *string            `json:"imageUrl,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`
	VerifiedBy         *string            `json:"verifiedBy,omitempty"`
}

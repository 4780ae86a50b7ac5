package models

import "time"

// Donor is a person who has contributed at least one item.
// Identity key is the lowercased email; a donor row is created on first
// reference and never deleted.
type Donor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Housing   *string   `json:"housing,omitempty"`
	GradYear  *string   `json:"gradYear,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// DonationCount is derived from products and only populated on detail reads.
	DonationCount int64 `json:"donationCount,omitempty"`
}

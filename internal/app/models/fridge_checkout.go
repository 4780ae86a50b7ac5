package models

import "time"

// FridgeCheckoutStatus is the state of one lending transaction.
type FridgeCheckoutStatus string

const (
	FridgeCheckoutActive   FridgeCheckoutStatus = "active"
	FridgeCheckoutReturned FridgeCheckoutStatus = "returned"
)

// FridgeCheckout is one lending transaction of a fridge to a student.
// It is created on checkout and mutated exactly once, when the fridge is
// returned.
type FridgeCheckout struct {
	ID                  int64                `json:"id"`
	FridgeID            int64                `json:"fridgeId"`
	StudentName         string               `json:"studentName"`
	StudentEmail        string               `json:"studentEmail"`
	StudentID           string               `json:"studentId,omitempty"`
	HousingAssignment   string               `json:"housingAssignment,omitempty"`
	PhoneNumber         string               `json:"phoneNumber,omitempty"`
	CheckoutDate        time.Time            `json:"checkoutDate"`
	ExpectedReturnDate  *time.Time           `json:"expectedReturnDate,omitempty"`
	ConditionAtCheckout string               `json:"conditionAtCheckout,omitempty"`
	ActualReturnDate    *time.Time           `json:"actualReturnDate,omitempty"`
	ConditionAtReturn   *string              `json:"conditionAtReturn,omitempty"`
	Status              FridgeCheckoutStatus `json:"status"`
	CheckedOutBy        string               `json:"checkedOutBy,omitempty"`
	CheckedInBy         *string              `json:"checkedInBy,omitempty"`
}

// IsOverdue reports whether the checkout is active and its expected return
// date is strictly before now's calendar date. Overdue is always derived,
// never stored.
func (c *FridgeCheckout) IsOverdue(now time.Time) bool {
	if c.Status != FridgeCheckoutActive || c.ExpectedReturnDate == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return c.ExpectedReturnDate.Before(today)
}

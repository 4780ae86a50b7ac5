package dto

import "github.com/campusreuse/restore/internal/app/models"

// CreateFridgeRequest registers a new fridge in the lending pool.
type CreateFridgeRequest struct {
	FridgeNumber string `json:"fridgeNumber" binding:"required"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Size         string `json:"size"`
	Condition    string `json:"condition" binding:"omitempty,oneof='Good' 'Fair' 'Needs Repair'"`
	Notes        string `json:"notes"`
}

// CheckoutFridgeRequest performs the available → checked_out transition.
type CheckoutFridgeRequest struct {
	FridgeID            int64  `json:"fridgeId" binding:"required"`
	StudentName         string `json:"studentName" binding:"required"`
	StudentEmail        string `json:"studentEmail" binding:"required,email"`
	StudentID           string `json:"studentId"`
	HousingAssignment   string `json:"housingAssignment"`
	PhoneNumber         string `json:"phoneNumber"`
	ExpectedReturnDate  string `json:"expectedReturnDate" binding:"omitempty,datetime=2006-01-02"`
	ConditionAtCheckout string `json:"conditionAtCheckout"`
	CheckedOutBy        string `json:"checkedOutBy"`
}

// ReturnFridgeRequest performs the check-in transition on an active
// checkout.
type ReturnFridgeRequest struct {
	ConditionAtReturn string `json:"conditionAtReturn" binding:"required,oneof='Good' 'Fair' 'Needs Repair' 'Damaged' 'Lost'"`
	CheckedInBy       string `json:"checkedInBy"`
}

// PatchFridgeRequest is the administrative field patch. Only non-nil
// fields are written. Status accepts the closed state set but bypasses the
// checkout/return machinery on purpose.
type PatchFridgeRequest struct {
	FridgeNumber *string `json:"fridgeNumber"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Size         *string `json:"size"`
	Condition    *string `json:"condition" binding:"omitempty,oneof='Good' 'Fair' 'Needs Repair'"`
	Status       *string `json:"status" binding:"omitempty,oneof=available checked_out maintenance"`
	Notes        *string `json:"notes"`
}

// FridgeDetailResponse is a fridge with its full lending history.
type FridgeDetailResponse struct {
	Fridge          *models.Fridge           `json:"fridge"`
	ActiveCheckout  *models.FridgeCheckout   `json:"activeCheckout,omitempty"`
	CheckoutHistory []*models.FridgeCheckout `json:"checkoutHistory"`
}

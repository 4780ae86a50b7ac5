package dto

import "github.com/campusreuse/restore/internal/app/models"

// CreateCheckoutRequest records one donation drop-off batch with its items.
// Everything starts in pending.
type CreateCheckoutRequest struct {
	OwnerName         string                      `json:"ownerName" binding:"required"`
	Email             string                      `json:"email" binding:"required,email"`
	HousingAssignment string                      `json:"housingAssignment"`
	GraduationYear    string                      `json:"graduationYear"`
	Items             []CreateCheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateCheckoutItemRequest is one donated item within a drop-off batch.
type CreateCheckoutItemRequest struct {
	ItemName     string `json:"itemName" binding:"required"`
	ItemQuantity int    `json:"itemQuantity" binding:"omitempty,min=1"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
}

// UpdateVerificationRequest moves a batch or item to a new verification
// status. Any status may move to any other.
type UpdateVerificationRequest struct {
	Status     string `json:"status" binding:"required,oneof=pending approved flagged"`
	VerifiedBy string `json:"verifiedBy"`
}

// VerificationListResponse is the batch listing with nested items and the
// stats block.
type VerificationListResponse struct {
	Checkouts []*models.Checkout       `json:"checkouts"`
	Stats     models.VerificationStats `json:"stats"`
}

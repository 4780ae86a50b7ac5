package services

import (
	"context"
	"strings"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

// CheckoutRepository is the storage surface the verification service
// depends on.
type CheckoutRepository interface {
	Create(ctx context.Context, checkout *models.Checkout) error
	List(ctx context.Context, status string, limit int, lastMonthOnly bool) ([]*models.Checkout, error)
	GetByID(ctx context.Context, id int64) (*models.Checkout, error)
	UpdateStatus(ctx context.Context, id int64, status models.VerificationStatus, verifiedBy string) (*models.Checkout, error)
	UpdateItemStatus(ctx context.Context, id int64, status models.VerificationStatus, verifiedBy string) (*models.CheckoutItem, error)
	GetStats(ctx context.Context) (*models.VerificationStats, error)
}

// VerificationService runs the donation verification pipeline: drop-off
// batches, per-item review, and the batch-level status cascade.
type VerificationService struct {
	checkoutRepo CheckoutRepository
}

// NewVerificationService creates a new verification service instance.
func NewVerificationService(checkoutRepo CheckoutRepository) *VerificationService {
	return &VerificationService{
		checkoutRepo: checkoutRepo,
	}
}

// CreateCheckout records a drop-off batch. The batch and every item start
// pending; item quantity defaults to one.
func (s *VerificationService) CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*models.Checkout, error) {
	checkout := &models.Checkout{
		OwnerName:         strings.TrimSpace(req.OwnerName),
		Email:             NormalizeEmail(req.Email),
		HousingAssignment: req.HousingAssignment,
		GraduationYear:    req.GraduationYear,
	}

	for _, it := range req.Items {
		item := &models.CheckoutItem{
			ItemName:     strings.TrimSpace(it.ItemName),
			ItemQuantity: it.ItemQuantity,
			Description:  it.Description,
		}
		if item.ItemQuantity <= 0 {
			item.ItemQuantity = 1
		}
		if it.ImageURL != "" {
			url := it.ImageURL
			item.ImageURL = &url
		}
		checkout.Items = append(checkout.Items, item)
	}

	if err := s.checkoutRepo.Create(ctx, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// ListCheckouts retrieves batches with their items plus the stats block.
// status filters when non-empty; limit caps when positive; lastMonthOnly
// restricts to the last 30 days.
func (s *VerificationService) ListCheckouts(ctx context.Context, status string, limit int, lastMonthOnly bool) (*dto.VerificationListResponse, error) {
	if status != "" && !models.ValidVerificationStatus(status) {
		return nil, apperrors.NewValidationError("invalid verification status filter: " + status)
	}

	checkouts, err := s.checkoutRepo.List(ctx, status, limit, lastMonthOnly)
	if err != nil {
		return nil, err
	}

	stats, err := s.checkoutRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.VerificationListResponse{
		Checkouts: checkouts,
		Stats:     *stats,
	}, nil
}

// GetCheckoutByID retrieves one batch with its items.
func (s *VerificationService) GetCheckoutByID(ctx context.Context, id int64) (*models.Checkout, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid checkout ID")
	}
	return s.checkoutRepo.GetByID(ctx, id)
}

// UpdateCheckoutStatus moves a batch to a new verification status and
// cascades it to every item in the batch, overwriting any per-item
// distinctions made earlier.
func (s *VerificationService) UpdateCheckoutStatus(ctx context.Context, id int64, req *dto.UpdateVerificationRequest) (*models.Checkout, error) {
	if !models.ValidVerificationStatus(req.Status) {
		return nil, apperrors.NewValidationError("invalid verification status: " + req.Status)
	}
	return s.checkoutRepo.UpdateStatus(ctx, id, models.VerificationStatus(req.Status), req.VerifiedBy)
}

// UpdateItemStatus moves a single item to a new verification status. The
// parent batch's status is not recomputed; batch status reflects the last
// batch-level decision only.
func (s *VerificationService) UpdateItemStatus(ctx context.Context, id int64, req *dto.UpdateVerificationRequest) (*models.CheckoutItem, error) {
	if !models.ValidVerificationStatus(req.Status) {
		return nil, apperrors.NewValidationError("invalid verification status: " + req.Status)
	}
	return s.checkoutRepo.UpdateItemStatus(ctx, id, models.VerificationStatus(req.Status), req.VerifiedBy)
}

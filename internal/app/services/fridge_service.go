package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

// FridgeRepository is the storage surface the fridge service depends on.
type FridgeRepository interface {
	Create(ctx context.Context, fridge *models.Fridge) error
	GetByID(ctx context.Context, id int64) (*models.Fridge, error)
	GetAll(ctx context.Context, status string) ([]*models.Fridge, error)
	GetStats(ctx context.Context) (*models.FridgeStats, error)
	Checkout(ctx context.Context, checkout *models.FridgeCheckout) error
	Return(ctx context.Context, checkoutID int64, conditionAtReturn, checkedInBy string,
		targetStatus models.FridgeStatus, storedCondition string) (*models.FridgeCheckout, error)
	GetCheckoutsByFridgeID(ctx context.Context, fridgeID int64) ([]*models.FridgeCheckout, error)
	GetActiveCheckout(ctx context.Context, fridgeID int64) (*models.FridgeCheckout, error)
	UpdatePartial(ctx context.Context, id int64, patch *models.FridgePatch) (*models.Fridge, error)
	Delete(ctx context.Context, id int64) error
}

// FridgeService runs the fridge lending pool: registration, the
// checkout/return state machine, and administrative edits.
type FridgeService struct {
	fridgeRepo FridgeRepository
}

// NewFridgeService creates a new fridge service instance.
func NewFridgeService(fridgeRepo FridgeRepository) *FridgeService {
	return &FridgeService{
		fridgeRepo: fridgeRepo,
	}
}

// CreateFridge registers a fridge. Condition defaults to Good; a fridge
// registered as needing repair starts in maintenance instead of
// available.
func (s *FridgeService) CreateFridge(ctx context.Context, req *dto.CreateFridgeRequest) (*models.Fridge, error) {
	condition := strings.TrimSpace(req.Condition)
	if condition == "" {
		condition = models.ConditionGood
	}

	fridge := &models.Fridge{
		FridgeNumber: strings.TrimSpace(req.FridgeNumber),
		Brand:        req.Brand,
		Model:        req.Model,
		Size:         req.Size,
		Condition:    condition,
		Status:       models.InitialFridgeStatus(condition),
		Notes:        req.Notes,
	}

	if err := s.fridgeRepo.Create(ctx, fridge); err != nil {
		return nil, err
	}
	return fridge, nil
}

// ListFridges lists fridges, optionally filtered by status.
func (s *FridgeService) ListFridges(ctx context.Context, status string) ([]*models.Fridge, error) {
	if status != "" && !models.ValidFridgeStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid fridge status filter: %s", status))
	}
	return s.fridgeRepo.GetAll(ctx, status)
}

// GetFridgeDetail retrieves a fridge together with its active checkout, if
// any, and its full lending history.
func (s *FridgeService) GetFridgeDetail(ctx context.Context, id int64) (*dto.FridgeDetailResponse, error) {
	fridge, err := s.fridgeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.fridgeRepo.GetCheckoutsByFridgeID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.FridgeDetailResponse{
		Fridge:          fridge,
		CheckoutHistory: history,
	}

	active, err := s.fridgeRepo.GetActiveCheckout(ctx, id)
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveCheckout) {
		return nil, err
	}
	detail.ActiveCheckout = active

	return detail, nil
}

// GetStats computes the fridge count block, overdue included.
func (s *FridgeService) GetStats(ctx context.Context) (*models.FridgeStats, error) {
	return s.fridgeRepo.GetStats(ctx)
}

// CheckoutFridge lends a fridge to a student. Only an available fridge
// can be checked out; the transition is atomic against concurrent
// checkouts of the same fridge.
func (s *FridgeService) CheckoutFridge(ctx context.Context, req *dto.CheckoutFridgeRequest) (*models.FridgeCheckout, error) {
	checkout := &models.FridgeCheckout{
		FridgeID:            req.FridgeID,
		StudentName:         strings.TrimSpace(req.StudentName),
		StudentEmail:        NormalizeEmail(req.StudentEmail),
		StudentID:           req.StudentID,
		HousingAssignment:   req.HousingAssignment,
		PhoneNumber:         req.PhoneNumber,
		ConditionAtCheckout: req.ConditionAtCheckout,
		CheckedOutBy:        req.CheckedOutBy,
	}

	if req.ExpectedReturnDate != "" {
		d, err := time.Parse("2006-01-02", req.ExpectedReturnDate)
		if err != nil {
			return nil, apperrors.NewValidationError("expectedReturnDate must be formatted as YYYY-MM-DD")
		}
		checkout.ExpectedReturnDate = &d
	}

	if checkout.ConditionAtCheckout == "" {
		fridge, err := s.fridgeRepo.GetByID(ctx, req.FridgeID)
		if err != nil {
			return nil, err
		}
		checkout.ConditionAtCheckout = fridge.Condition
	}

	if err := s.fridgeRepo.Checkout(ctx, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// ReturnFridge checks a fridge back in. The reported condition decides
// where the fridge lands: Needs Repair and Damaged route to maintenance,
// anything else back to available. A fridge reported Lost is recorded as
// Needs Repair, since its true condition cannot be inspected.
func (s *FridgeService) ReturnFridge(ctx context.Context, fridgeID int64, req *dto.ReturnFridgeRequest) (*models.FridgeCheckout, error) {
	active, err := s.fridgeRepo.GetActiveCheckout(ctx, fridgeID)
	if err != nil {
		return nil, err
	}

	return s.fridgeRepo.Return(ctx, active.ID,
		req.ConditionAtReturn, req.CheckedInBy,
		models.ReturnTargetStatus(req.ConditionAtReturn),
		models.StoredConditionAfterReturn(req.ConditionAtReturn))
}

// PatchFridge applies an administrative field patch. Writing status here
// bypasses the checkout machinery and is reserved for corrections.
func (s *FridgeService) PatchFridge(ctx context.Context, id int64, req *dto.PatchFridgeRequest) (*models.Fridge, error) {
	if req.Status != nil && !models.ValidFridgeStatus(*req.Status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid fridge status: %s", *req.Status))
	}

	patch := &models.FridgePatch{
		FridgeNumber: req.FridgeNumber,
		Brand:        req.Brand,
		Model:        req.Model,
		Size:         req.Size,
		Condition:    req.Condition,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	return s.fridgeRepo.UpdatePartial(ctx, id, patch)
}

// DeleteFridge removes a fridge that has never been lent out. A fridge
// with any checkout history is kept for the audit trail.
func (s *FridgeService) DeleteFridge(ctx context.Context, id int64) error {
	return s.fridgeRepo.Delete(ctx, id)
}

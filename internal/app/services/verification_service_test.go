package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

// fakeCheckoutRepo is an in-memory CheckoutRepository. The cascade
// semantics mirror the SQL: a batch update overwrites every item.
type fakeCheckoutRepo struct {
	checkouts map[int64]*models.Checkout
	items     map[int64]*models.CheckoutItem
	nextID    int64
}

func newFakeCheckoutRepo() *fakeCheckoutRepo {
	return &fakeCheckoutRepo{
		checkouts: make(map[int64]*models.Checkout),
		items:     make(map[int64]*models.CheckoutItem),
	}
}

func (f *fakeCheckoutRepo) Create(_ context.Context, checkout *models.Checkout) error {
	f.nextID++
	checkout.ID = f.nextID
	checkout.Date = time.Now()
	checkout.VerificationStatus = models.VerificationPending
	for _, item := range checkout.Items {
		f.nextID++
		item.ID = f.nextID
		item.CheckoutID = checkout.ID
		item.VerificationStatus = models.VerificationPending
		f.items[item.ID] = item
	}
	f.checkouts[checkout.ID] = checkout
	return nil
}

func (f *fakeCheckoutRepo) List(_ context.Context, status string, limit int, _ bool) ([]*models.Checkout, error) {
	var out []*models.Checkout
	for _, c := range f.checkouts {
		if status == "" || string(c.VerificationStatus) == status {
			out = append(out, c)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCheckoutRepo) GetByID(_ context.Context, id int64) (*models.Checkout, error) {
	c, ok := f.checkouts[id]
	if !ok {
		return nil, apperrors.ErrCheckoutNotFound
	}
	return c, nil
}

func (f *fakeCheckoutRepo) UpdateStatus(_ context.Context, id int64, status models.VerificationStatus, verifiedBy string) (*models.Checkout, error) {
	c, ok := f.checkouts[id]
	if !ok {
		return nil, apperrors.ErrCheckoutNotFound
	}
	now := time.Now()
	c.VerificationStatus = status
	c.VerifiedAt = &now
	c.VerifiedBy = &verifiedBy
	for _, item := range c.Items {
		item.VerificationStatus = status
		item.VerifiedAt = &now
		item.VerifiedBy = &verifiedBy
	}
	return c, nil
}

func (f *fakeCheckoutRepo) UpdateItemStatus(_ context.Context, id int64, status models.VerificationStatus, verifiedBy string) (*models.CheckoutItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrCheckoutItemNotFound
	}
	now := time.Now()
	item.VerificationStatus = status
	item.VerifiedAt = &now
	item.VerifiedBy = &verifiedBy
	return item, nil
}

func (f *fakeCheckoutRepo) GetStats(_ context.Context) (*models.VerificationStats, error) {
	return &models.VerificationStats{}, nil
}

func createTestCheckout(t *testing.T, svc *VerificationService, itemNames ...string) *models.Checkout {
	t.Helper()
	req := &dto.CreateCheckoutRequest{
		OwnerName: "Robin Chen",
		Email:     "robin@example.edu",
	}
	for _, name := range itemNames {
		req.Items = append(req.Items, dto.CreateCheckoutItemRequest{ItemName: name})
	}
	checkout, err := svc.CreateCheckout(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	return checkout
}

func TestCreateCheckoutStartsPending(t *testing.T) {
	svc := NewVerificationService(newFakeCheckoutRepo())
	checkout := createTestCheckout(t, svc, "Desk lamp", "Mini shelf")

	if checkout.VerificationStatus != models.VerificationPending {
		t.Errorf("batch status = %s, want pending", checkout.VerificationStatus)
	}
	if len(checkout.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(checkout.Items))
	}
	for _, item := range checkout.Items {
		if item.VerificationStatus != models.VerificationPending {
			t.Errorf("item %q status = %s, want pending", item.ItemName, item.VerificationStatus)
		}
		if item.ItemQuantity != 1 {
			t.Errorf("item %q quantity = %d, want defaulted 1", item.ItemName, item.ItemQuantity)
		}
	}
}

func TestUpdateCheckoutStatusCascadesToItems(t *testing.T) {
	repo := newFakeCheckoutRepo()
	svc := NewVerificationService(repo)
	ctx := context.Background()
	checkout := createTestCheckout(t, svc, "Desk lamp", "Mini shelf")

	// Flag one item first; the batch decision must overwrite it.
	if _, err := svc.UpdateItemStatus(ctx, checkout.Items[0].ID, &dto.UpdateVerificationRequest{
		Status: "flagged", VerifiedBy: "reviewer",
	}); err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}

	updated, err := svc.UpdateCheckoutStatus(ctx, checkout.ID, &dto.UpdateVerificationRequest{
		Status: "approved", VerifiedBy: "manager",
	})
	if err != nil {
		t.Fatalf("UpdateCheckoutStatus: %v", err)
	}
	if updated.VerificationStatus != models.VerificationApproved {
		t.Errorf("batch status = %s, want approved", updated.VerificationStatus)
	}
	for _, item := range updated.Items {
		if item.VerificationStatus != models.VerificationApproved {
			t.Errorf("item %q status = %s, want approved after cascade", item.ItemName, item.VerificationStatus)
		}
	}
}

func TestUpdateItemStatusLeavesBatchAlone(t *testing.T) {
	svc := NewVerificationService(newFakeCheckoutRepo())
	checkout := createTestCheckout(t, svc, "Desk lamp")

	item, err := svc.UpdateItemStatus(context.Background(), checkout.Items[0].ID, &dto.UpdateVerificationRequest{
		Status: "approved",
	})
	if err != nil {
		t.Fatalf("UpdateItemStatus: %v", err)
	}
	if item.VerificationStatus != models.VerificationApproved {
		t.Errorf("item status = %s, want approved", item.VerificationStatus)
	}
	if checkout.VerificationStatus != models.VerificationPending {
		t.Errorf("batch status = %s, want still pending", checkout.VerificationStatus)
	}
}

func TestListCheckoutsValidatesStatusFilter(t *testing.T) {
	svc := NewVerificationService(newFakeCheckoutRepo())
	if _, err := svc.ListCheckouts(context.Background(), "rejected", 0, false); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

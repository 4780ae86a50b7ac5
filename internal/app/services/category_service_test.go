package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

func TestFindOrCreateCategoryCaseInsensitive(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	first, created, err := svc.FindOrCreateCategory(ctx, "Kitchen Appliances", "staff-sam")
	if err != nil {
		t.Fatalf("FindOrCreateCategory: %v", err)
	}
	if !created {
		t.Error("expected first resolution to create")
	}
	if first.CreatedBy != "staff-sam" {
		t.Errorf("creator = %q, want staff-sam", first.CreatedBy)
	}

	second, created, err := svc.FindOrCreateCategory(ctx, "kitchen appliances", "staff-other")
	if err != nil {
		t.Fatalf("second FindOrCreateCategory: %v", err)
	}
	if created {
		t.Error("case variant must resolve to the existing category")
	}
	if second.ID != first.ID {
		t.Errorf("resolved to different category: %d != %d", second.ID, first.ID)
	}
	if second.Name != "Kitchen Appliances" {
		t.Errorf("stored casing changed: %q", second.Name)
	}
	if second.CreatedBy != "staff-sam" {
		t.Errorf("existing category creator changed to %q", second.CreatedBy)
	}
}

func TestFindOrCreateCategoryRequiresName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	if _, _, err := svc.FindOrCreateCategory(context.Background(), "  ", "staff-sam"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateCategoryDuplicateIsConflict(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Lamps"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "lamps"}); !errors.Is(err, apperrors.ErrCategoryNameExists) {
		t.Errorf("expected ErrCategoryNameExists, got %v", err)
	}
}

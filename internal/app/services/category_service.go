package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

// CategoryRepository is the storage surface the category service depends on.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByName(ctx context.Context, name string) (*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetAll(ctx context.Context) ([]*models.Category, error)
	IncrementUsage(ctx context.Context, id int64) error
}

// CategoryService manages the product category vocabulary. Category
// identity is case-insensitive on the name; the stored casing is the
// one first seen.
type CategoryService struct {
	categoryRepo CategoryRepository
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(categoryRepo CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// CreateCategory registers a category directly. A name that only differs
// in case from an existing one is a conflict.
func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: req.CreatedBy,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// FindOrCreateCategory resolves a name to a category row, creating it on
// first reference. Lookup is case-insensitive; a concurrent-insert
// conflict is resolved by re-fetching. createdBy is only recorded when
// this call inserts the category; an existing row keeps its creator.
func (s *CategoryService) FindOrCreateCategory(ctx context.Context, name, createdBy string) (*models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperrors.NewValidationError("category name is required")
	}

	category, err := s.categoryRepo.GetByName(ctx, name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, apperrors.ErrCategoryNotFound) {
		return nil, false, fmt.Errorf("error resolving category: %w", err)
	}

	category = &models.Category{Name: name, CreatedBy: strings.TrimSpace(createdBy)}
	err = s.categoryRepo.Create(ctx, category)
	if err == nil {
		return category, true, nil
	}
	if errors.Is(err, apperrors.ErrCategoryNameExists) {
		category, err = s.categoryRepo.GetByName(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("error re-fetching category after conflict: %w", err)
		}
		return category, false, nil
	}
	return nil, false, fmt.Errorf("error creating category: %w", err)
}

// GetCategoryByID retrieves a single category.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid category ID")
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// GetAllCategories lists every category ordered by name.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// IncrementUsage bumps the usage counter of a category.
func (s *CategoryService) IncrementUsage(ctx context.Context, id int64) error {
	return s.categoryRepo.IncrementUsage(ctx, id)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/csvformat"
)

// ProductRepository is the storage surface the product service depends on.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetAll(ctx context.Context) ([]*models.Product, error)
}

// DonorResolver resolves donor references for product logging.
type DonorResolver interface {
	FindOrCreateDonor(ctx context.Context, rec csvformat.DonorRecord) (*models.Donor, bool, error)
	GetDonorByID(ctx context.Context, id int64) (*models.Donor, error)
}

// CategoryResolver resolves category references for product logging.
type CategoryResolver interface {
	FindOrCreateCategory(ctx context.Context, name, createdBy string) (*models.Category, bool, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	IncrementUsage(ctx context.Context, id int64) error
}

// ProductService logs donated products, resolving donor and category
// references on the way in.
type ProductService struct {
	productRepo ProductRepository
	donors      DonorResolver
	categories  CategoryResolver
}

// NewProductService creates a new product service instance.
func NewProductService(productRepo ProductRepository, donors DonorResolver, categories CategoryResolver) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		donors:      donors,
		categories:  categories,
	}
}

// CreateProduct logs a donation. The donor may be referenced by ID or
// supplied as raw identity data; same for the category. The category's
// usage counter is bumped exactly once per logged product. photoURL is
// the already-stored photo location, empty when no photo was uploaded.
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest, photoURL string) (*models.Product, error) {
	donor, err := s.resolveDonor(ctx, req)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		DonorID:     donor.ID,
		CategoryID:  category.ID,
		Description: strings.TrimSpace(req.Description),
	}
	if photoURL != "" {
		product.PhotoURL = &photoURL
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.categories.IncrementUsage(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("error counting category usage: %w", err)
	}

	product.Donor = donor
	product.Category = category
	return product, nil
}

func (s *ProductService) resolveDonor(ctx context.Context, req *dto.CreateProductRequest) (*models.Donor, error) {
	if req.DonorID != nil {
		return s.donors.GetDonorByID(ctx, *req.DonorID)
	}
	if req.DonorName == "" || req.DonorEmail == "" {
		return nil, apperrors.NewValidationError("either donorId or donorName and donorEmail are required")
	}
	donor, _, err := s.donors.FindOrCreateDonor(ctx, csvformat.DonorRecord{
		Name:     req.DonorName,
		Email:    req.DonorEmail,
		Housing:  req.DonorHousing,
		GradYear: req.DonorGradYear,
	})
	return donor, err
}

func (s *ProductService) resolveCategory(ctx context.Context, req *dto.CreateProductRequest) (*models.Category, error) {
	if req.CategoryID != nil {
		return s.categories.GetCategoryByID(ctx, *req.CategoryID)
	}
	if req.CategoryName == "" {
		return nil, apperrors.NewValidationError("either categoryId or categoryName is required")
	}
	category, _, err := s.categories.FindOrCreateCategory(ctx, req.CategoryName, req.CreatedBy)
	return category, err
}

// GetProductByID retrieves a product with its donor and category.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid product ID")
	}
	return s.productRepo.GetByID(ctx, id)
}

// GetAllProducts lists logged products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.GetAll(ctx)
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

type fakeProductRepo struct {
	products []*models.Product
	nextID   int64
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	f.nextID++
	product.ID = f.nextID
	f.products = append(f.products, product)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrProductNotFound
}

func (f *fakeProductRepo) GetAll(_ context.Context) ([]*models.Product, error) {
	return f.products, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository with case-insensitive
// name identity.
type fakeCategoryRepo struct {
	categories map[int64]*models.Category
	nextID     int64
	increments map[int64]int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[int64]*models.Category),
		increments: make(map[int64]int),
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if _, err := f.GetByName(context.Background(), category.Name); err == nil {
		return apperrors.ErrCategoryNameExists
	}
	f.nextID++
	category.ID = f.nextID
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) GetByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, apperrors.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetAll(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) IncrementUsage(_ context.Context, id int64) error {
	c, ok := f.categories[id]
	if !ok {
		return apperrors.ErrCategoryNotFound
	}
	c.TimesUsed++
	f.increments[id]++
	return nil
}

func newTestProductService() (*ProductService, *fakeProductRepo, *fakeDonorRepo, *fakeCategoryRepo) {
	productRepo := &fakeProductRepo{}
	donorRepo := newFakeDonorRepo()
	categoryRepo := newFakeCategoryRepo()
	svc := NewProductService(productRepo,
		NewDonorService(donorRepo),
		NewCategoryService(categoryRepo))
	return svc, productRepo, donorRepo, categoryRepo
}

func TestCreateProductResolvesRawDonorAndCategory(t *testing.T) {
	svc, _, donorRepo, categoryRepo := newTestProductService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		DonorName:    "Ada Lovelace",
		DonorEmail:   "Ada@example.edu",
		CategoryName: "Lamps",
		Description:  "Desk lamp, works",
	}, "/uploads/abc.jpg")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Donor == nil || product.Donor.Email != "ada@example.edu" {
		t.Errorf("donor not resolved: %+v", product.Donor)
	}
	if product.Category == nil || product.Category.Name != "Lamps" {
		t.Errorf("category not resolved: %+v", product.Category)
	}
	if product.PhotoURL == nil || *product.PhotoURL != "/uploads/abc.jpg" {
		t.Errorf("photo URL not stored: %v", product.PhotoURL)
	}
	if categoryRepo.increments[product.Category.ID] != 1 {
		t.Errorf("category usage incremented %d times, want 1", categoryRepo.increments[product.Category.ID])
	}

	// A second donation from the same donor into the same category must
	// reuse both rows and bump usage again.
	second, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		DonorName:    "Ada Lovelace",
		DonorEmail:   "ada@example.edu",
		CategoryName: "lamps",
	}, "")
	if err != nil {
		t.Fatalf("second CreateProduct: %v", err)
	}
	if second.DonorID != product.DonorID {
		t.Errorf("donor duplicated: %d != %d", second.DonorID, product.DonorID)
	}
	if second.CategoryID != product.CategoryID {
		t.Errorf("category duplicated across case variants: %d != %d", second.CategoryID, product.CategoryID)
	}
	if second.PhotoURL != nil {
		t.Errorf("photo URL set without upload: %v", second.PhotoURL)
	}
	if got := categoryRepo.increments[product.Category.ID]; got != 2 {
		t.Errorf("category usage incremented %d times, want 2", got)
	}
	if donorRepo.creates != 1 {
		t.Errorf("donor created %d times, want 1", donorRepo.creates)
	}
}

func TestCreateProductAttributesNewCategoryCreator(t *testing.T) {
	svc, _, _, categoryRepo := newTestProductService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		DonorName:    "Grace Hopper",
		DonorEmail:   "grace@example.edu",
		CategoryName: "Storage Bins",
		CreatedBy:    "staff-jamie",
	}, "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Category.CreatedBy != "staff-jamie" {
		t.Errorf("category CreatedBy = %q, want staff-jamie", product.Category.CreatedBy)
	}

	// Logging into an existing category must not reassign its creator.
	second, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		DonorName:    "Grace Hopper",
		DonorEmail:   "grace@example.edu",
		CategoryName: "storage bins",
		CreatedBy:    "staff-riley",
	}, "")
	if err != nil {
		t.Fatalf("second CreateProduct: %v", err)
	}
	if got := categoryRepo.categories[second.CategoryID].CreatedBy; got != "staff-jamie" {
		t.Errorf("existing category creator changed to %q", got)
	}
}

func TestCreateProductByIDs(t *testing.T) {
	svc, _, donorRepo, categoryRepo := newTestProductService()
	ctx := context.Background()

	donor := &models.Donor{Name: "Ada Lovelace", Email: "ada@example.edu"}
	if err := donorRepo.Create(ctx, donor); err != nil {
		t.Fatal(err)
	}
	category := &models.Category{Name: "Lamps"}
	if err := categoryRepo.Create(ctx, category); err != nil {
		t.Fatal(err)
	}

	product, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		DonorID:    &donor.ID,
		CategoryID: &category.ID,
	}, "")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.DonorID != donor.ID || product.CategoryID != category.ID {
		t.Errorf("references not kept: donor %d category %d", product.DonorID, product.CategoryID)
	}

	missing := int64(9999)
	if _, err := svc.CreateProduct(ctx, &dto.CreateProductRequest{
		DonorID:    &missing,
		CategoryID: &category.ID,
	}, ""); !errors.Is(err, apperrors.ErrDonorNotFound) {
		t.Errorf("expected ErrDonorNotFound, got %v", err)
	}
}

func TestCreateProductRequiresDonorReference(t *testing.T) {
	svc, _, _, _ := newTestProductService()
	_, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
		CategoryName: "Lamps",
	}, "")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

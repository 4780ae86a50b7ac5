package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (donor_id, category_id, description, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date_logged
	`

	err := r.db.QueryRow(ctx, query,
		product.DonorID, product.CategoryID, product.Description, product.PhotoURL).
		Scan(&product.ID, &product.DateLogged)
	if err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}

	return nil
}

const productSelect = `
	SELECT p.id, p.donor_id, p.category_id, p.description, p.photo_url, p.date_logged,
	       d.id, d.name, d.email, d.housing, d.grad_year, d.created_at, d.updated_at,
	       c.id, c.name, c.times_used, c.created_by, c.created_at
	FROM products p
	JOIN donors d ON d.id = p.donor_id
	JOIN categories c ON c.id = p.category_id
`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var product models.Product
	var donor models.Donor
	var category models.Category
	err := row.Scan(
		&product.ID,
		&product.DonorID,
		&product.CategoryID,
		&product.Description,
		&product.PhotoURL,
		&product.DateLogged,
		&donor.ID,
		&donor.Name,
		&donor.Email,
		&donor.Housing,
		&donor.GradYear,
		&donor.CreatedAt,
		&donor.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.TimesUsed,
		&category.CreatedBy,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Donor = &donor
	product.Category = &category
	return &product, nil
}

// GetByID retrieves a product with its donor and category nested.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("error retrieving product: %w", err)
	}
	return product, nil
}

// GetAll retrieves all products, newest first, with donor and category
// nested.
func (r *ProductRepository) GetAll(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, productSelect+` ORDER BY p.date_logged DESC`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

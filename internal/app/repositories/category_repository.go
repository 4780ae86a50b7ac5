package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/dberrors"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// Create inserts a new category, keeping the caller's casing. A duplicate
// name (case-insensitive) surfaces as apperrors.ErrCategoryNameExists.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, created_by)
		VALUES ($1, $2)
		RETURNING id, times_used, created_at
	`

	err := r.db.QueryRow(ctx, query, category.Name, category.CreatedBy).
		Scan(&category.ID, &category.TimesUsed, &category.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "categories_name_key") {
			return apperrors.ErrCategoryNameExists
		}
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetByName retrieves a category by name, compared case-insensitively.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
		SELECT id, name, times_used, created_by, created_at
		FROM categories
		WHERE lower(name) = lower($1)
	`

	var category models.Category
	err := r.db.QueryRow(ctx, query, name).Scan(
		&category.ID,
		&category.Name,
		&category.TimesUsed,
		&category.CreatedBy,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category by name: %w", err)
	}

	return &category, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		SELECT id, name, times_used, created_by, created_at
		FROM categories
		WHERE id = $1
	`

	var category models.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.TimesUsed,
		&category.CreatedBy,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &category, nil
}

// GetAll retrieves all categories ordered by name.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, times_used, created_by, created_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.TimesUsed,
			&category.CreatedBy,
			&category.CreatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// IncrementUsage bumps the category usage counter. Called exactly once per
// product filed under the category; lookups never increment.
func (r *CategoryRepository) IncrementUsage(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE categories SET times_used = times_used + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing category usage: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/dberrors"
)

// DonorRepository handles database operations for donors.
type DonorRepository struct {
	db *pgxpool.Pool
}

// NewDonorRepository creates a new donor repository.
func NewDonorRepository(db *pgxpool.Pool) *DonorRepository {
	return &DonorRepository{
		db: db,
	}
}

// Create inserts a new donor. Emails are stored lowercased; a duplicate
// email surfaces as apperrors.ErrDonorEmailExists.
func (r *DonorRepository) Create(ctx context.Context, donor *models.Donor) error {
	query := `
		INSERT INTO donors (name, email, housing, grad_year)
		VALUES ($1, lower($2), $3, $4)
		RETURNING id, email, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, donor.Name, donor.Email, donor.Housing, donor.GradYear).
		Scan(&donor.ID, &donor.Email, &donor.CreatedAt, &donor.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "donors_email_key") {
			return apperrors.ErrDonorEmailExists
		}
		return fmt.Errorf("error creating donor: %w", err)
	}

	return nil
}

// GetByEmail retrieves a donor by email, compared case-insensitively.
func (r *DonorRepository) GetByEmail(ctx context.Context, email string) (*models.Donor, error) {
	query := `
		SELECT id, name, email, housing, grad_year, created_at, updated_at
		FROM donors
		WHERE email = lower($1)
	`

	var donor models.Donor
	err := r.db.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(
		&donor.ID,
		&donor.Name,
		&donor.Email,
		&donor.Housing,
		&donor.GradYear,
		&donor.CreatedAt,
		&donor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, fmt.Errorf("error retrieving donor by email: %w", err)
	}

	return &donor, nil
}

// GetByID retrieves a donor by ID together with their donation count.
func (r *DonorRepository) GetByID(ctx context.Context, id int64) (*models.Donor, error) {
	query := `
		SELECT d.id, d.name, d.email, d.housing, d.grad_year, d.created_at, d.updated_at,
		       (SELECT count(*) FROM products p WHERE p.donor_id = d.id)
		FROM donors d
		WHERE d.id = $1
	`

	var donor models.Donor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&donor.ID,
		&donor.Name,
		&donor.Email,
		&donor.Housing,
		&donor.GradYear,
		&donor.CreatedAt,
		&donor.UpdatedAt,
		&donor.DonationCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDonorNotFound
		}
		return nil, fmt.Errorf("error retrieving donor: %w", err)
	}

	return &donor, nil
}

// Search finds donors whose name or email contains the query string,
// case-insensitively.
func (r *DonorRepository) Search(ctx context.Context, q string) ([]*models.Donor, error) {
	query := `
		SELECT id, name, email, housing, grad_year, created_at, updated_at
		FROM donors
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("error searching donors: %w", err)
	}
	defer rows.Close()

	var donors []*models.Donor
	for rows.Next() {
		var donor models.Donor
		if err := rows.Scan(
			&donor.ID,
			&donor.Name,
			&donor.Email,
			&donor.Housing,
			&donor.GradYear,
			&donor.CreatedAt,
			&donor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		donors = append(donors, &donor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return donors, nil
}

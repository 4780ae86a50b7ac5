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

// CheckoutRepository handles database operations for donation drop-off
// batches and their items.
type CheckoutRepository struct {
	db *pgxpool.Pool
}

// NewCheckoutRepository creates a new checkout repository.
func NewCheckoutRepository(db *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{
		db: db,
	}
}

const checkoutBatchColumns = `id, date, owner_name, email, housing_assignment,
	graduation_year, verification_status, verified_at, verified_by`

func scanBatch(row pgx.Row) (*models.Checkout, error) {
	var c models.Checkout
	err := row.Scan(
		&c.ID,
		&c.Date,
		&c.OwnerName,
		&c.Email,
		&c.HousingAssignment,
		&c.GraduationYear,
		&c.VerificationStatus,
		&c.VerifiedAt,
		&c.VerifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const checkoutItemColumns = `id, checkout_id, item_name, item_quantity,
	description, image_url, verification_status, verified_at, verified_by`

func scanItem(row pgx.Row) (*models.CheckoutItem, error) {
	var item models.CheckoutItem
	err := row.Scan(
		&item.ID,
		&item.CheckoutID,
		&item.ItemName,
		&item.ItemQuantity,
		&item.Description,
		&item.ImageURL,
		&item.VerificationStatus,
		&item.VerifiedAt,
		&item.VerifiedBy,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a drop-off batch and its items in one transaction.
// Everything starts pending.
func (r *CheckoutRepository) Create(ctx context.Context, checkout *models.Checkout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO checkouts (owner_name, email, housing_assignment, graduation_year)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, verification_status
	`, checkout.OwnerName, checkout.Email, checkout.HousingAssignment, checkout.GraduationYear).
		Scan(&checkout.ID, &checkout.Date, &checkout.VerificationStatus)
	if err != nil {
		return fmt.Errorf("error creating checkout: %w", err)
	}

	for _, item := range checkout.Items {
		item.CheckoutID = checkout.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO checkout_items (checkout_id, item_name, item_quantity, description, image_url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, verification_status
		`, item.CheckoutID, item.ItemName, item.ItemQuantity, item.Description, item.ImageURL).
			Scan(&item.ID, &item.VerificationStatus)
		if err != nil {
			return fmt.Errorf("error creating checkout item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List retrieves drop-off batches, newest first, with their items
// attached. status filters when non-empty; limit caps the batch count when
// positive; lastMonthOnly restricts to batches created in the last 30
// days.
func (r *CheckoutRepository) List(ctx context.Context, status string, limit int, lastMonthOnly bool) ([]*models.Checkout, error) {
	query := `SELECT ` + checkoutBatchColumns + ` FROM checkouts`
	var conditions []string
	var args []interface{}

	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("verification_status = $%d", len(args)))
	}
	if lastMonthOnly {
		conditions = append(conditions, "date >= now() - interval '30 days'")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY date DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving checkouts: %w", err)
	}
	defer rows.Close()

	var checkouts []*models.Checkout
	byID := make(map[int64]*models.Checkout)
	var ids []int64
	for rows.Next() {
		checkout, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		checkout.Items = []*models.CheckoutItem{}
		checkouts = append(checkouts, checkout)
		byID[checkout.ID] = checkout
		ids = append(ids, checkout.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return checkouts, nil
	}

	itemRows, err := r.db.Query(ctx,
		`SELECT `+checkoutItemColumns+` FROM checkout_items WHERE checkout_id = ANY($1) ORDER BY id`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving checkout items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if parent, ok := byID[item.CheckoutID]; ok {
			parent.Items = append(parent.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return checkouts, nil
}

// GetByID retrieves one batch with its items.
func (r *CheckoutRepository) GetByID(ctx context.Context, id int64) (*models.Checkout, error) {
	checkout, err := scanBatch(r.db.QueryRow(ctx,
		`SELECT `+checkoutBatchColumns+` FROM checkouts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("error retrieving checkout: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+checkoutItemColumns+` FROM checkout_items WHERE checkout_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving checkout items: %w", err)
	}
	defer rows.Close()

	checkout.Items = []*models.CheckoutItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		checkout.Items = append(checkout.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checkout, nil
}

// UpdateStatus sets a batch's verification status and cascades the same
// status, verified_at and verified_by to every item in the batch,
// unconditionally discarding prior per-item distinctions.
func (r *CheckoutRepository) UpdateStatus(ctx context.Context, id int64, status models.VerificationStatus, verifiedBy string) (*models.Checkout, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin verification transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	checkout, err := scanBatch(tx.QueryRow(ctx, `
		UPDATE checkouts
		SET verification_status = $2, verified_at = now(), verified_by = $3
		WHERE id = $1
		RETURNING `+checkoutBatchColumns,
		id, status, verifiedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("error updating checkout status: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE checkout_items
		SET verification_status = $2, verified_at = now(), verified_by = $3
		WHERE checkout_id = $1
	`, id, status, verifiedBy)
	if err != nil {
		return nil, fmt.Errorf("error cascading status to items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit verification transaction: %w", err)
	}

	return r.GetByID(ctx, checkout.ID)
}

// UpdateItemStatus sets one item's verification status. The parent batch
// is left untouched.
func (r *CheckoutRepository) UpdateItemStatus(ctx context.Context, id int64, status models.VerificationStatus, verifiedBy string) (*models.CheckoutItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		UPDATE checkout_items
		SET verification_status = $2, verified_at = now(), verified_by = $3
		WHERE id = $1
		RETURNING `+checkoutItemColumns,
		id, status, verifiedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCheckoutItemNotFound
		}
		return nil, fmt.Errorf("error updating checkout item status: %w", err)
	}
	return item, nil
}

// GetStats computes the verification count block.
func (r *CheckoutRepository) GetStats(ctx context.Context) (*models.VerificationStats, error) {
	var stats models.VerificationStats
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE verification_status = 'pending'),
		       count(*) FILTER (WHERE verification_status = 'approved'),
		       count(*) FILTER (WHERE verification_status = 'flagged'),
		       count(*) FILTER (WHERE verification_status = 'approved' AND date >= now() - interval '30 days')
		FROM checkouts
	`).Scan(&stats.PendingCheckouts, &stats.ApprovedCheckouts, &stats.FlaggedCheckouts, &stats.ApprovedLastMonth)
	if err != nil {
		return nil, fmt.Errorf("error computing checkout stats: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE verification_status = 'pending'),
		       count(*) FILTER (WHERE verification_status = 'approved'),
		       count(*) FILTER (WHERE verification_status = 'flagged')
		FROM checkout_items
	`).Scan(&stats.PendingItems, &stats.ApprovedItems, &stats.FlaggedItems)
	if err != nil {
		return nil, fmt.Errorf("error computing item stats: %w", err)
	}

	return &stats, nil
}

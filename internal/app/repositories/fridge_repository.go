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

// FridgeRepository handles database operations for fridges and their
// lending transactions.
type FridgeRepository struct {
	db *pgxpool.Pool
}

// NewFridgeRepository creates a new fridge repository.
func NewFridgeRepository(db *pgxpool.Pool) *FridgeRepository {
	return &FridgeRepository{
		db: db,
	}
}

// Create inserts a new fridge. A duplicate fridge number surfaces as
// apperrors.ErrFridgeNumberExists.
func (r *FridgeRepository) Create(ctx context.Context, fridge *models.Fridge) error {
	query := `
		INSERT INTO fridges (fridge_number, brand, model, size, condition, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		fridge.FridgeNumber, fridge.Brand, fridge.Model, fridge.Size,
		fridge.Condition, fridge.Status, fridge.Notes).
		Scan(&fridge.ID, &fridge.CreatedAt, &fridge.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "fridges_fridge_number_key") {
			return apperrors.ErrFridgeNumberExists
		}
		return fmt.Errorf("error creating fridge: %w", err)
	}

	return nil
}

const fridgeColumns = `id, fridge_number, brand, model, size, condition, status, notes, created_at, updated_at`

func scanFridge(row pgx.Row) (*models.Fridge, error) {
	var fridge models.Fridge
	err := row.Scan(
		&fridge.ID,
		&fridge.FridgeNumber,
		&fridge.Brand,
		&fridge.Model,
		&fridge.Size,
		&fridge.Condition,
		&fridge.Status,
		&fridge.Notes,
		&fridge.CreatedAt,
		&fridge.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &fridge, nil
}

// GetByID retrieves a fridge by ID.
func (r *FridgeRepository) GetByID(ctx context.Context, id int64) (*models.Fridge, error) {
	fridge, err := scanFridge(r.db.QueryRow(ctx,
		`SELECT `+fridgeColumns+` FROM fridges WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFridgeNotFound
		}
		return nil, fmt.Errorf("error retrieving fridge: %w", err)
	}
	return fridge, nil
}

// GetAll retrieves fridges, optionally filtered by status, ordered by
// fridge number.
func (r *FridgeRepository) GetAll(ctx context.Context, status string) ([]*models.Fridge, error) {
	query := `SELECT ` + fridgeColumns + ` FROM fridges`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY fridge_number`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving fridges: %w", err)
	}
	defer rows.Close()

	var fridges []*models.Fridge
	for rows.Next() {
		fridge, err := scanFridge(rows)
		if err != nil {
			return nil, err
		}
		fridges = append(fridges, fridge)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fridges, nil
}

// GetStats computes the fridge count block. Overdue is derived from active
// checkouts whose expected return date is strictly before today.
func (r *FridgeRepository) GetStats(ctx context.Context) (*models.FridgeStats, error) {
	var stats models.FridgeStats
	err := r.db.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'available'),
		       count(*) FILTER (WHERE status = 'checked_out'),
		       count(*) FILTER (WHERE status = 'maintenance')
		FROM fridges
	`).Scan(&stats.Total, &stats.Available, &stats.CheckedOut, &stats.Maintenance)
	if err != nil {
		return nil, fmt.Errorf("error computing fridge stats: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM fridge_checkouts
		WHERE status = 'active' AND expected_return_date < CURRENT_DATE
	`).Scan(&stats.Overdue)
	if err != nil {
		return nil, fmt.Errorf("error computing overdue count: %w", err)
	}

	return &stats, nil
}

// Checkout performs the available → checked_out transition as one atomic
// unit. The fridge row is locked so that two concurrent checkouts cannot
// both observe it as available.
func (r *FridgeRepository) Checkout(ctx context.Context, checkout *models.FridgeCheckout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status models.FridgeStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM fridges WHERE id = $1 FOR UPDATE`,
		checkout.FridgeID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrFridgeNotFound
		}
		return fmt.Errorf("error locking fridge row: %w", err)
	}

	if status != models.FridgeStatusAvailable {
		return apperrors.ErrFridgeNotAvailable
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO fridge_checkouts
			(fridge_id, student_name, student_email, student_id, housing_assignment,
			 phone_number, expected_return_date, condition_at_checkout, status, checked_out_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active', $9)
		RETURNING id, checkout_date, status
	`,
		checkout.FridgeID, checkout.StudentName, checkout.StudentEmail,
		checkout.StudentID, checkout.HousingAssignment, checkout.PhoneNumber,
		checkout.ExpectedReturnDate, checkout.ConditionAtCheckout, checkout.CheckedOutBy).
		Scan(&checkout.ID, &checkout.CheckoutDate, &checkout.Status)
	if err != nil {
		return fmt.Errorf("error creating fridge checkout: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE fridges SET status = 'checked_out', updated_at = now() WHERE id = $1`,
		checkout.FridgeID)
	if err != nil {
		return fmt.Errorf("error updating fridge status: %w", err)
	}

	return tx.Commit(ctx)
}

const checkoutColumns = `id, fridge_id, student_name, student_email, student_id,
	housing_assignment, phone_number, checkout_date, expected_return_date,
	condition_at_checkout, actual_return_date, condition_at_return, status,
	checked_out_by, checked_in_by`

func scanCheckout(row pgx.Row) (*models.FridgeCheckout, error) {
	var c models.FridgeCheckout
	err := row.Scan(
		&c.ID,
		&c.FridgeID,
		&c.StudentName,
		&c.StudentEmail,
		&c.StudentID,
		&c.HousingAssignment,
		&c.PhoneNumber,
		&c.CheckoutDate,
		&c.ExpectedReturnDate,
		&c.ConditionAtCheckout,
		&c.ActualReturnDate,
		&c.ConditionAtReturn,
		&c.Status,
		&c.CheckedOutBy,
		&c.CheckedInBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Return performs the terminal update on an active checkout and routes the
// fridge to its post-return state, all in one transaction. The caller
// supplies the already-computed target status and stored condition.
func (r *FridgeRepository) Return(ctx context.Context, checkoutID int64, conditionAtReturn, checkedInBy string,
	targetStatus models.FridgeStatus, storedCondition string) (*models.FridgeCheckout, error) {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin return transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var fridgeID int64
	var status models.FridgeCheckoutStatus
	err = tx.QueryRow(ctx,
		`SELECT fridge_id, status FROM fridge_checkouts WHERE id = $1 FOR UPDATE`,
		checkoutID).Scan(&fridgeID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveCheckout
		}
		return nil, fmt.Errorf("error locking checkout row: %w", err)
	}

	if status != models.FridgeCheckoutActive {
		return nil, apperrors.ErrNoActiveCheckout
	}

	checkout, err := scanCheckout(tx.QueryRow(ctx, `
		UPDATE fridge_checkouts
		SET status = 'returned', actual_return_date = now(),
		    condition_at_return = $2, checked_in_by = $3
		WHERE id = $1
		RETURNING `+checkoutColumns,
		checkoutID, conditionAtReturn, checkedInBy))
	if err != nil {
		return nil, fmt.Errorf("error updating checkout: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE fridges SET status = $2, condition = $3, updated_at = now() WHERE id = $1`,
		fridgeID, targetStatus, storedCondition)
	if err != nil {
		return nil, fmt.Errorf("error updating fridge after return: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit return transaction: %w", err)
	}

	return checkout, nil
}

// GetCheckoutsByFridgeID retrieves the full lending history of a fridge,
// newest first.
func (r *FridgeRepository) GetCheckoutsByFridgeID(ctx context.Context, fridgeID int64) ([]*models.FridgeCheckout, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+checkoutColumns+` FROM fridge_checkouts WHERE fridge_id = $1 ORDER BY checkout_date DESC`,
		fridgeID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving checkout history: %w", err)
	}
	defer rows.Close()

	var checkouts []*models.FridgeCheckout
	for rows.Next() {
		checkout, err := scanCheckout(rows)
		if err != nil {
			return nil, err
		}
		checkouts = append(checkouts, checkout)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checkouts, nil
}

// GetActiveCheckout retrieves the single active checkout for a fridge, or
// apperrors.ErrNoActiveCheckout.
func (r *FridgeRepository) GetActiveCheckout(ctx context.Context, fridgeID int64) (*models.FridgeCheckout, error) {
	checkout, err := scanCheckout(r.db.QueryRow(ctx,
		`SELECT `+checkoutColumns+` FROM fridge_checkouts WHERE fridge_id = $1 AND status = 'active'`,
		fridgeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveCheckout
		}
		return nil, fmt.Errorf("error retrieving active checkout: %w", err)
	}
	return checkout, nil
}

// CountCheckouts counts all lending transactions ever recorded for a
// fridge.
func (r *FridgeRepository) CountCheckouts(ctx context.Context, fridgeID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM fridge_checkouts WHERE fridge_id = $1`, fridgeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting checkouts: %w", err)
	}
	return count, nil
}

// UpdatePartial applies the administrative field patch. Column names are
// fixed; only values are parameterized.
func (r *FridgeRepository) UpdatePartial(ctx context.Context, id int64, patch *models.FridgePatch) (*models.Fridge, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FridgeNumber != nil {
		add("fridge_number", *patch.FridgeNumber)
	}
	if patch.Brand != nil {
		add("brand", *patch.Brand)
	}
	if patch.Model != nil {
		add("model", *patch.Model)
	}
	if patch.Size != nil {
		add("size", *patch.Size)
	}
	if patch.Condition != nil {
		add("condition", *patch.Condition)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE fridges SET %s WHERE id = $%d RETURNING `+fridgeColumns,
		strings.Join(sets, ", "), len(args))

	fridge, err := scanFridge(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFridgeNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "fridges_fridge_number_key") {
			return nil, apperrors.ErrFridgeNumberExists
		}
		return nil, fmt.Errorf("error patching fridge: %w", err)
	}
	return fridge, nil
}

// Delete removes a fridge permanently. Deletion is refused when any
// checkout history exists, independent of foreign key behavior.
func (r *FridgeRepository) Delete(ctx context.Context, id int64) error {
	count, err := r.CountCheckouts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrFridgeHasHistory
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM fridges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting fridge: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFridgeNotFound
	}

	return nil
}

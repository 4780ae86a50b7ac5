package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "donors_email_key"}

	if !IsDuplicateConstraintError(dup, "donors_email_key") {
		t.Error("expected match for donors_email_key")
	}
	if IsDuplicateConstraintError(dup, "categories_name_key") {
		t.Error("unexpected match for a different constraint")
	}
	if IsDuplicateConstraintError(errors.New("plain error"), "donors_email_key") {
		t.Error("unexpected match for a non-pg error")
	}

	// Wrapped errors still match.
	wrapped := fmt.Errorf("insert failed: %w", dup)
	if !IsDuplicateConstraintError(wrapped, "donors_email_key") {
		t.Error("expected match through wrapping")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected unique violation match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation should not match")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil should not match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected foreign key violation match")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation should not match")
	}
}

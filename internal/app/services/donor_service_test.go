package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/csvformat"
)

// fakeDonorRepo is an in-memory DonorRepository keyed by lowercased
// email. conflictOnce makes the next Create fail with the duplicate
// sentinel while still inserting the row, simulating a lost race.
type fakeDonorRepo struct {
	byEmail      map[string]*models.Donor
	nextID       int64
	creates      int
	conflictOnce bool
}

func newFakeDonorRepo() *fakeDonorRepo {
	return &fakeDonorRepo{byEmail: make(map[string]*models.Donor)}
}

func (f *fakeDonorRepo) Create(_ context.Context, donor *models.Donor) error {
	f.creates++
	if _, exists := f.byEmail[donor.Email]; exists {
		return apperrors.ErrDonorEmailExists
	}
	f.nextID++
	donor.ID = f.nextID
	f.byEmail[donor.Email] = donor
	if f.conflictOnce {
		f.conflictOnce = false
		return apperrors.ErrDonorEmailExists
	}
	return nil
}

func (f *fakeDonorRepo) GetByEmail(_ context.Context, email string) (*models.Donor, error) {
	donor, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrDonorNotFound
	}
	return donor, nil
}

func (f *fakeDonorRepo) GetByID(_ context.Context, id int64) (*models.Donor, error) {
	for _, donor := range f.byEmail {
		if donor.ID == id {
			return donor, nil
		}
	}
	return nil, apperrors.ErrDonorNotFound
}

func (f *fakeDonorRepo) Search(_ context.Context, _ string) ([]*models.Donor, error) {
	return nil, nil
}

func TestFindOrCreateDonorCreatesOnce(t *testing.T) {
	repo := newFakeDonorRepo()
	svc := NewDonorService(repo)
	ctx := context.Background()

	rec := csvformat.DonorRecord{Name: "Ada Lovelace", Email: "ADA@example.edu", Housing: "West Hall"}

	donor, created, err := svc.FindOrCreateDonor(ctx, rec)
	if err != nil {
		t.Fatalf("FindOrCreateDonor: %v", err)
	}
	if !created {
		t.Error("expected first resolution to create")
	}
	if donor.Email != "ada@example.edu" {
		t.Errorf("email not normalized: %q", donor.Email)
	}

	again, created, err := svc.FindOrCreateDonor(ctx, csvformat.DonorRecord{
		Name: "A. Lovelace", Email: "ada@example.edu", Housing: "East Hall",
	})
	if err != nil {
		t.Fatalf("second FindOrCreateDonor: %v", err)
	}
	if created {
		t.Error("expected second resolution to hit the existing row")
	}
	if again.ID != donor.ID {
		t.Errorf("resolved to different donor: %d != %d", again.ID, donor.ID)
	}
	if again.Name != "Ada Lovelace" {
		t.Errorf("existing row was merged: name = %q", again.Name)
	}
}

func TestFindOrCreateDonorRecoversFromInsertRace(t *testing.T) {
	repo := newFakeDonorRepo()
	repo.conflictOnce = true
	svc := NewDonorService(repo)

	donor, created, err := svc.FindOrCreateDonor(context.Background(),
		csvformat.DonorRecord{Name: "Grace Hopper", Email: "grace@example.edu"})
	if err != nil {
		t.Fatalf("expected conflict to be resolved internally, got %v", err)
	}
	if created {
		t.Error("a lost race must not report created")
	}
	if donor == nil || donor.Email != "grace@example.edu" {
		t.Fatalf("unexpected donor after conflict recovery: %+v", donor)
	}
}

func TestFindOrCreateDonorRejectsIncompleteRecord(t *testing.T) {
	svc := NewDonorService(newFakeDonorRepo())

	for _, rec := range []csvformat.DonorRecord{
		{Name: "", Email: "x@example.edu"},
		{Name: "No Email"},
	} {
		_, _, err := svc.FindOrCreateDonor(context.Background(), rec)
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("record %+v: expected validation error, got %v", rec, err)
		}
	}
}

func TestSearchDonorsRequiresQuery(t *testing.T) {
	svc := NewDonorService(newFakeDonorRepo())
	if _, err := svc.SearchDonors(context.Background(), "   "); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

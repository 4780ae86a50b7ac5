package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusreuse/restore/internal/app/models"
	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/csvformat"
)

// DonorRepository is the storage surface the donor service depends on.
type DonorRepository interface {
	Create(ctx context.Context, donor *models.Donor) error
	GetByEmail(ctx context.Context, email string) (*models.Donor, error)
	GetByID(ctx context.Context, id int64) (*models.Donor, error)
	Search(ctx context.Context, q string) ([]*models.Donor, error)
}

// DonorService resolves external-world donor identities into stable
// internal rows. The identity key is the lowercased email.
type DonorService struct {
	donorRepo DonorRepository
}

// NewDonorService creates a new donor service instance.
func NewDonorService(donorRepo DonorRepository) *DonorService {
	return &DonorService{
		donorRepo: donorRepo,
	}
}

// NormalizeEmail produces the donor identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateDonor registers a donor directly. A duplicate email is a
// conflict, not a silent merge.
func (s *DonorService) CreateDonor(ctx context.Context, req *dto.CreateDonorRequest) (*models.Donor, error) {
	donor := &models.Donor{
		Name:  strings.TrimSpace(req.Name),
		Email: NormalizeEmail(req.Email),
	}
	if req.Housing != "" {
		donor.Housing = &req.Housing
	}
	if req.GradYear != "" {
		donor.GradYear = &req.GradYear
	}

	if err := s.donorRepo.Create(ctx, donor); err != nil {
		return nil, err
	}
	return donor, nil
}

// FindOrCreateDonor resolves a donor record to a stored row, creating it
// on first reference. The created flag reports whether a new row was
// inserted. A hit returns the existing row unchanged; conflicting fields
// are not merged. A uniqueness conflict on a concurrent insert is
// resolved by re-fetching, never surfaced to the caller.
func (s *DonorService) FindOrCreateDonor(ctx context.Context, rec csvformat.DonorRecord) (*models.Donor, bool, error) {
	email := NormalizeEmail(rec.Email)
	if rec.Name == "" || email == "" {
		return nil, false, apperrors.NewValidationError("donor name and email are required")
	}

	donor, err := s.donorRepo.GetByEmail(ctx, email)
	if err == nil {
		return donor, false, nil
	}
	if !errors.Is(err, apperrors.ErrDonorNotFound) {
		return nil, false, fmt.Errorf("error resolving donor: %w", err)
	}

	donor = &models.Donor{
		Name:  rec.Name,
		Email: email,
	}
	if rec.Housing != "" {
		donor.Housing = &rec.Housing
	}
	if rec.GradYear != "" {
		donor.GradYear = &rec.GradYear
	}

	err = s.donorRepo.Create(ctx, donor)
	if err == nil {
		return donor, true, nil
	}
	if errors.Is(err, apperrors.ErrDonorEmailExists) {
		// Lost the race to a concurrent insert with the same key.
		donor, err = s.donorRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, fmt.Errorf("error re-fetching donor after conflict: %w", err)
		}
		return donor, false, nil
	}
	return nil, false, fmt.Errorf("error creating donor: %w", err)
}

// GetDonorByID retrieves a donor with their donation count.
func (s *DonorService) GetDonorByID(ctx context.Context, id int64) (*models.Donor, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid donor ID")
	}
	return s.donorRepo.GetByID(ctx, id)
}

// SearchDonors finds donors whose name or email contains q.
func (s *DonorService) SearchDonors(ctx context.Context, q string) ([]*models.Donor, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	return s.donorRepo.Search(ctx, q)
}

package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/campusreuse/restore/internal/app/models/dto"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
	"github.com/campusreuse/restore/internal/pkg/csvformat"
	"github.com/campusreuse/restore/internal/pkg/logger"
)

// ImportService ingests donor spreadsheets. The CSV layout is detected
// from the header row and each data row is resolved through donor
// find-or-create, so re-importing the same sheet is harmless.
type ImportService struct {
	donors DonorResolver
	lookup DonorRepository
}

// NewImportService creates a new import service instance.
func NewImportService(donors DonorResolver, lookup DonorRepository) *ImportService {
	return &ImportService{
		donors: donors,
		lookup: lookup,
	}
}

// readRows parses the CSV without enforcing a uniform column count; the
// historical sheets have ragged rows.
func readRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("could not parse CSV: %v", err))
	}
	return rows, nil
}

// ImportDonors runs one CSV batch through donor resolution. Rows without
// a derivable name and email are reported per row and do not abort the
// batch. Rows whose donor already exists, and in-batch rows collapsed
// into an earlier record by email, count as skipped.
func (s *ImportService) ImportDonors(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	ext := csvformat.Extract(rows)
	result := &dto.ImportResult{
		Total:   ext.DataRows,
		Skipped: ext.Duplicates,
		Errors:  []string{},
	}
	for _, row := range ext.InvalidRows {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name or email", row))
	}

	for _, rec := range ext.Records {
		_, created, err := s.donors.FindOrCreateDonor(ctx, rec)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rec.Row, err))
			continue
		}
		if created {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	logger.Info().
		Str("format", string(ext.Format)).
		Int("total", result.Total).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("Donor CSV import finished")

	return result, nil
}

// PreviewDonors is the dry-run counterpart of ImportDonors: it reports
// what an import would do with each row without writing anything.
func (s *ImportService) PreviewDonors(ctx context.Context, r io.Reader) (*dto.ImportPreviewResult, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	ext := csvformat.Extract(rows)
	result := &dto.ImportPreviewResult{
		Total:  ext.DataRows,
		Format: string(ext.Format),
		Rows:   []dto.ImportPreviewRow{},
	}

	for _, rec := range ext.Records {
		row := dto.ImportPreviewRow{
			Row:      rec.Row,
			Name:     rec.Name,
			Email:    rec.Email,
			Housing:  rec.Housing,
			GradYear: rec.GradYear,
			Valid:    true,
		}
		_, err := s.lookup.GetByEmail(ctx, rec.Email)
		switch {
		case err == nil:
			row.Exists = true
		case errors.Is(err, apperrors.ErrDonorNotFound):
		default:
			return nil, fmt.Errorf("error checking donor existence: %w", err)
		}
		result.Rows = append(result.Rows, row)
	}

	for _, n := range ext.InvalidRows {
		result.Rows = append(result.Rows, dto.ImportPreviewRow{
			Row:   n,
			Error: "missing name or email",
		})
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		return result.Rows[i].Row < result.Rows[j].Row
	})

	return result, nil
}

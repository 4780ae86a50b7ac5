package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campusreuse/restore/internal/app/models"
	appRepos "github.com/campusreuse/restore/internal/app/repositories"
	"github.com/campusreuse/restore/internal/pkg/apperrors"
)

// defaultCategories is the starting vocabulary for a new deployment.
// Staff can extend it at runtime; re-seeding an existing database is a
// no-op because name conflicts are tolerated.
var defaultCategories = []string{
	"Kitchen Appliances",
	"Lamps & Lighting",
	"Furniture",
	"Bedding & Linens",
	"Electronics",
	"Books & School Supplies",
	"Decor",
	"Storage & Organization",
}

// CreateDefaultData creates the default category set if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	categoryRepo := appRepos.NewCategoryRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default categories...")
	var finalErr error

	for _, name := range defaultCategories {
		category := &appModels.Category{Name: name, CreatedBy: "seed"}
		err := categoryRepo.Create(ctx, category)
		if err != nil && !errors.Is(err, apperrors.ErrCategoryNameExists) {
			lgr.Error().Err(err).Str("category", name).Msg("Error creating default category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default categories present.")
	}
	return finalErr
}

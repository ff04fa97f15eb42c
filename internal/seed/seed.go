package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appCatalog "github.com/yigit/uniadvisor/internal/app/catalog"
	appModels "github.com/yigit/uniadvisor/internal/app/models"
	appRepos "github.com/yigit/uniadvisor/internal/app/repositories"
)

// Options controls what CreateDefaultData may create
type Options struct {
	DemoUserID string
	Production bool
}

// CreateDefaultData creates the demo profile outside production and checks
// that the default catalog is loaded. A missing catalog is only logged.
func CreateDefaultData(
	ctx context.Context,
	opts Options,
	profiles appRepos.ProfileRepository,
	catalogs *appCatalog.Registry,
	lgr zerolog.Logger,
) error {
	var finalErr error

	if _, err := catalogs.Default(); err != nil {
		lgr.Warn().Err(err).Str("university", catalogs.DefaultCode()).Msg("Default catalog is not loaded; course lookups will be empty")
	}

	if opts.DemoUserID == "" {
		return nil
	}
	if opts.Production {
		lgr.Warn().Str("userID", opts.DemoUserID).Msg("Demo profile requested in production mode, skipping")
		return nil
	}

	existing, err := profiles.GetByUserID(ctx, opts.DemoUserID)
	if err != nil {
		return fmt.Errorf("failed to check demo profile: %w", err)
	}
	if existing != nil {
		lgr.Debug().Str("userID", opts.DemoUserID).Msg("Demo profile already exists")
		return nil
	}

	university := catalogs.DefaultCode()
	major := "Computer Science"
	year := appModels.YearFreshman
	isStudent := true
	if _, err := profiles.Upsert(ctx, opts.DemoUserID, appModels.ProfilePatch{
		University: &university,
		Major:      &major,
		Year:       &year,
		IsStudent:  &isStudent,
		Interests:  []string{},
	}); err != nil {
		lgr.Error().Err(err).Str("userID", opts.DemoUserID).Msg("Error creating demo profile")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Str("userID", opts.DemoUserID).Msg("Demo profile created")
	}

	return finalErr
}

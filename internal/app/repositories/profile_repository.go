package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniadvisor/internal/app/models"
)

// PgProfileRepository stores profiles in Postgres
type PgProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new Postgres profile repository
func NewProfileRepository(db *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{db: db}
}

// GetByUserID retrieves a profile by identity
func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query, args, err := selectProfile(squirrel.Dollar, userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	profile, err := scanPgProfile(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return profile, nil
}

// Upsert inserts the profile or merges patch into the existing one
func (r *PgProfileRepository) Upsert(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error) {
	query, args, err := upsertProfile(squirrel.Dollar, userID, patch, patch.Interests, time.Now().UTC()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	profile, err := scanPgProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("error upserting profile: %w", err)
	}
	return profile, nil
}

// Ping checks connectivity
func (r *PgProfileRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanPgProfile(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	var university, major *string

	err := row.Scan(
		&profile.UserID,
		&university,
		&major,
		&profile.Year,
		&profile.IsStudent,
		&profile.Interests,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	profile.University = derefString(university)
	profile.Major = derefString(major)
	if profile.Interests == nil {
		profile.Interests = []string{}
	}
	return &profile, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

type ProviderStorage struct {
	db *sqlx.DB
}

func NewProviderStorage(pg *postgresql.Client) *ProviderStorage {
	return &ProviderStorage{
		db: pg.GetDB(),
	}
}

const providerSelect = `
	SELECT
		p.profile_id, p.user_id, p.skill, p.suburb, p.hourly_rate_cents,
		p.bio, p.experience_years, p.verified, p.rating, p.ratings_count,
		p.created_at, p.updated_at, u.name
	FROM provider_profiles p
	JOIN users u ON u.user_id = p.user_id
`

func (s *ProviderStorage) List(ctx context.Context, skill, suburb string) ([]model.ProviderWithName, error) {
	query := providerSelect + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if skill != "" {
		query += fmt.Sprintf(" AND p.skill ILIKE $%d", argIdx)
		args = append(args, "%"+skill+"%")
		argIdx++
	}

	if suburb != "" {
		query += fmt.Sprintf(" AND p.suburb ILIKE $%d", argIdx)
		args = append(args, "%"+suburb+"%")
		argIdx++
	}

	query += " ORDER BY p.created_at DESC"

	var providers []model.ProviderWithName
	if err := s.db.SelectContext(ctx, &providers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return providers, nil
}

func (s *ProviderStorage) FindByID(ctx context.Context, profileID string) (*model.ProviderWithName, error) {
	var provider model.ProviderWithName
	query := providerSelect + ` WHERE p.profile_id = $1`

	err := s.db.GetContext(ctx, &provider, query, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return &provider, nil
}

func (s *ProviderStorage) FindByUserID(ctx context.Context, userID string) (*model.ProviderWithName, error) {
	var provider model.ProviderWithName
	query := providerSelect + ` WHERE p.user_id = $1`

	err := s.db.GetContext(ctx, &provider, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to get provider by user: %w", err)
	}

	return &provider, nil
}

// Upsert writes the full profile row keyed by user_id. Rating aggregates are
// owned by the review storage and left untouched on update.
func (s *ProviderStorage) Upsert(ctx context.Context, profile *model.ProviderProfile) error {
	query := `
		INSERT INTO provider_profiles (
			profile_id, user_id, skill, suburb, hourly_rate_cents,
			bio, experience_years, verified, rating, ratings_count,
			created_at, updated_at
		) VALUES (
			:profile_id, :user_id, :skill, :suburb, :hourly_rate_cents,
			:bio, :experience_years, :verified, :rating, :ratings_count,
			:created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			skill = EXCLUDED.skill,
			suburb = EXCLUDED.suburb,
			hourly_rate_cents = EXCLUDED.hourly_rate_cents,
			bio = EXCLUDED.bio,
			experience_years = EXCLUDED.experience_years,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("failed to upsert provider profile: %w", err)
	}

	return nil
}

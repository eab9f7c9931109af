package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

// ProviderService is the provider directory: listing/search and profile
// management for the provider side of the marketplace.
type ProviderService struct {
	logger    *slog.Logger
	providers ProviderStore
}

func NewProviderService(logger *slog.Logger, providers ProviderStore) *ProviderService {
	return &ProviderService{
		logger:    logger,
		providers: providers,
	}
}

func (s *ProviderService) List(ctx context.Context, skill, suburb string) ([]dto.ProviderResponse, error) {
	providers, err := s.providers.List(ctx, skill, suburb)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProviderResponse, len(providers))
	for i := range providers {
		out[i] = *toProviderResponse(&providers[i])
	}

	return out, nil
}

func (s *ProviderService) GetByID(ctx context.Context, profileID string) (*dto.ProviderResponse, error) {
	provider, err := s.providers.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return toProviderResponse(provider), nil
}

// UpsertForUser creates or updates the calling provider's profile. Creation
// requires at least a skill and a suburb; updates merge over the existing row.
func (s *ProviderService) UpsertForUser(ctx context.Context, userID string, req dto.UpdateProviderProfileRequest) (*dto.ProviderResponse, error) {
	existing, err := s.providers.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProviderNotFound) {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)

	var profile model.ProviderProfile
	if existing != nil {
		profile = existing.ProviderProfile
	} else {
		if req.Skill == "" || req.Suburb == "" {
			return nil, fmt.Errorf("%w: skill and suburb are required to create a profile", domain.ErrValidation)
		}
		profile = model.ProviderProfile{
			ProfileID: uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
	}

	if req.Skill != "" {
		profile.Skill = req.Skill
	}
	if req.Suburb != "" {
		profile.Suburb = req.Suburb
	}
	if req.HourlyRateCents != nil {
		profile.HourlyRateCents = sql.NullInt64{Int64: *req.HourlyRateCents, Valid: true}
	}
	if req.Bio != "" {
		profile.Bio = sql.NullString{String: req.Bio, Valid: true}
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = sql.NullInt64{Int64: *req.ExperienceYears, Valid: true}
	}
	profile.UpdatedAt = now

	if err := s.providers.Upsert(ctx, &profile); err != nil {
		return nil, err
	}

	s.logger.Info("Provider profile saved",
		slog.String("user_id", userID),
		slog.String("profile_id", profile.ProfileID),
	)

	saved, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toProviderResponse(saved), nil
}

func toProviderResponse(p *model.ProviderWithName) *dto.ProviderResponse {
	resp := &dto.ProviderResponse{
		ID:          p.ProfileID,
		UserID:      p.UserID,
		Name:        p.Name,
		Skill:       p.Skill,
		Suburb:      p.Suburb,
		Verified:    p.Verified,
		RatingCount: p.RatingsCount,
	}

	if p.HourlyRateCents.Valid {
		resp.HourlyRateCents = &p.HourlyRateCents.Int64
	}
	if p.Bio.Valid {
		resp.Bio = &p.Bio.String
	}
	if p.ExperienceYears.Valid {
		resp.ExperienceYears = &p.ExperienceYears.Int64
	}
	if p.Rating.Valid && p.RatingsCount > 0 {
		resp.Rating = &p.Rating.Float64
	}

	return resp
}

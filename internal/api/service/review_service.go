package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

// ReviewService creates reviews for completed jobs. The review row and the
// provider's rating aggregate are written in one transaction by the store.
type ReviewService struct {
	logger  *slog.Logger
	reviews ReviewStore
	jobs    JobStore
}

func NewReviewService(logger *slog.Logger, reviews ReviewStore, jobs JobStore) *ReviewService {
	return &ReviewService{
		logger:  logger,
		reviews: reviews,
		jobs:    jobs,
	}
}

// Create records the customer's review of a completed job. A second review
// for the same job replaces the first, swapping its rating in the provider
// aggregate without changing the count.
func (s *ReviewService) Create(ctx context.Context, customerID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if job.CustomerID != customerID {
		return nil, domain.ErrNotJobParty
	}

	if job.Status != domain.JobStatusCompleted {
		return nil, domain.ErrJobNotCompleted
	}

	var comment sql.NullString
	if trimmed := strings.TrimSpace(req.Comment); trimmed != "" {
		comment = sql.NullString{String: trimmed, Valid: true}
	}

	review := &model.Review{
		ReviewID:   uuid.NewString(),
		JobID:      job.JobID,
		ProviderID: job.ProviderProfileID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}

	saved, err := s.reviews.SaveWithAggregate(ctx, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Review saved",
		slog.String("job_id", job.JobID),
		slog.String("provider_profile_id", job.ProviderProfileID),
		slog.Int("rating", req.Rating),
	)

	var respComment *string
	if saved.Comment.Valid {
		respComment = &saved.Comment.String
	}

	return &dto.ReviewResponse{
		ID:         saved.ReviewID,
		JobID:      saved.JobID,
		ProviderID: saved.ProviderID,
		Rating:     saved.Rating,
		Comment:    respComment,
		CreatedAt:  saved.CreatedAt.Format(time.RFC3339),
	}, nil
}

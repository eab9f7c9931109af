package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

type ReviewStorage struct {
	db *sqlx.DB
}

func NewReviewStorage(pg *postgresql.Client) *ReviewStorage {
	return &ReviewStorage{
		db: pg.GetDB(),
	}
}

func (s *ReviewStorage) ExistsForJob(ctx context.Context, jobID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE job_id = $1)`

	if err := s.db.GetContext(ctx, &exists, query, jobID); err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}

	return exists, nil
}

// JobIDsWithReviews returns which of the given jobs already have a review,
// so list responses avoid a query per job.
func (s *ReviewStorage) JobIDsWithReviews(ctx context.Context, jobIDs []string) (map[string]bool, error) {
	reviewed := make(map[string]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return reviewed, nil
	}

	query, args, err := sqlx.In(`SELECT job_id FROM reviews WHERE job_id IN (?)`, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build review lookup: %w", err)
	}

	var ids []string
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to look up reviews: %w", err)
	}

	for _, id := range ids {
		reviewed[id] = true
	}

	return reviewed, nil
}

// SaveWithAggregate creates or replaces the review for a job and folds the
// rating into the provider profile's running average inside one transaction.
// Concurrent reviews for the same provider serialize on the profile row lock,
// so the average never loses an update.
func (s *ReviewStorage) SaveWithAggregate(ctx context.Context, review *model.Review) (*model.Review, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var profile model.ProviderProfile
	err = tx.GetContext(ctx, &profile, `
		SELECT profile_id, user_id, skill, suburb, hourly_rate_cents, bio,
		       experience_years, verified, rating, ratings_count, created_at, updated_at
		FROM provider_profiles
		WHERE profile_id = $1
		FOR UPDATE
	`, review.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock provider profile: %w", err)
	}

	var existingRating sql.NullInt64
	err = tx.GetContext(ctx, &existingRating, `SELECT rating FROM reviews WHERE job_id = $1`, review.JobID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read existing review: %w", err)
	}

	saved := *review
	if existingRating.Valid {
		err = tx.GetContext(ctx, &saved, `
			UPDATE reviews
			SET rating = $1, comment = $2
			WHERE job_id = $3
			RETURNING review_id, job_id, provider_id, customer_id, rating, comment, created_at
		`, review.Rating, review.Comment, review.JobID)
	} else {
		err = tx.GetContext(ctx, &saved, `
			INSERT INTO reviews (review_id, job_id, provider_id, customer_id, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING review_id, job_id, provider_id, customer_id, rating, comment, created_at
		`, review.ReviewID, review.JobID, review.ProviderID, review.CustomerID, review.Rating, review.Comment, review.CreatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	currentTotal := profile.Rating.Float64 * float64(profile.RatingsCount)
	newCount := profile.RatingsCount
	if existingRating.Valid {
		currentTotal += float64(review.Rating) - float64(existingRating.Int64)
	} else {
		currentTotal += float64(review.Rating)
		newCount++
	}

	var newRating float64
	if newCount > 0 {
		newRating = currentTotal / float64(newCount)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE provider_profiles
		SET rating = $1, ratings_count = $2, updated_at = NOW()
		WHERE profile_id = $3
	`, newRating, newCount, review.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update provider rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}

	return &saved, nil
}

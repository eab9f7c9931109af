package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

type JobStorage struct {
	db *sqlx.DB
}

func NewJobStorage(pg *postgresql.Client) *JobStorage {
	return &JobStorage{
		db: pg.GetDB(),
	}
}

const jobColumns = `
	job_id, customer_id, provider_profile_id, provider_user_id, provider_name,
	title, notes, suburb, scheduled_at, price_cents, status, created_at, updated_at
`

func (s *JobStorage) Create(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			job_id, customer_id, provider_profile_id, provider_user_id, provider_name,
			title, notes, suburb, scheduled_at, price_cents, status, created_at, updated_at
		) VALUES (
			:job_id, :customer_id, :provider_profile_id, :provider_user_id, :provider_name,
			:title, :notes, :suburb, :scheduled_at, :price_cents, :status, :created_at, :updated_at
		)
	`

	if _, err := s.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *JobStorage) FindByID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *JobStorage) ListForCustomer(ctx context.Context, customerID string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE customer_id = $1 ORDER BY created_at DESC, job_id DESC`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, customerID); err != nil {
		return nil, fmt.Errorf("failed to list jobs for customer: %w", err)
	}

	return jobs, nil
}

func (s *JobStorage) ListForProvider(ctx context.Context, providerUserID string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE provider_user_id = $1 ORDER BY created_at DESC, job_id DESC`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, providerUserID); err != nil {
		return nil, fmt.Errorf("failed to list jobs for provider: %w", err)
	}

	return jobs, nil
}

// UpdateStatus moves a job between statuses with a conditional update so two
// concurrent writers cannot both win. No rows affected means the row moved
// out from under us (or never held the expected status).
func (s *JobStorage) UpdateStatus(ctx context.Context, jobID string, from, to domain.JobStatus) (*model.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1,
		    updated_at = $2
		WHERE job_id = $3
		  AND status = $4
		RETURNING ` + jobColumns

	var job model.Job
	err := s.db.GetContext(ctx, &job, query, to, time.Now().UTC(), jobID, from)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIllegalTransition
		}
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}

	return &job, nil
}

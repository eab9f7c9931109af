package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/internal/notify"
)

// JobService owns the job status state machine: it validates transitions,
// writes status changes, and fires the side effects that hang off them.
type JobService struct {
	logger    *slog.Logger
	jobs      JobStore
	providers ProviderStore
	users     UserStore
	reviews   ReviewStore
	payments  paymentOps
	notifier  notify.Notifier
	cache     StatusCache
}

type JobServiceDeps struct {
	Logger    *slog.Logger
	Jobs      JobStore
	Providers ProviderStore
	Users     UserStore
	Reviews   ReviewStore
	Payments  paymentOps
	Notifier  notify.Notifier
	Cache     StatusCache
}

func NewJobService(deps JobServiceDeps) *JobService {
	return &JobService{
		logger:    deps.Logger,
		jobs:      deps.Jobs,
		providers: deps.Providers,
		users:     deps.Users,
		reviews:   deps.Reviews,
		payments:  deps.Payments,
		notifier:  deps.Notifier,
		cache:     deps.Cache,
	}
}

// CreateJob books a provider for a customer. The job starts PENDING and the
// provider is notified of the request.
func (s *JobService) CreateJob(ctx context.Context, customerID string, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	provider, err := s.providers.FindByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	// Second precision keeps timestamps lossless through the RFC3339
	// response encoding.
	now := time.Now().UTC().Truncate(time.Second)

	priceCents := int64(domain.DefaultPriceCents)
	if provider.HourlyRateCents.Valid && provider.HourlyRateCents.Int64 > 0 {
		priceCents = provider.HourlyRateCents.Int64
	}

	var notes sql.NullString
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = sql.NullString{String: trimmed, Valid: true}
	}

	job := &model.Job{
		JobID:             uuid.NewString(),
		CustomerID:        customerID,
		ProviderProfileID: provider.ProfileID,
		ProviderUserID:    provider.UserID,
		ProviderName:      provider.Name,
		Title:             provider.Skill + " service",
		Notes:             notes,
		Suburb:            provider.Suburb,
		ScheduledAt:       scheduledAtOrDefault(req.ScheduledAt, now),
		PriceCents:        priceCents,
		Status:            domain.JobStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Job created",
		slog.String("job_id", job.JobID),
		slog.String("customer_id", customerID),
		slog.String("provider_profile_id", provider.ProfileID),
		slog.Int64("price_cents", priceCents),
	)

	s.cacheStatus(ctx, job.JobID, job.Status)
	s.notifier.Send(ctx, provider.UserID, notify.TypeJobRequested,
		fmt.Sprintf("New %s request from %s in %s", job.Title, customer.Name, job.Suburb))

	return s.toResponse(job, false), nil
}

// ListJobsForUser returns the jobs visible to the caller: customers see jobs
// they booked, providers see jobs assigned to them, anything else is empty.
func (s *JobService) ListJobsForUser(ctx context.Context, userID, role string) ([]dto.JobResponse, error) {
	var (
		jobs []model.Job
		err  error
	)

	switch role {
	case model.RoleCustomer:
		jobs, err = s.jobs.ListForCustomer(ctx, userID)
	case model.RoleProvider:
		jobs, err = s.jobs.ListForProvider(ctx, userID)
	default:
		return []dto.JobResponse{}, nil
	}
	if err != nil {
		return nil, err
	}

	jobIDs := make([]string, len(jobs))
	for i, job := range jobs {
		jobIDs[i] = job.JobID
	}

	reviewed, err := s.reviews.JobIDsWithReviews(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		out[i] = *s.toResponse(&jobs[i], reviewed[jobs[i].JobID])
	}

	return out, nil
}

// GetJob returns a single job to one of its parties.
func (s *JobService) GetJob(ctx context.Context, jobID, actorID string) (*dto.JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.CustomerID != actorID && job.ProviderUserID != actorID {
		return nil, domain.ErrNotJobParty
	}

	hasReview, err := s.reviews.ExistsForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(job, hasReview), nil
}

// UpdateJobStatus applies a provider-driven status transition. Only the
// assigned provider may move a job, and only along the transition table.
// The store write is conditional on the status read here, so a concurrent
// transition surfaces as a conflict instead of a lost update.
func (s *JobService) UpdateJobStatus(ctx context.Context, jobID, actingProviderUserID string, target string) (*dto.JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.ProviderUserID != actingProviderUserID {
		return nil, domain.ErrNotJobProvider
	}

	next := domain.JobStatus(target)
	if !domain.ValidJobStatus(next) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidJobStatus, target)
	}

	if !domain.CanTransitionJob(job.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, job.Status, next)
	}

	updated, err := s.jobs.UpdateStatus(ctx, jobID, job.Status, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", jobID),
		slog.String("from", string(job.Status)),
		slog.String("to", string(next)),
	)

	s.cacheStatus(ctx, jobID, next)

	switch next {
	case domain.JobStatusAccepted:
		s.notifier.Send(ctx, updated.CustomerID, notify.TypeJobAccepted,
			fmt.Sprintf("%s accepted your %s booking", updated.ProviderName, updated.Title))
	case domain.JobStatusCompleted:
		s.logger.Info("Job completed",
			slog.String("job_id", jobID),
			slog.String("customer_id", updated.CustomerID),
		)
		s.releaseEscrowBestEffort(ctx, updated)
	}

	hasReview, err := s.reviews.ExistsForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(updated, hasReview), nil
}

// releaseEscrowBestEffort releases a held payment when a job completes. The
// release is decoupled from job-status durability: any failure here is
// logged and swallowed, the job stays COMPLETED.
func (s *JobService) releaseEscrowBestEffort(ctx context.Context, job *model.Job) {
	payment, err := s.payments.PaymentForJob(ctx, job.JobID)
	if err != nil {
		if !errors.Is(err, domain.ErrPaymentNotFound) {
			s.logger.Warn("Unable to look up payment for completed job",
				slog.String("job_id", job.JobID),
				slog.Any("error", err),
			)
		}
		return
	}

	if payment.Status != domain.PaymentStatusEscrow {
		return
	}

	if _, err := s.payments.ReleaseEscrow(ctx, job.JobID); err != nil {
		s.logger.Warn("Unable to release escrow for completed job",
			slog.String("job_id", job.JobID),
			slog.Any("error", err),
		)
		return
	}

	s.logger.Info("Escrow released",
		slog.String("job_id", job.JobID),
		slog.Int64("provider_payout_cents", payment.ProviderPayoutCents),
	)
}

func (s *JobService) cacheStatus(ctx context.Context, jobID string, status domain.JobStatus) {
	if s.cache != nil {
		s.cache.SetJobStatus(ctx, jobID, status)
	}
}

// scheduledAtOrDefault parses an RFC3339 schedule, falling back to two days
// from now at 10:00 local when the value is absent or unparseable.
func scheduledAtOrDefault(raw string, now time.Time) time.Time {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC().Truncate(time.Second)
		}
	}

	local := now.Local().AddDate(0, 0, 2)
	return time.Date(local.Year(), local.Month(), local.Day(), 10, 0, 0, 0, local.Location()).UTC()
}

func (s *JobService) toResponse(job *model.Job, hasReview bool) *dto.JobResponse {
	var notes *string
	if job.Notes.Valid {
		notes = &job.Notes.String
	}

	return &dto.JobResponse{
		ID:           job.JobID,
		ProviderID:   job.ProviderProfileID,
		Title:        job.Title,
		ProviderName: job.ProviderName,
		Status:       string(job.Status),
		ScheduledAt:  job.ScheduledAt.Format(time.RFC3339),
		Suburb:       job.Suburb,
		PriceCents:   job.PriceCents,
		Notes:        notes,
		CreatedAt:    job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    job.UpdatedAt.Format(time.RFC3339),
		HasReview:    hasReview,
	}
}

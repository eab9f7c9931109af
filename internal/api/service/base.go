package service

import (
	"context"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

// Store contracts consumed by the services. Production implementations live
// in internal/api/storage over Postgres; tests use in-memory ones. The
// services must work against either.

type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, jobID string) (*model.Job, error)
	ListForCustomer(ctx context.Context, customerID string) ([]model.Job, error)
	ListForProvider(ctx context.Context, providerUserID string) ([]model.Job, error)
	// UpdateStatus must be conditional on the current status and return
	// domain.ErrIllegalTransition when the row no longer holds it.
	UpdateStatus(ctx context.Context, jobID string, from, to domain.JobStatus) (*model.Job, error)
}

type PaymentStore interface {
	Upsert(ctx context.Context, payment *model.Payment) error
	FindByJobID(ctx context.Context, jobID string) (*model.Payment, error)
	UpdateStatus(ctx context.Context, jobID string, from, to domain.PaymentStatus) (*model.Payment, error)
}

type ProviderStore interface {
	List(ctx context.Context, skill, suburb string) ([]model.ProviderWithName, error)
	FindByID(ctx context.Context, profileID string) (*model.ProviderWithName, error)
	FindByUserID(ctx context.Context, userID string) (*model.ProviderWithName, error)
	Upsert(ctx context.Context, profile *model.ProviderProfile) error
}

type UserStore interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
}

type ReviewStore interface {
	ExistsForJob(ctx context.Context, jobID string) (bool, error)
	JobIDsWithReviews(ctx context.Context, jobIDs []string) (map[string]bool, error)
	SaveWithAggregate(ctx context.Context, review *model.Review) (*model.Review, error)
}

// StatusCache is an optional read accelerator for job statuses. A miss is
// never an error; Postgres stays the source of truth.
type StatusCache interface {
	GetJobStatus(ctx context.Context, jobID string) (domain.JobStatus, bool)
	SetJobStatus(ctx context.Context, jobID string, status domain.JobStatus)
}

// paymentOps is the slice of the payment service the job lifecycle needs for
// its best-effort escrow release on completion.
type paymentOps interface {
	PaymentForJob(ctx context.Context, jobID string) (*model.Payment, error)
	ReleaseEscrow(ctx context.Context, jobID string) (*model.Payment, error)
}

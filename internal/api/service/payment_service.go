package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/dto"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/internal/notify"
)

// PaymentService owns the payment sub-machine: PENDING -> ESCROW -> PAID,
// monotonic. It never mutates job status; money and work state are coupled
// only through JobService's best-effort release call.
type PaymentService struct {
	logger          *slog.Logger
	payments        PaymentStore
	jobs            JobStore
	notifier        notify.Notifier
	cache           StatusCache
	checkoutBaseURL string
}

type PaymentServiceDeps struct {
	Logger          *slog.Logger
	Payments        PaymentStore
	Jobs            JobStore
	Notifier        notify.Notifier
	Cache           StatusCache
	CheckoutBaseURL string
}

func NewPaymentService(deps PaymentServiceDeps) *PaymentService {
	return &PaymentService{
		logger:          deps.Logger,
		payments:        deps.Payments,
		jobs:            deps.Jobs,
		notifier:        deps.Notifier,
		cache:           deps.Cache,
		checkoutBaseURL: deps.CheckoutBaseURL,
	}
}

// CreateCheckout upserts the payment row for a job and hands back the
// checkout redirect URL. Calling it again regenerates the same URL and
// resets the payment to PENDING.
func (s *PaymentService) CreateCheckout(ctx context.Context, jobID string, amountCents int64) (*dto.CreateCheckoutResponse, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job_id is required", domain.ErrValidation)
	}

	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount_cents must be a positive number", domain.ErrValidation)
	}

	// Cached status is only a fast reject; the row below is authoritative.
	if s.cache != nil {
		if status, ok := s.cache.GetJobStatus(ctx, jobID); ok && status == domain.JobStatusCancelled {
			return nil, domain.ErrJobCancelled
		}
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status == domain.JobStatusCancelled {
		return nil, domain.ErrJobCancelled
	}

	commissionCents := int64(math.Round(float64(amountCents) * domain.CommissionRate))
	payoutCents := amountCents - commissionCents
	if payoutCents < 0 {
		payoutCents = 0
	}

	now := time.Now().UTC().Truncate(time.Second)
	payment := &model.Payment{
		JobID:               jobID,
		AmountCents:         amountCents,
		CommissionCents:     commissionCents,
		ProviderPayoutCents: payoutCents,
		CheckoutURL:         fmt.Sprintf("%s?job=%s", s.checkoutBaseURL, jobID),
		Status:              domain.PaymentStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.payments.Upsert(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Checkout created",
		slog.String("job_id", jobID),
		slog.Int64("amount_cents", amountCents),
		slog.Int64("commission_cents", commissionCents),
		slog.Int64("provider_payout_cents", payoutCents),
	)

	return &dto.CreateCheckoutResponse{CheckoutURL: payment.CheckoutURL}, nil
}

// HandleWebhook applies a gateway status callback for a job's payment.
func (s *PaymentService) HandleWebhook(ctx context.Context, jobID, status string) (*dto.PaymentResponse, error) {
	switch domain.PaymentStatus(strings.ToUpper(status)) {
	case domain.PaymentStatusEscrow:
		payment, err := s.MoveToEscrow(ctx, jobID)
		if err != nil {
			return nil, err
		}
		return toPaymentResponse(payment), nil
	case domain.PaymentStatusPaid:
		payment, err := s.ReleaseEscrow(ctx, jobID)
		if err != nil {
			return nil, err
		}
		return toPaymentResponse(payment), nil
	case domain.PaymentStatusPending:
		return nil, domain.ErrRevertToPending
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentStatus, status)
	}
}

// MoveToEscrow holds the customer's funds. Only a PENDING payment can move.
func (s *PaymentService) MoveToEscrow(ctx context.Context, jobID string) (*model.Payment, error) {
	payment, err := s.payments.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentStatusPending {
		return nil, fmt.Errorf("%w from %s", domain.ErrPaymentNotPending, payment.Status)
	}

	updated, err := s.payments.UpdateStatus(ctx, jobID, domain.PaymentStatusPending, domain.PaymentStatusEscrow)
	if err != nil {
		if errors.Is(err, domain.ErrIllegalTransition) {
			return nil, fmt.Errorf("%w from %s", domain.ErrPaymentNotPending, payment.Status)
		}
		return nil, err
	}

	s.logger.Info("Payment moved to escrow",
		slog.String("job_id", jobID),
		slog.Int64("amount_cents", updated.AmountCents),
	)

	return updated, nil
}

// ReleaseEscrow pays the provider out. Only an ESCROW payment can release.
func (s *PaymentService) ReleaseEscrow(ctx context.Context, jobID string) (*model.Payment, error) {
	payment, err := s.payments.FindByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentStatusEscrow {
		return nil, fmt.Errorf("%w (current status %s)", domain.ErrPaymentNotEscrow, payment.Status)
	}

	updated, err := s.payments.UpdateStatus(ctx, jobID, domain.PaymentStatusEscrow, domain.PaymentStatusPaid)
	if err != nil {
		if errors.Is(err, domain.ErrIllegalTransition) {
			return nil, fmt.Errorf("%w (current status %s)", domain.ErrPaymentNotEscrow, payment.Status)
		}
		return nil, err
	}

	s.logger.Info("Escrow released to provider",
		slog.String("job_id", jobID),
		slog.Int64("provider_payout_cents", updated.ProviderPayoutCents),
	)

	if job, err := s.jobs.FindByID(ctx, jobID); err == nil {
		s.notifier.Send(ctx, job.ProviderUserID, notify.TypePayoutReleased,
			fmt.Sprintf("Payout of %d cents released for %s", updated.ProviderPayoutCents, job.Title))
	}

	return updated, nil
}

// PaymentForJob exposes the payment record to the job lifecycle.
func (s *PaymentService) PaymentForJob(ctx context.Context, jobID string) (*model.Payment, error) {
	return s.payments.FindByJobID(ctx, jobID)
}

func toPaymentResponse(payment *model.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		JobID:               payment.JobID,
		AmountCents:         payment.AmountCents,
		CommissionCents:     payment.CommissionCents,
		ProviderPayoutCents: payment.ProviderPayoutCents,
		CheckoutURL:         payment.CheckoutURL,
		Status:              string(payment.Status),
	}
}

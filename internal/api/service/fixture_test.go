package service

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

const (
	testCustomerID      = "user-customer-1"
	testProviderUserID  = "user-provider-1"
	testProviderProfile = "profile-1"
	testCheckoutBase    = "https://sandbox.payfast.co.za/checkout"
)

type fixture struct {
	jobs      *memJobStore
	payments  *memPaymentStore
	providers *memProviderStore
	users     *memUserStore
	reviews   *memReviewStore
	notifier  *recordingNotifier

	jobSvc      *JobService
	paymentSvc  *PaymentService
	reviewSvc   *ReviewService
	providerSvc *ProviderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		jobs:      newMemJobStore(),
		payments:  newMemPaymentStore(),
		providers: newMemProviderStore(),
		users:     newMemUserStore(),
		notifier:  &recordingNotifier{},
	}
	f.reviews = newMemReviewStore(f.providers)

	now := time.Now().UTC().Truncate(time.Second)
	f.users.users[testCustomerID] = model.User{
		UserID: testCustomerID, Name: "Thandi Mokoena", Role: model.RoleCustomer, CreatedAt: now,
	}
	f.users.users[testProviderUserID] = model.User{
		UserID: testProviderUserID, Name: "Sipho Dlamini", Role: model.RoleProvider, CreatedAt: now,
	}
	f.providers.providers[testProviderProfile] = model.ProviderWithName{
		ProviderProfile: model.ProviderProfile{
			ProfileID:       testProviderProfile,
			UserID:          testProviderUserID,
			Skill:           "Plumbing",
			Suburb:          "Soweto",
			HourlyRateCents: sql.NullInt64{Int64: 9000, Valid: true},
			Verified:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		Name: "Sipho Dlamini",
	}

	f.paymentSvc = NewPaymentService(PaymentServiceDeps{
		Logger:          logger,
		Payments:        f.payments,
		Jobs:            f.jobs,
		Notifier:        f.notifier,
		CheckoutBaseURL: testCheckoutBase,
	})
	f.jobSvc = NewJobService(JobServiceDeps{
		Logger:    logger,
		Jobs:      f.jobs,
		Providers: f.providers,
		Users:     f.users,
		Reviews:   f.reviews,
		Payments:  f.paymentSvc,
		Notifier:  f.notifier,
	})
	f.reviewSvc = NewReviewService(logger, f.reviews, f.jobs)
	f.providerSvc = NewProviderService(logger, f.providers)

	return f
}

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

type PaymentStorage struct {
	db *sqlx.DB
}

func NewPaymentStorage(pg *postgresql.Client) *PaymentStorage {
	return &PaymentStorage{
		db: pg.GetDB(),
	}
}

const paymentColumns = `
	job_id, amount_cents, commission_cents, provider_payout_cents,
	checkout_url, status, created_at, updated_at
`

// Upsert creates the payment row for a job, or resets an existing one back
// to the incoming amounts and status. At most one payment per job.
func (s *PaymentStorage) Upsert(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (
			job_id, amount_cents, commission_cents, provider_payout_cents,
			checkout_url, status, created_at, updated_at
		) VALUES (
			:job_id, :amount_cents, :commission_cents, :provider_payout_cents,
			:checkout_url, :status, :created_at, :updated_at
		)
		ON CONFLICT (job_id) DO UPDATE SET
			amount_cents = EXCLUDED.amount_cents,
			commission_cents = EXCLUDED.commission_cents,
			provider_payout_cents = EXCLUDED.provider_payout_cents,
			checkout_url = EXCLUDED.checkout_url,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("failed to upsert payment: %w", err)
	}

	return nil
}

func (s *PaymentStorage) FindByJobID(ctx context.Context, jobID string) (*model.Payment, error) {
	var payment model.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE job_id = $1`

	err := s.db.GetContext(ctx, &payment, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// UpdateStatus is the compare-and-swap for the payment sub-machine.
func (s *PaymentStorage) UpdateStatus(ctx context.Context, jobID string, from, to domain.PaymentStatus) (*model.Payment, error) {
	query := `
		UPDATE payments
		SET status = $1,
		    updated_at = $2
		WHERE job_id = $3
		  AND status = $4
		RETURNING ` + paymentColumns

	var payment model.Payment
	err := s.db.GetContext(ctx, &payment, query, to, time.Now().UTC(), jobID, from)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIllegalTransition
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	return &payment, nil
}

package domain

import (
	"errors"
	"fmt"
)

// Base error kinds. Specific errors wrap one of these so handlers can map
// them to a response code with errors.Is.
var (
	ErrValidation   = errors.New("invalid request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrJobNotFound      = fmt.Errorf("job %w", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("payment %w", ErrNotFound)
	ErrProviderNotFound = fmt.Errorf("provider %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	// ErrNotJobProvider is returned when a provider acts on a job assigned to someone else.
	ErrNotJobProvider = fmt.Errorf("%w: you are not assigned to this job", ErrUnauthorized)

	// ErrNotJobParty is returned when the actor is neither the customer nor the provider of a job.
	ErrNotJobParty = fmt.Errorf("%w: you are not a party to this job", ErrUnauthorized)

	ErrInvalidJobStatus     = fmt.Errorf("%w: invalid job status", ErrValidation)
	ErrInvalidPaymentStatus = fmt.Errorf("%w: unsupported payment status", ErrValidation)
	ErrRevertToPending      = fmt.Errorf("%w: webhook cannot revert a payment to pending", ErrConflict)
	ErrJobCancelled         = fmt.Errorf("%w: job is cancelled", ErrConflict)
	ErrJobNotCompleted      = fmt.Errorf("%w: job must be completed before review", ErrConflict)

	// ErrIllegalTransition is returned when a status move is not in the transition table,
	// or when a concurrent writer moved the row first.
	ErrIllegalTransition = fmt.Errorf("%w: illegal status transition", ErrConflict)

	ErrPaymentNotPending = fmt.Errorf("%w: payment cannot move to escrow", ErrConflict)
	ErrPaymentNotEscrow  = fmt.Errorf("%w: payment is not ready for release", ErrConflict)
)
